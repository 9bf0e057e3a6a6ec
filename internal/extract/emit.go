package extract

import "github.com/mvp-joe/dtxscan/internal/dtsx"

// Record shaping: normalize raw adapter matches into the two uniform
// output shapes. Every emitted record carries a non-empty component type;
// the classifier fallback chains provide it for tasks and components, and
// the remaining categories fall back to a generic label when the source
// field is empty.

func taskContent(file string, t dtsx.Task) dtsx.ContentRecord {
	return dtsx.ContentRecord{
		File:          file,
		Category:      dtsx.CategoryTask,
		TaskName:      t.Name,
		ComponentType: dtsx.ClassifyTask(t),
		ComponentName: t.Name,
	}
}

func variableContent(file string, v dtsx.Variable) dtsx.ContentRecord {
	return dtsx.ContentRecord{
		File:          file,
		Category:      dtsx.CategoryVariable,
		ComponentType: dtsx.TypeVariable,
		ComponentName: v.QualifiedName(),
	}
}

func connectionContent(file string, c dtsx.Connection) dtsx.ContentRecord {
	kind := c.CreationName
	if kind == "" {
		kind = string(dtsx.CategoryConnection)
	}
	return dtsx.ContentRecord{
		File:          file,
		Category:      dtsx.CategoryConnection,
		ComponentType: kind,
		ComponentName: c.Name,
	}
}

func configurationContent(file string, c dtsx.Configuration) dtsx.ContentRecord {
	label := "Unknown"
	if c.HasType {
		label = dtsx.ConfigurationTypeLabel(c.Type)
	}
	return dtsx.ContentRecord{
		File:          file,
		Category:      dtsx.CategoryConfiguration,
		ComponentType: label,
		ComponentName: c.Name,
	}
}

func componentContent(file string, c dtsx.Component) dtsx.ContentRecord {
	return dtsx.ContentRecord{
		File:          file,
		Category:      dtsx.CategoryComponent,
		TaskName:      c.TaskName,
		ComponentType: dtsx.ClassifyComponent(c.Contact, c.Description, c.Name),
		ComponentName: c.Name,
	}
}

func taskSQL(file string, t dtsx.Task) dtsx.SQLRecord {
	return dtsx.SQLRecord{
		File:          file,
		TaskName:      t.Name,
		ComponentType: dtsx.TypeExecuteSQLTask,
		ComponentName: t.Name,
		SQL:           t.SQL,
	}
}

func variableSQL(file string, v dtsx.Variable) dtsx.SQLRecord {
	return dtsx.SQLRecord{
		File:          file,
		ComponentType: dtsx.TypeVariable,
		ComponentName: v.QualifiedName(),
		SQL:           v.Expression,
	}
}

func componentSQL(file string, c dtsx.Component, label string) dtsx.SQLRecord {
	return dtsx.SQLRecord{
		File:          file,
		TaskName:      c.TaskName,
		ComponentType: label,
		ComponentName: c.Name,
		SQL:           c.SQL,
	}
}
