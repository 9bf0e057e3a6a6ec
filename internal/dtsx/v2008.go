package dtsx

import (
	"strconv"

	"github.com/beevik/etree"
)

// v2008Adapter reads the property-node package shape: entity fields are
// child DTS:Property elements keyed by their DTS:Name attribute.
type v2008Adapter struct {
	doc *Document
}

func (a *v2008Adapter) Tasks() []Task {
	root := a.doc.root()
	if root == nil {
		return nil
	}
	var tasks []Task
	for _, e := range root.FindElements(".//DTS:Executable") {
		t := Task{
			Name:           propertyText(e, "ObjectName"),
			Description:    propertyText(e, "Description"),
			Contact:        propertyText(e, "CreationName"),
			ExecutableType: e.SelectAttrValue("DTS:ExecutableType", ""),
		}
		// Payload checks stay inside the executable's own ObjectData:
		// container subtrees hold nested executables whose payloads must
		// not leak into the container's classification.
		if od := e.SelectElement("DTS:ObjectData"); od != nil {
			t.HasPackageData = hasDescendantLocal(od, "ExecutePackageTask")
			if sqlData := findDescendantLocal(od, "SqlTaskData"); sqlData != nil {
				t.SQL = attrLocal(sqlData, "SqlStatementSource")
			}
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func (a *v2008Adapter) Variables() []Variable {
	root := a.doc.root()
	if root == nil {
		return nil
	}
	var vars []Variable
	for _, e := range root.FindElements(".//DTS:Variable") {
		expr := propertyText(e, "Expression")
		if expr == "" {
			continue
		}
		vars = append(vars, Variable{
			Name:       propertyText(e, "ObjectName"),
			Namespace:  propertyText(e, "Namespace"),
			Expression: expr,
		})
	}
	return vars
}

func (a *v2008Adapter) Connections() []Connection {
	root := a.doc.root()
	if root == nil {
		return nil
	}
	var conns []Connection
	// Connection managers are immediate children of the package root in
	// this format generation.
	for _, e := range root.SelectElements("DTS:ConnectionManager") {
		conns = append(conns, Connection{
			Name:         propertyText(e, "ObjectName"),
			CreationName: propertyText(e, "CreationName"),
		})
	}
	return conns
}

func (a *v2008Adapter) Configurations() []Configuration {
	root := a.doc.root()
	if root == nil {
		return nil
	}
	var configs []Configuration
	for _, e := range root.FindElements(".//DTS:Configuration") {
		c := Configuration{
			Name:         propertyText(e, "ObjectName"),
			ConfigString: propertyText(e, "ConfigurationString"),
		}
		if n, err := strconv.Atoi(propertyText(e, "ConfigurationType")); err == nil {
			c.Type = n
			c.HasType = true
		}
		configs = append(configs, c)
	}
	return configs
}

func (a *v2008Adapter) Components() []Component {
	return collectComponents(a.doc.root(), func(exe *etree.Element) string {
		return propertyText(exe, "ObjectName")
	})
}
