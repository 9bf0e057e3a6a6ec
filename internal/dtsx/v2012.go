package dtsx

import (
	"strconv"

	"github.com/beevik/etree"
)

// v2012Adapter reads the attribute-based package shape used by format
// versions 6 and 8: fields that were child DTS:Property nodes in 2008 are
// DTS-namespaced attributes on the owning element.
type v2012Adapter struct {
	doc *Document
}

func (a *v2012Adapter) Tasks() []Task {
	root := a.doc.root()
	if root == nil {
		return nil
	}
	var tasks []Task
	for _, e := range root.FindElements(".//DTS:Executable") {
		t := Task{
			Name:           e.SelectAttrValue("DTS:ObjectName", ""),
			Description:    e.SelectAttrValue("DTS:Description", ""),
			Contact:        e.SelectAttrValue("DTS:CreationName", ""),
			ExecutableType: e.SelectAttrValue("DTS:ExecutableType", ""),
		}
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

// Variables differs fundamentally from the 2008 lookup: every variable
// outside the System namespace is enumerated by attribute match, then
// only those carrying a non-empty expression are kept.
func (a *v2012Adapter) Variables() []Variable {
	root := a.doc.root()
	if root == nil {
		return nil
	}
	var vars []Variable
	for _, e := range root.FindElements(".//DTS:Variable") {
		ns := e.SelectAttrValue("DTS:Namespace", "")
		if ns == "System" {
			continue
		}
		expr := e.SelectAttrValue("DTS:Expression", "")
		if expr == "" {
			continue
		}
		vars = append(vars, Variable{
			Name:       e.SelectAttrValue("DTS:ObjectName", ""),
			Namespace:  ns,
			Expression: expr,
		})
	}
	return vars
}

func (a *v2012Adapter) Connections() []Connection {
	root := a.doc.root()
	if root == nil {
		return nil
	}
	var conns []Connection
	for _, e := range root.FindElements(".//DTS:ConnectionManager") {
		conns = append(conns, Connection{
			Name:         e.SelectAttrValue("DTS:ObjectName", ""),
			CreationName: e.SelectAttrValue("DTS:CreationName", ""),
		})
	}
	return conns
}

func (a *v2012Adapter) Configurations() []Configuration {
	root := a.doc.root()
	if root == nil {
		return nil
	}
	var configs []Configuration
	for _, e := range root.FindElements(".//DTS:Configuration") {
		c := Configuration{
			Name:         e.SelectAttrValue("DTS:ObjectName", ""),
			ConfigString: e.SelectAttrValue("DTS:ConfigurationString", ""),
		}
		if n, err := strconv.Atoi(e.SelectAttrValue("DTS:ConfigurationType", "")); err == nil {
			c.Type = n
			c.HasType = true
		}
		configs = append(configs, c)
	}
	return configs
}

// Components reuses the 2008 pipeline path resolution, including the
// ancestor-walk depth. The depth has not been validated against a
// representative 2012+ sample; when it misses, the record's task name
// comes back empty rather than wrong.
func (a *v2012Adapter) Components() []Component {
	return collectComponents(a.doc.root(), func(exe *etree.Element) string {
		return exe.SelectAttrValue("DTS:ObjectName", "")
	})
}
