package dtsx

import "github.com/beevik/etree"

// Data-flow pipeline XML is identical across both format generations:
// components/component elements with name, description and contactInfo
// attributes plus a nested properties list.

// componentAncestorDepth is the number of parent hops from a component
// element up to the executable that owns its data-flow task:
// component -> components -> pipeline -> ObjectData -> Executable.
const componentAncestorDepth = 4

// SQL-bearing pipeline property names. Sources, commands and lookups
// store their statement under SqlCommand; destinations store the target
// rowset under OpenRowset.
var componentSQLProperties = []string{"SqlCommand", "OpenRowset"}

// collectComponents finds every pipeline component in the tree. The
// taskName reader is version-specific: the enclosing executable's name
// lives in a child property in 2008 and in an attribute in 2012+.
func collectComponents(root *etree.Element, taskName func(*etree.Element) string) []Component {
	if root == nil {
		return nil
	}
	var comps []Component
	for _, e := range root.FindElements(".//component") {
		comps = append(comps, Component{
			Name:        e.SelectAttrValue("name", ""),
			Description: e.SelectAttrValue("description", ""),
			Contact:     e.SelectAttrValue("contactInfo", ""),
			TaskName:    owningTaskName(e, taskName),
			SQL:         componentSQL(e),
		})
	}
	return comps
}

// componentSQL reads the component's statement text from the first
// SQL-bearing property present. Components matched by tag but missing
// both properties yield an empty string; the record is still emitted.
func componentSQL(e *etree.Element) string {
	for _, name := range componentSQLProperties {
		if prop := e.FindElement("properties/property[@name='" + name + "']"); prop != nil {
			return prop.Text()
		}
	}
	return ""
}

// owningTaskName walks the fixed number of ancestor levels up to the
// enclosing executable and reads its name. A shallower tree yields an
// empty task name.
func owningTaskName(e *etree.Element, taskName func(*etree.Element) string) string {
	anc := e
	for i := 0; i < componentAncestorDepth; i++ {
		anc = anc.Parent()
		if anc == nil {
			return ""
		}
	}
	if anc.Tag != "Executable" {
		return ""
	}
	return taskName(anc)
}
