package dtsx

// Task is a control-flow executable's raw metadata, before classification.
type Task struct {
	Name           string
	Description    string
	Contact        string // creation name; vendor identifier up to the first ';'
	ExecutableType string
	HasPackageData bool   // ObjectData carries an ExecutePackageTask payload
	SQL            string // SqlStatementSource, when the payload is a SQL task
}

// Variable is a package variable carrying an expression.
type Variable struct {
	Name       string
	Namespace  string
	Expression string
}

// QualifiedName returns the namespace-qualified variable name, e.g.
// "User::LoadQuery".
func (v Variable) QualifiedName() string {
	if v.Namespace == "" {
		return v.Name
	}
	return v.Namespace + "::" + v.Name
}

// Connection is a connection manager entry.
type Connection struct {
	Name         string
	CreationName string // connector kind, e.g. "OLEDB", "FLATFILE"
}

// Configuration is an external value-injection entry.
type Configuration struct {
	Name         string
	Type         int
	HasType      bool // false when the ConfigurationType field is absent
	ConfigString string
}

// Component is a data-flow pipeline component's raw metadata.
type Component struct {
	Name        string
	Description string
	Contact     string
	TaskName    string // enclosing data-flow task, resolved by ancestor walk
	SQL         string // SqlCommand or OpenRowset property text
}

// SchemaAdapter locates package entities for one format version and reads
// each logical field off that version's node shape. Resolved once per file
// via Document.Adapter; missing fields on a matched node come back empty
// rather than failing the pass.
type SchemaAdapter interface {
	Tasks() []Task
	Variables() []Variable
	Connections() []Connection
	Configurations() []Configuration
	Components() []Component
}
