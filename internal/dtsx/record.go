package dtsx

// Category identifies the kind of package entity a content record describes.
type Category string

const (
	CategoryTask          Category = "Task"
	CategoryVariable      Category = "Variable"
	CategoryConfiguration Category = "Package configuration"
	CategoryConnection    Category = "Connection"
	CategoryComponent     Category = "Data Flow Component"
)

// Categories returns all content categories in their canonical order.
func Categories() []Category {
	return []Category{
		CategoryTask,
		CategoryVariable,
		CategoryConfiguration,
		CategoryConnection,
		CategoryComponent,
	}
}

// SQL-bearing component type labels. These are the only entity types that
// carry query text (variable expressions are treated as SQL-like content).
const (
	TypeExecuteSQLTask    = "Execute SQL Task"
	TypeOLEDBSource       = "OLE DB Source"
	TypeOLEDBDestination  = "OLE DB Destination"
	TypeOLEDBCommand      = "OLE DB Command"
	TypeLookup            = "Lookup"
	TypeVariable          = "Variable"
	TypeSequenceContainer = "Sequence Container"
	TypeExecutePackage    = "Execute Package Task"
)

// SQLTypes returns the component type labels that can produce SQL records.
func SQLTypes() []string {
	return []string{
		TypeExecuteSQLTask,
		TypeOLEDBSource,
		TypeOLEDBDestination,
		TypeOLEDBCommand,
		TypeLookup,
		TypeVariable,
	}
}

// ContentRecord is the uniform output shape for package inventory listings.
// ComponentType is never empty: the classifiers fall back through
// increasingly generic sources to guarantee it.
type ContentRecord struct {
	File          string   `json:"file"`
	Category      Category `json:"category"`
	TaskName      string   `json:"task_name"`
	ComponentType string   `json:"component_type"`
	ComponentName string   `json:"component_name"`
}

// SQLRecord is the uniform output shape for embedded SQL extraction.
type SQLRecord struct {
	File          string `json:"file"`
	TaskName      string `json:"task_name"`
	ComponentType string `json:"component_type"`
	ComponentName string `json:"component_name"`
	SQL           string `json:"sql"`
}
