package dtsx

import (
	"fmt"
	"strings"
)

// Executable type marker for sequence containers; identical in both
// format generations.
const sequenceExecutableType = "STOCK:SEQUENCE"

// Descriptions the designer writes verbatim for stock tasks. When a task's
// description is one of these, it is already the display label.
var stockTaskDescriptions = map[string]bool{
	"Data Flow Task":         true,
	"Script Task":            true,
	"Foreach Loop Container": true,
}

// ClassifyTask infers a task's display type label from its raw metadata.
//
// The fallback order encodes accumulated handling of real-world packages
// with missing or malformed metadata and must not be reordered:
// package-execution payloads and sequence containers are recognized by
// shape, stock descriptions and Microsoft-authored tasks keep their
// description, and anything else falls back to the vendor prefix of the
// contact string.
func ClassifyTask(t Task) string {
	if t.HasPackageData {
		return TypeExecutePackage
	}
	if t.ExecutableType == sequenceExecutableType {
		return TypeSequenceContainer
	}
	if stockTaskDescriptions[t.Description] || strings.HasPrefix(t.Contact, "Microsoft") {
		return t.Description
	}
	return beforeSemicolon(t.Contact)
}

// ClassifyComponent infers a data-flow component's display type label.
// Vendor contact strings conventionally lead with the component
// identifier, so that wins; the description and finally the component
// name back it up. The result is non-empty whenever the component has a
// name, which preserves the record invariant.
func ClassifyComponent(contact, description, name string) string {
	if label := beforeSemicolon(contact); label != "" {
		return label
	}
	if description != "" {
		return description
	}
	return name
}

// ConfigurationTypeLabel maps the numeric ConfigurationType field to its
// display label.
func ConfigurationTypeLabel(n int) string {
	switch n {
	case 0:
		return "Parent package variable"
	case 2:
		return "Environment variable"
	case 5:
		return "Indirect XML configuration file"
	default:
		return fmt.Sprintf("Unknown %d", n)
	}
}

// beforeSemicolon returns s truncated at its first semicolon.
func beforeSemicolon(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		return s[:i]
	}
	return s
}
