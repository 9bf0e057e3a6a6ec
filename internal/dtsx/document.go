package dtsx

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// Extension is the file extension of SSIS package files. Paths with any
// other extension are not parsed at all.
const Extension = ".dtsx"

// ErrUnsupportedVersion is returned when a parsed document carries an
// unrecognized or missing format version marker.
var ErrUnsupportedVersion = errors.New("unsupported package format version")

// Document is one parsed package file: the XML tree plus the format
// version resolved from it. It lives for a single file's extraction pass.
type Document struct {
	path    string
	tree    *etree.Document
	version FormatVersion
}

// Load parses the package file at path. Malformed XML is a per-file error;
// an unrecognized version marker is not (the caller checks Version and
// skips the file).
func Load(path string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Document{path: path, tree: tree, version: DetectVersion(tree)}, nil
}

// Parse builds a Document from raw package XML. The name is used as the
// file field on emitted records.
func Parse(data []byte, name string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return &Document{path: name, tree: tree, version: DetectVersion(tree)}, nil
}

// Path returns the path the document was loaded from.
func (d *Document) Path() string { return d.path }

// Version returns the package schema generation the file declares.
func (d *Document) Version() FormatVersion { return d.version }

// Adapter returns the schema adapter matching the document's format
// version, or ErrUnsupportedVersion when the marker was not recognized.
func (d *Document) Adapter() (SchemaAdapter, error) {
	switch d.version {
	case V2008:
		return &v2008Adapter{doc: d}, nil
	case V2012Plus:
		return &v2012Adapter{doc: d}, nil
	default:
		return nil, fmt.Errorf("%s: %w", d.path, ErrUnsupportedVersion)
	}
}

// root returns the document's package element, which may be nil for an
// XML document that is well formed but empty.
func (d *Document) root() *etree.Element {
	return d.tree.Root()
}

// attrLocal reads an attribute by local name, ignoring its namespace
// prefix. Task payload namespaces (SQLTask, and similar per-task prefixes)
// are not fixed across files, so payload attributes are matched by local
// name only.
func attrLocal(e *etree.Element, local string) string {
	for _, a := range e.Attr {
		if a.Key == local {
			return a.Value
		}
	}
	return ""
}

// findDescendantLocal walks the subtree under e looking for the first
// element with the given local tag name, any namespace.
func findDescendantLocal(e *etree.Element, local string) *etree.Element {
	for _, child := range e.ChildElements() {
		if child.Tag == local {
			return child
		}
		if found := findDescendantLocal(child, local); found != nil {
			return found
		}
	}
	return nil
}

// hasDescendantLocal reports whether the subtree under e contains an
// element with the given local tag name.
func hasDescendantLocal(e *etree.Element, local string) bool {
	return findDescendantLocal(e, local) != nil
}

// propertyText reads the text of the child DTS:Property whose DTS:Name
// attribute equals name. This is the V2008 field shape; it returns ""
// when the property is absent.
func propertyText(e *etree.Element, name string) string {
	for _, prop := range e.SelectElements("DTS:Property") {
		if prop.SelectAttrValue("DTS:Name", "") == name {
			return prop.Text()
		}
	}
	return ""
}

// IsPackagePath reports whether the path names a package file by
// extension alone, without touching the file system. The comparison is
// case-insensitive: the files originate on Windows.
func IsPackagePath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}
