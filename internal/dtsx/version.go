package dtsx

import "github.com/beevik/etree"

// FormatVersion identifies which of the two supported package schema shapes
// a document uses. It is read once per file from the PackageFormatVersion
// property on the document root.
type FormatVersion int

const (
	// VersionUnknown means the marker is absent or not a recognized value.
	// Such files are skipped and contribute zero records.
	VersionUnknown FormatVersion = iota

	// V2008 packages store entity fields as child DTS:Property nodes.
	V2008

	// V2012Plus packages store the same fields as attributes on the
	// owning element.
	V2012Plus
)

func (v FormatVersion) String() string {
	switch v {
	case V2008:
		return "2008"
	case V2012Plus:
		return "2012+"
	default:
		return "unknown"
	}
}

// Package format version marker values as written by the SSIS designer.
// "3" is the 2008 shape; "6" (2012) and "8" (2014 and later) share the
// attribute-based shape.
var formatVersions = map[string]FormatVersion{
	"3": V2008,
	"6": V2012Plus,
	"8": V2012Plus,
}

// DetectVersion reads the PackageFormatVersion marker from the document
// root. The marker stayed a child DTS:Property across both format
// generations, so a single lookup covers both shapes.
func DetectVersion(doc *etree.Document) FormatVersion {
	root := doc.Root()
	if root == nil {
		return VersionUnknown
	}
	for _, prop := range root.SelectElements("DTS:Property") {
		if prop.SelectAttrValue("DTS:Name", "") == "PackageFormatVersion" {
			return formatVersions[prop.Text()]
		}
	}
	return VersionUnknown
}
