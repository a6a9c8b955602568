package docx

import (
	"path"
	"strings"
)

// Part names
const (
	PartContentTypes = "[Content_Types].xml"
	PartRootRels     = "_rels/.rels"
	PartDocument     = "word/document.xml"
	PartDocumentRels = "word/_rels/document.xml.rels"
	PartStyles       = "word/styles.xml"
	PartCoreProps    = "docProps/core.xml"
	PartAppProps     = "docProps/app.xml"
)

// Content types
const (
	ContentTypeDocx          = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML           = "application/xml"
	ContentTypeMainDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ContentTypeStyles        = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ContentTypeCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeAppProps      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// Relationship types
const (
	RelTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeAppProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
)

// partSpec describes one part of the package and how it is reached. The content
// types manifest and both relationship parts are derived from the spec list, so
// a part cannot be written without being registered and linked.
type partSpec struct {
	name        string
	contentType string
	// owner is the part whose relationships link to this part; "" is the package root
	owner   string
	relType string
}

var packageParts = []partSpec{
	{name: PartDocument, contentType: ContentTypeMainDocument, relType: RelTypeOfficeDocument},
	{name: PartCoreProps, contentType: ContentTypeCoreProps, relType: RelTypeCoreProps},
	{name: PartAppProps, contentType: ContentTypeAppProps, relType: RelTypeAppProps},
	{name: PartStyles, contentType: ContentTypeStyles, owner: PartDocument, relType: RelTypeStyles},
}

// relsPartName returns the relationships part for a source part
// e.g., "word/document.xml" -> "word/_rels/document.xml.rels", "" -> "_rels/.rels"
func relsPartName(source string) string {
	if source == "" {
		return PartRootRels
	}
	dir, base := path.Split(source)
	return dir + "_rels/" + base + ".rels"
}

// relTarget expresses target relative to the directory of source
func relTarget(source, target string) string {
	dir := path.Dir(source)
	if source == "" || dir == "." {
		return target
	}
	return strings.TrimPrefix(target, dir+"/")
}

// resolveTarget turns a relationship target back into a part name
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := path.Dir(source)
	if source == "" || dir == "." {
		return path.Clean(target)
	}
	return path.Clean(path.Join(dir, target))
}
