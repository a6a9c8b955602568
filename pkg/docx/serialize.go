package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/benjaminschreck/moralreport/pkg/docx/xml"
)

// Letter page with one inch margins, in twentieths of a point
var (
	defaultPageSize    = xml.PageSize{Width: 12240, Height: 15840}
	defaultPageMargins = xml.PageMargins{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440, Header: 720, Footer: 720}
)

// zipEpoch is the earliest timestamp a zip header can carry; used when the
// document has no creation time so output stays reproducible.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Application is the name recorded in docProps/app.xml
const Application = "moralreport"

type serializeConfig struct {
	sheet       *StyleSheet
	pageSize    xml.PageSize
	pageMargins xml.PageMargins
}

// SerializeOption configures Serialize and Write
type SerializeOption func(*serializeConfig)

// WithStyleSheet replaces the default style sheet
func WithStyleSheet(sheet *StyleSheet) SerializeOption {
	return func(c *serializeConfig) {
		c.sheet = sheet
	}
}

// WithPage sets the page size and margins of the single document section
func WithPage(size xml.PageSize, margins xml.PageMargins) SerializeOption {
	return func(c *serializeConfig) {
		c.pageSize = size
		c.pageMargins = margins
	}
}

// Serialize renders doc into the bytes of a .docx package. Nothing is returned
// unless every part was produced and the package is consistent.
func Serialize(doc *Document, opts ...SerializeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders doc as a .docx package to w. All parts are built and checked
// before the first byte is written to w.
func Write(w io.Writer, doc *Document, opts ...SerializeOption) error {
	if doc == nil {
		return newSerializationError("", "nil document", nil)
	}
	cfg := &serializeConfig{
		sheet:       DefaultStyleSheet(),
		pageSize:    defaultPageSize,
		pageMargins: defaultPageMargins,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.sheet == nil {
		return newSerializationError(PartStyles, "nil style sheet", nil)
	}

	parts, err := buildParts(doc, cfg)
	if err != nil {
		return err
	}

	modified := doc.Properties.Created
	if modified.Before(zipEpoch) {
		modified = zipEpoch
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return newSerializationError(p.name, "failed to create part", err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return newSerializationError(p.name, "failed to write part", err)
		}
	}
	if err := zw.Close(); err != nil {
		return newSerializationError("", "failed to finalize archive", err)
	}
	return nil
}

type renderedPart struct {
	name string
	data []byte
}

// buildParts renders every part in archive order: content types first, then the
// package relationships, then the parts themselves with their relationships.
func buildParts(doc *Document, cfg *serializeConfig) ([]renderedPart, error) {
	conv := &converter{
		sheet: cfg.sheet,
		section: &xml.SectionProperties{
			PageSize:    &cfg.pageSize,
			PageMargins: &cfg.pageMargins,
		},
	}
	xdoc, err := conv.document(doc)
	if err != nil {
		return nil, err
	}
	if missing := missingStyles(xdoc, cfg.sheet.Has); len(missing) > 0 {
		return nil, newSerializationError(PartDocument, fmt.Sprintf("undefined styles referenced: %v", missing), nil)
	}

	bodies := map[string]interface{}{
		PartDocument:  xdoc,
		PartStyles:    cfg.sheet.part(),
		PartCoreProps: coreProperties(doc.Properties),
		PartAppProps: &xml.AppProperties{
			Namespace:   xml.NamespaceExtendedProps,
			NamespaceVT: xml.NamespaceDocPropsVT,
			Application: Application,
		},
	}

	contentTypes := &xml.ContentTypes{
		Namespace: xml.NamespaceContentTypes,
		Defaults: []xml.Default{
			{Extension: "rels", ContentType: ContentTypeRelationships},
			{Extension: "xml", ContentType: ContentTypeXML},
		},
	}
	rels := map[string]*xml.Relationships{}
	var owners []string
	for _, ps := range packageParts {
		contentTypes.Overrides = append(contentTypes.Overrides, xml.Override{
			PartName:    "/" + ps.name,
			ContentType: ps.contentType,
		})
		r, ok := rels[ps.owner]
		if !ok {
			r = &xml.Relationships{Namespace: xml.NamespaceRelationships}
			rels[ps.owner] = r
			owners = append(owners, ps.owner)
		}
		r.Relationship = append(r.Relationship, xml.Relationship{
			ID:     fmt.Sprintf("rId%d", len(r.Relationship)+1),
			Type:   ps.relType,
			Target: relTarget(ps.owner, ps.name),
		})
	}

	var parts []renderedPart
	add := func(name string, v interface{}) error {
		data, err := xml.MarshalPart(v)
		if err != nil {
			return newSerializationError(name, "failed to marshal part", err)
		}
		parts = append(parts, renderedPart{name: name, data: data})
		return nil
	}

	if err := add(PartContentTypes, contentTypes); err != nil {
		return nil, err
	}
	for _, owner := range owners {
		if err := add(relsPartName(owner), rels[owner]); err != nil {
			return nil, err
		}
	}
	for _, ps := range packageParts {
		body, ok := bodies[ps.name]
		if !ok {
			return nil, newSerializationError(ps.name, "no content for registered part", nil)
		}
		if err := add(ps.name, body); err != nil {
			return nil, err
		}
	}
	return parts, nil
}

func coreProperties(p Properties) *xml.CoreProperties {
	created := p.Created
	if created.IsZero() {
		created = zipEpoch
	}
	stamp := created.UTC().Format("2006-01-02T15:04:05Z")
	creator := p.Creator
	if creator == "" {
		creator = Application
	}
	return &xml.CoreProperties{
		NamespaceCP:    xml.NamespaceCoreProps,
		NamespaceDC:    xml.NamespaceDC,
		NamespaceTerms: xml.NamespaceDCTerms,
		NamespaceType:  xml.NamespaceDCMIType,
		NamespaceXSI:   xml.NamespaceXSI,
		Title:          p.Title,
		Subject:        p.Subject,
		Creator:        creator,
		Language:       p.Language,
		LastModifiedBy: creator,
		Revision:       1,
		Created:        xml.W3CDTF{Type: "dcterms:W3CDTF", Value: stamp},
		Modified:       xml.W3CDTF{Type: "dcterms:W3CDTF", Value: stamp},
	}
}

// missingStyles returns style IDs referenced by doc for which has reports false
func missingStyles(doc *xml.Document, has func(string) bool) []string {
	var missing []string
	seen := map[string]bool{}
	for _, id := range styleReferences(doc) {
		if !has(id) && !seen[id] {
			seen[id] = true
			missing = append(missing, id)
		}
	}
	return missing
}

// styleReferences lists every pStyle and tblStyle value in body order
func styleReferences(doc *xml.Document) []string {
	if doc == nil || doc.Body == nil {
		return nil
	}
	var ids []string
	visitParagraph := func(p *xml.Paragraph) {
		if id := p.StyleID(); id != "" {
			ids = append(ids, id)
		}
	}
	for _, elem := range doc.Body.Elements {
		switch el := elem.(type) {
		case *xml.Paragraph:
			visitParagraph(el)
		case *xml.Table:
			if id := el.StyleID(); id != "" {
				ids = append(ids, id)
			}
			for _, row := range el.Rows {
				for _, cell := range row.Cells {
					for i := range cell.Paragraphs {
						visitParagraph(&cell.Paragraphs[i])
					}
				}
			}
		}
	}
	return ids
}
