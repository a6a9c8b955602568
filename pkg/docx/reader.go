package docx

import (
	"archive/zip"
	"bytes"
	stdxml "encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/benjaminschreck/moralreport/pkg/docx/xml"
)

// Package is a read-only view of a .docx package
type Package struct {
	parts map[string]*zip.File
}

// OpenPackage reads a package from its bytes
func OpenPackage(data []byte) (*Package, error) {
	return NewPackage(bytes.NewReader(data), int64(len(data)))
}

// NewPackage reads a package from r
func NewPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &PackageError{Operation: "open", Cause: err}
	}

	pkg := &Package{parts: make(map[string]*zip.File, len(zr.File))}
	for _, file := range zr.File {
		pkg.parts[file.Name] = file
	}
	if _, ok := pkg.parts[PartContentTypes]; !ok {
		return nil, &PackageError{Operation: "open", Path: PartContentTypes, Cause: fmt.Errorf("missing content types")}
	}
	return pkg, nil
}

// OpenPackageFile reads a package from a file path
func OpenPackageFile(path string) (*Package, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &PackageError{Operation: "read", Path: path, Cause: err}
	}
	return OpenPackage(content)
}

// PartNames returns the names of all parts, sorted
func (p *Package) PartNames() []string {
	names := make([]string, 0, len(p.parts))
	for name := range p.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Part returns the content of a part
func (p *Package) Part(name string) ([]byte, error) {
	file, ok := p.parts[name]
	if !ok {
		return nil, &PackageError{Operation: "read", Path: name, Cause: fmt.Errorf("part not found")}
	}

	rc, err := file.Open()
	if err != nil {
		return nil, &PackageError{Operation: "open", Path: name, Cause: err}
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, &PackageError{Operation: "read", Path: name, Cause: err}
	}
	return content, nil
}

func (p *Package) decode(name string, v interface{}) error {
	content, err := p.Part(name)
	if err != nil {
		return err
	}
	if err := stdxml.Unmarshal(content, v); err != nil {
		return &PackageError{Operation: "parse", Path: name, Cause: err}
	}
	return nil
}

// ContentTypes parses [Content_Types].xml
func (p *Package) ContentTypes() (*xml.ContentTypes, error) {
	var ct xml.ContentTypes
	if err := p.decode(PartContentTypes, &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

// Relationships returns the relationships whose source is partName ("" for the
// package root). A part without a relationships part has none.
func (p *Package) Relationships(partName string) ([]xml.Relationship, error) {
	relsName := relsPartName(partName)
	if _, ok := p.parts[relsName]; !ok {
		return nil, nil
	}
	var rels xml.Relationships
	if err := p.decode(relsName, &rels); err != nil {
		return nil, err
	}
	return rels.Relationship, nil
}

// MainDocumentPart follows the package officeDocument relationship
func (p *Package) MainDocumentPart() (string, error) {
	return p.target("", RelTypeOfficeDocument)
}

func (p *Package) target(source, relType string) (string, error) {
	rels, err := p.Relationships(source)
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if rel.Type == relType && rel.TargetMode != "External" {
			return resolveTarget(source, rel.Target), nil
		}
	}
	return "", &PackageError{Operation: "resolve", Path: relsPartName(source), Cause: fmt.Errorf("no relationship of type %s", relType)}
}

// Document parses the main document part
func (p *Package) Document() (*xml.Document, error) {
	name, err := p.MainDocumentPart()
	if err != nil {
		return nil, err
	}
	var doc xml.Document
	if err := p.decode(name, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Styles parses the style part linked from the main document
func (p *Package) Styles() (*xml.Styles, error) {
	docName, err := p.MainDocumentPart()
	if err != nil {
		return nil, err
	}
	name, err := p.target(docName, RelTypeStyles)
	if err != nil {
		return nil, err
	}
	var styles xml.Styles
	if err := p.decode(name, &styles); err != nil {
		return nil, err
	}
	return &styles, nil
}

// Text returns the text of the document's paragraphs in body order. Table cells
// contribute one entry per cell paragraph, row by row.
func (p *Package) Text() ([]string, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	if doc.Body == nil {
		return nil, nil
	}
	var texts []string
	for _, elem := range doc.Body.Elements {
		switch el := elem.(type) {
		case *xml.Paragraph:
			texts = append(texts, el.GetText())
		case *xml.Table:
			for _, row := range el.Rows {
				for _, cell := range row.Cells {
					for i := range cell.Paragraphs {
						texts = append(texts, cell.Paragraphs[i].GetText())
					}
				}
			}
		}
	}
	return texts, nil
}

// TableText returns the text of every cell of the index-th table, one slice per row
func (p *Package) TableText(index int) ([][]string, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	seen := 0
	if doc.Body != nil {
		for _, elem := range doc.Body.Elements {
			table, ok := elem.(*xml.Table)
			if !ok {
				continue
			}
			if seen < index {
				seen++
				continue
			}
			rows := make([][]string, 0, len(table.Rows))
			for _, row := range table.Rows {
				cells := make([]string, 0, len(row.Cells))
				for _, cell := range row.Cells {
					cells = append(cells, cell.GetText())
				}
				rows = append(rows, cells)
			}
			return rows, nil
		}
	}
	return nil, &PackageError{Operation: "read", Path: PartDocument, Cause: fmt.Errorf("table %d not found", index)}
}
