package xml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Document represents a Word document structure
type Document struct {
	Body *Body
}

// UnmarshalXML reads w:body and ignores everything else under the root
func (doc *Document) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return eachChild(d, func(t xml.StartElement) (bool, error) {
		if t.Name.Local != "body" {
			return false, nil
		}
		doc.Body = &Body{}
		return true, d.DecodeElement(doc.Body, &t)
	})
}

// MarshalXML writes the w:document root with the namespace declarations it relies on
func (doc Document) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:document"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "xmlns:w"}, Value: NamespaceW},
		{Name: xml.Name{Local: "xmlns:r"}, Value: NamespaceR},
	}
	body := doc.Body
	if body == nil {
		body = &Body{}
	}
	return writeElement(e, start, opt("w:body", body, true))
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements
	Elements []BodyElement
	// SectionProperties at the end of the body (critical for Word compatibility)
	SectionProperties *SectionProperties
}

// UnmarshalXML keeps paragraphs and tables in document order
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return eachChild(d, func(t xml.StartElement) (bool, error) {
		var elem BodyElement
		switch t.Name.Local {
		case "p":
			elem = &Paragraph{}
		case "tbl":
			elem = &Table{}
		case "sectPr":
			b.SectionProperties = &SectionProperties{}
			return true, d.DecodeElement(b.SectionProperties, &t)
		default:
			return false, nil
		}
		if err := d.DecodeElement(elem, &t); err != nil {
			return true, err
		}
		b.Elements = append(b.Elements, elem)
		return true, nil
	})
}

func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	children := make([]child, 0, len(b.Elements)+1)
	for _, elem := range b.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			children = append(children, opt("w:p", el, true))
		case *Table:
			children = append(children, opt("w:tbl", el, true))
		default:
			return fmt.Errorf("unsupported body element %T", elem)
		}
	}
	children = append(children, opt("w:sectPr", b.SectionProperties, b.SectionProperties != nil))
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:body"}}, children...)
}

// ParseDocument parses a Word document XML
func ParseDocument(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return &doc, nil
}

// MarshalPart renders v as a complete XML part, declaration included
func MarshalPart(v interface{}) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(Header)+len(data))
	out = append(out, Header...)
	return append(out, data...), nil
}
