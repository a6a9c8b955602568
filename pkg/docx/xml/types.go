package xml

import (
	"encoding/xml"
	"io"
	"strconv"
)

// Namespace URIs used by the parts this package writes.
const (
	NamespaceW             = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceR             = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	NamespaceRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	NamespaceCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NamespaceExtendedProps = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	NamespaceDocPropsVT    = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	NamespaceDC            = "http://purl.org/dc/elements/1.1/"
	NamespaceDCTerms       = "http://purl.org/dc/terms/"
	NamespaceDCMIType      = "http://purl.org/dc/dcmitype/"
	NamespaceXSI           = "http://www.w3.org/2001/XMLSchema-instance"
)

// Header is the XML declaration written at the top of every part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// BodyElement represents any element that can appear in a document body
type BodyElement interface {
	isBodyElement()
}

// Empty represents an empty element (used for boolean properties)
type Empty struct{}

func (Empty) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	return writeEmpty(e, start)
}

// Style represents a style reference (pStyle, tblStyle, basedOn, next, name ...)
type Style struct {
	Val string `xml:"val,attr"`
}

// MarshalXML keeps the element name chosen by the parent (pStyle, tblStyle ...)
func (s Style) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{wAttr("val", s.Val)}
	return writeEmpty(e, start)
}

// IntVal represents an element carrying a single integer w:val attribute
type IntVal struct {
	Val int `xml:"val,attr"`
}

func (v IntVal) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{wAttr("val", strconv.Itoa(v.Val))}
	return writeEmpty(e, start)
}

// child is an optional element written by writeElement. It is skipped unless
// present is true, which keeps typed nil pointers out of the encoder.
type child struct {
	name    string
	value   interface{}
	present bool
}

func opt(name string, value interface{}, present bool) child {
	return child{name: name, value: value, present: present}
}

// writeElement writes start, the present children in order, and the end tag
func writeElement(e *xml.Encoder, start xml.StartElement, children ...child) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range children {
		if !c.present {
			continue
		}
		if err := e.EncodeElement(c.value, xml.StartElement{Name: xml.Name{Local: c.name}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// writeEmpty writes start as an element without content
func writeEmpty(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(struct{}{}, start)
}

// eachChild walks the direct children of the element whose start tag was just
// read. visit reports whether it consumed the child; unconsumed children are
// skipped. It returns after the matching end tag.
func eachChild(d *xml.Decoder, visit func(xml.StartElement) (bool, error)) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			consumed, err := visit(t)
			if err != nil {
				return err
			}
			if !consumed {
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func wAttr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: "w:" + name}, Value: value}
}

// wAttrs builds w: attributes from name, value pairs, dropping empty values
func wAttrs(pairs ...string) []xml.Attr {
	attrs := make([]xml.Attr, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			attrs = append(attrs, wAttr(pairs[i], pairs[i+1]))
		}
	}
	return attrs
}

// itoa formats n for an attribute; zero becomes "" so wAttrs drops it
func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
