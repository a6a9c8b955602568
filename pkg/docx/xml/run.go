package xml

import (
	"encoding/xml"
	"strconv"
)

// Run represents a run of text with common properties
type Run struct {
	Properties *RunProperties `xml:"rPr"`
	// Break and Tab, when set, are written before Text in that order
	Break *Break `xml:"br"`
	Tab   *Empty `xml:"tab"`
	Text  *Text  `xml:"t"`
}

// UnmarshalXML keeps rPr, br, tab and t. Several w:t children are concatenated.
func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return eachChild(d, func(t xml.StartElement) (bool, error) {
		switch t.Name.Local {
		case "rPr":
			r.Properties = &RunProperties{}
			return true, d.DecodeElement(r.Properties, &t)
		case "br":
			r.Break = &Break{}
			return true, d.DecodeElement(r.Break, &t)
		case "tab":
			r.Tab = &Empty{}
			return true, d.Skip()
		case "t":
			var text Text
			if err := d.DecodeElement(&text, &t); err != nil {
				return true, err
			}
			if r.Text != nil {
				r.Text.Content += text.Content
			} else {
				r.Text = &text
			}
			return true, nil
		}
		return false, nil
	})
}

func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:r"}},
		opt("w:rPr", r.Properties, r.Properties != nil),
		opt("w:br", r.Break, r.Break != nil),
		opt("w:tab", r.Tab, r.Tab != nil),
		opt("w:t", r.Text, r.Text != nil),
	)
}

// GetText returns the text content of a run
func (r *Run) GetText() string {
	text := ""
	if r.Break != nil {
		text = "\n"
	}
	if r.Tab != nil {
		text += "\t"
	}
	if r.Text != nil {
		text += r.Text.Content
	}
	return text
}

// RunProperties represents run formatting properties
type RunProperties struct {
	Style  *Style `xml:"rStyle"`
	Font   *Font  `xml:"rFonts"`
	Bold   *Empty `xml:"b"`
	BoldCs *Empty `xml:"bCs"`
	Italic *Empty `xml:"i"`
	Color  *Color `xml:"color"`
	Size   *Size  `xml:"sz"`
	SizeCs *Size  `xml:"szCs"` // Complex script size
	Lang   *Lang  `xml:"lang"`
}

// MarshalXML writes children in CT_RPr order
func (p RunProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:rPr"}},
		opt("w:rStyle", p.Style, p.Style != nil),
		opt("w:rFonts", p.Font, p.Font != nil),
		opt("w:b", p.Bold, p.Bold != nil),
		opt("w:bCs", p.BoldCs, p.BoldCs != nil),
		opt("w:i", p.Italic, p.Italic != nil),
		opt("w:color", p.Color, p.Color != nil),
		opt("w:sz", p.Size, p.Size != nil),
		opt("w:szCs", p.SizeCs, p.SizeCs != nil),
		opt("w:lang", p.Lang, p.Lang != nil),
	)
}

// Text is w:t
type Text struct {
	Space   string `xml:"space,attr,omitempty"`
	Content string `xml:",chardata"`
}

func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:t"}
	start.Attr = nil
	if t.Space == "preserve" {
		start.Attr = []xml.Attr{{Name: xml.Name{Local: "xml:space"}, Value: "preserve"}}
	}
	return e.EncodeElement(t.Content, start)
}

// Break is w:br; Type is empty for a plain line break
type Break struct {
	Type string `xml:"type,attr,omitempty"`
}

func (b *Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:br"}
	start.Attr = wAttrs("type", b.Type)
	return writeEmpty(e, start)
}

// Color is w:color, six hex digits
type Color struct {
	Val string `xml:"val,attr"`
}

func (c Color) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:color"}
	start.Attr = []xml.Attr{wAttr("val", c.Val)}
	return writeEmpty(e, start)
}

// Size is a font size in half-points (w:sz, w:szCs)
type Size struct {
	Val int `xml:"val,attr"`
}

func (s Size) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{wAttr("val", strconv.Itoa(s.Val))}
	return writeEmpty(e, start)
}

// Lang is w:lang
type Lang struct {
	Val      string `xml:"val,attr,omitempty"`
	EastAsia string `xml:"eastAsia,attr,omitempty"`
	Bidi     string `xml:"bidi,attr,omitempty"`
}

func (l Lang) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:lang"}
	start.Attr = wAttrs("val", l.Val, "eastAsia", l.EastAsia, "bidi", l.Bidi)
	return writeEmpty(e, start)
}

// Font is w:rFonts
type Font struct {
	ASCII    string `xml:"ascii,attr,omitempty"`
	HAnsi    string `xml:"hAnsi,attr,omitempty"`
	EastAsia string `xml:"eastAsia,attr,omitempty"`
	CS       string `xml:"cs,attr,omitempty"`
}

func (f Font) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rFonts"}
	start.Attr = wAttrs("ascii", f.ASCII, "hAnsi", f.HAnsi, "eastAsia", f.EastAsia, "cs", f.CS)
	return writeEmpty(e, start)
}
