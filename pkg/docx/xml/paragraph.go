package xml

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Paragraph is w:p. Only runs are modeled; hyperlinks, bookmarks and
// proofing marks are skipped when reading.
type Paragraph struct {
	Properties *ParagraphProperties `xml:"pPr"`
	Runs       []Run                `xml:"-"`
}

func (p Paragraph) isBodyElement() {}

func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return eachChild(d, func(t xml.StartElement) (bool, error) {
		switch t.Name.Local {
		case "pPr":
			p.Properties = &ParagraphProperties{}
			return true, d.DecodeElement(p.Properties, &t)
		case "r":
			var run Run
			if err := d.DecodeElement(&run, &t); err != nil {
				return true, err
			}
			p.Runs = append(p.Runs, run)
			return true, nil
		}
		return false, nil
	})
}

func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	children := []child{opt("w:pPr", p.Properties, p.Properties != nil)}
	for i := range p.Runs {
		children = append(children, opt("w:r", &p.Runs[i], true))
	}
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:p"}}, children...)
}

// GetText concatenates the text of all runs
func (p *Paragraph) GetText() string {
	var b strings.Builder
	for i := range p.Runs {
		b.WriteString(p.Runs[i].GetText())
	}
	return b.String()
}

// StyleID returns the referenced paragraph style, or "" when none is set
func (p *Paragraph) StyleID() string {
	if p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}

// ParagraphProperties is w:pPr
type ParagraphProperties struct {
	Style        *Style     `xml:"pStyle"`
	KeepNext     *Empty     `xml:"keepNext"`
	KeepLines    *Empty     `xml:"keepLines"`
	Spacing      *Spacing   `xml:"spacing"`
	Alignment    *Alignment `xml:"jc"`
	OutlineLevel *IntVal    `xml:"outlineLvl"`

	// RunProperties formats the paragraph mark
	RunProperties *RunProperties `xml:"rPr"`
}

// MarshalXML writes children in CT_PPr order; Word rejects other orders
func (p ParagraphProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:pPr"}},
		opt("w:pStyle", p.Style, p.Style != nil),
		opt("w:keepNext", p.KeepNext, p.KeepNext != nil),
		opt("w:keepLines", p.KeepLines, p.KeepLines != nil),
		opt("w:spacing", p.Spacing, p.Spacing != nil),
		opt("w:jc", p.Alignment, p.Alignment != nil),
		opt("w:outlineLvl", p.OutlineLevel, p.OutlineLevel != nil),
		opt("w:rPr", p.RunProperties, p.RunProperties != nil),
	)
}

// Alignment is w:jc (left, center, right, both)
type Alignment struct {
	Val string `xml:"val,attr"`
}

func (a Alignment) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:jc"}
	start.Attr = []xml.Attr{wAttr("val", a.Val)}
	return writeEmpty(e, start)
}

// Spacing is w:spacing, values in twips
type Spacing struct {
	Before   int    `xml:"before,attr,omitempty"`
	After    int    `xml:"after,attr,omitempty"`
	Line     int    `xml:"line,attr,omitempty"`
	LineRule string `xml:"lineRule,attr,omitempty"`
	// ExplicitAfter writes w:after even when After is zero
	ExplicitAfter bool `xml:"-"`
}

func (s Spacing) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	after := itoa(s.After)
	if s.ExplicitAfter {
		after = strconv.Itoa(s.After)
	}
	start.Name = xml.Name{Local: "w:spacing"}
	start.Attr = wAttrs(
		"before", itoa(s.Before),
		"after", after,
		"line", itoa(s.Line),
		"lineRule", s.LineRule,
	)
	return writeEmpty(e, start)
}
