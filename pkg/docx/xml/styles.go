package xml

import "encoding/xml"

// Styles represents the w:styles root of word/styles.xml
type Styles struct {
	DocDefaults *DocDefaults
	Styles      []StyleDefinition
}

// MarshalXML writes the w:styles root with its namespace declaration
func (s Styles) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:styles"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "xmlns:w"}, Value: NamespaceW},
	}
	children := []child{opt("w:docDefaults", s.DocDefaults, s.DocDefaults != nil)}
	for i := range s.Styles {
		children = append(children, opt("w:style", &s.Styles[i], true))
	}
	return writeElement(e, start, children...)
}

// UnmarshalXML reads style definitions, ignoring docDefaults and latentStyles
func (s *Styles) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return eachChild(d, func(t xml.StartElement) (bool, error) {
		if t.Name.Local != "style" {
			return false, nil
		}
		var def StyleDefinition
		if err := d.DecodeElement(&def, &t); err != nil {
			return true, err
		}
		s.Styles = append(s.Styles, def)
		return true, nil
	})
}

// Lookup returns the style definition with the given ID
func (s *Styles) Lookup(styleID string) (*StyleDefinition, bool) {
	for i := range s.Styles {
		if s.Styles[i].StyleID == styleID {
			return &s.Styles[i], true
		}
	}
	return nil, false
}

// DocDefaults represents the document-wide default run and paragraph properties
type DocDefaults struct {
	RunProperties       *RunProperties
	ParagraphProperties *ParagraphProperties
}

// MarshalXML wraps each property set in its rPrDefault / pPrDefault element
func (dd DocDefaults) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:docDefaults"}},
		opt("w:rPrDefault", wrapped{"w:rPr", dd.RunProperties}, dd.RunProperties != nil),
		opt("w:pPrDefault", wrapped{"w:pPr", dd.ParagraphProperties}, dd.ParagraphProperties != nil),
	)
}

// wrapped writes value as the only child of the element it is encoded as
type wrapped struct {
	name  string
	value interface{}
}

func (w wrapped) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, start, opt(w.name, w.value, true))
}

// StyleDefinition represents a single w:style element
type StyleDefinition struct {
	Type                string               `xml:"type,attr"`
	StyleID             string               `xml:"styleId,attr"`
	Default             bool                 `xml:"-"`
	Name                *Style               `xml:"name"`
	BasedOn             *Style               `xml:"basedOn"`
	Next                *Style               `xml:"next"`
	UIPriority          *IntVal              `xml:"uiPriority"`
	SemiHidden          *Empty               `xml:"semiHidden"`
	UnhideWhenUsed      *Empty               `xml:"unhideWhenUsed"`
	QFormat             *Empty               `xml:"qFormat"`
	ParagraphProperties *ParagraphProperties `xml:"pPr"`
	RunProperties       *RunProperties       `xml:"rPr"`
	TableProperties     *TableProperties     `xml:"tblPr"`
}

// MarshalXML writes the style children in the order required by CT_Style
func (s StyleDefinition) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:style"}
	start.Attr = []xml.Attr{wAttr("type", s.Type)}
	if s.Default {
		start.Attr = append(start.Attr, wAttr("default", "1"))
	}
	start.Attr = append(start.Attr, wAttr("styleId", s.StyleID))
	return writeElement(e, start,
		opt("w:name", s.Name, s.Name != nil),
		opt("w:basedOn", s.BasedOn, s.BasedOn != nil),
		opt("w:next", s.Next, s.Next != nil),
		opt("w:uiPriority", s.UIPriority, s.UIPriority != nil),
		opt("w:semiHidden", s.SemiHidden, s.SemiHidden != nil),
		opt("w:unhideWhenUsed", s.UnhideWhenUsed, s.UnhideWhenUsed != nil),
		opt("w:qFormat", s.QFormat, s.QFormat != nil),
		opt("w:pPr", s.ParagraphProperties, s.ParagraphProperties != nil),
		opt("w:rPr", s.RunProperties, s.RunProperties != nil),
		opt("w:tblPr", s.TableProperties, s.TableProperties != nil),
	)
}
