package xml

import (
	"encoding/xml"
	"strconv"
)

// SectionProperties represents the w:sectPr element closing the document body
type SectionProperties struct {
	PageSize    *PageSize    `xml:"pgSz"`
	PageMargins *PageMargins `xml:"pgMar"`
}

func (s SectionProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:sectPr"}},
		opt("w:pgSz", s.PageSize, s.PageSize != nil),
		opt("w:pgMar", s.PageMargins, s.PageMargins != nil),
	)
}

// PageSize represents page dimensions in twentieths of a point
type PageSize struct {
	Width  int `xml:"w,attr"`
	Height int `xml:"h,attr"`
}

func (p PageSize) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{wAttr("w", strconv.Itoa(p.Width)), wAttr("h", strconv.Itoa(p.Height))}
	return writeEmpty(e, start)
}

// PageMargins represents page margins in twentieths of a point
type PageMargins struct {
	Top    int `xml:"top,attr"`
	Right  int `xml:"right,attr"`
	Bottom int `xml:"bottom,attr"`
	Left   int `xml:"left,attr"`
	Header int `xml:"header,attr"`
	Footer int `xml:"footer,attr"`
	Gutter int `xml:"gutter,attr"`
}

// MarshalXML writes every margin, zeros included; Word requires all seven
func (p PageMargins) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	names := [...]string{"top", "right", "bottom", "left", "header", "footer", "gutter"}
	values := [...]int{p.Top, p.Right, p.Bottom, p.Left, p.Header, p.Footer, p.Gutter}
	start.Attr = make([]xml.Attr, len(names))
	for i := range names {
		start.Attr[i] = wAttr(names[i], strconv.Itoa(values[i]))
	}
	return writeEmpty(e, start)
}

// TextWidth returns the usable width between the left and right margins
func (s *SectionProperties) TextWidth() int {
	if s == nil || s.PageSize == nil {
		return 0
	}
	width := s.PageSize.Width
	if s.PageMargins != nil {
		width -= s.PageMargins.Left + s.PageMargins.Right
	}
	return width
}
