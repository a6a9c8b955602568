package xml

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Table represents a w:tbl element
type Table struct {
	Properties *TableProperties `xml:"tblPr"`
	Grid       *TableGrid       `xml:"tblGrid"`
	Rows       []TableRow       `xml:"tr"`
}

func (t Table) isBodyElement() {}

func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	children := []child{
		opt("w:tblPr", t.Properties, t.Properties != nil),
		opt("w:tblGrid", t.Grid, t.Grid != nil),
	}
	for i := range t.Rows {
		children = append(children, opt("w:tr", &t.Rows[i], true))
	}
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:tbl"}}, children...)
}

// StyleID returns the referenced table style, or "" when none is set
func (t *Table) StyleID() string {
	if t.Properties == nil || t.Properties.Style == nil {
		return ""
	}
	return t.Properties.Style.Val
}

// TableProperties is w:tblPr. Children are written in CT_TblPr order.
type TableProperties struct {
	Style       *Style            `xml:"tblStyle"`
	Width       *Width            `xml:"tblW"`
	Indentation *Width            `xml:"tblInd"`
	Borders     *TableBorders     `xml:"tblBorders"`
	CellMargins *TableCellMargins `xml:"tblCellMar"`
	Look        *TableLook        `xml:"tblLook"`
}

func (p TableProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:tblPr"}},
		opt("w:tblStyle", p.Style, p.Style != nil),
		opt("w:tblW", p.Width, p.Width != nil),
		opt("w:tblInd", p.Indentation, p.Indentation != nil),
		opt("w:tblBorders", p.Borders, p.Borders != nil),
		opt("w:tblCellMar", p.CellMargins, p.CellMargins != nil),
		opt("w:tblLook", p.Look, p.Look != nil),
	)
}

// Width is a measurement in twips (tblW, tblInd, tcW, cell margins)
type Width struct {
	Type string `xml:"type,attr"`
	Val  int    `xml:"w,attr"`
}

func (w Width) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{wAttr("w", strconv.Itoa(w.Val)), wAttr("type", w.Type)}
	return writeEmpty(e, start)
}

// TableCellMargins is w:tblCellMar
type TableCellMargins struct {
	Top    *Width `xml:"top"`
	Left   *Width `xml:"left"`
	Bottom *Width `xml:"bottom"`
	Right  *Width `xml:"right"`
}

func (m TableCellMargins) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:tblCellMar"}},
		opt("w:top", m.Top, m.Top != nil),
		opt("w:left", m.Left, m.Left != nil),
		opt("w:bottom", m.Bottom, m.Bottom != nil),
		opt("w:right", m.Right, m.Right != nil),
	)
}

// TableLook selects which conditional formats of the table style apply
type TableLook struct {
	Val         string `xml:"val,attr,omitempty"`
	FirstRow    string `xml:"firstRow,attr,omitempty"`
	LastRow     string `xml:"lastRow,attr,omitempty"`
	FirstColumn string `xml:"firstColumn,attr,omitempty"`
	LastColumn  string `xml:"lastColumn,attr,omitempty"`
	NoHBand     string `xml:"noHBand,attr,omitempty"`
	NoVBand     string `xml:"noVBand,attr,omitempty"`
}

func (t TableLook) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblLook"}
	start.Attr = wAttrs(
		"val", t.Val,
		"firstRow", t.FirstRow,
		"lastRow", t.LastRow,
		"firstColumn", t.FirstColumn,
		"lastColumn", t.LastColumn,
		"noHBand", t.NoHBand,
		"noVBand", t.NoVBand,
	)
	return writeEmpty(e, start)
}

// TableGrid lists column widths
type TableGrid struct {
	Columns []GridColumn `xml:"gridCol"`
}

func (g TableGrid) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	children := make([]child, 0, len(g.Columns))
	for _, col := range g.Columns {
		children = append(children, opt("w:gridCol", col, true))
	}
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}, children...)
}

// GridColumn is one w:gridCol, width in twips
type GridColumn struct {
	Width int `xml:"w,attr"`
}

func (g GridColumn) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:gridCol"}
	start.Attr = []xml.Attr{wAttr("w", strconv.Itoa(g.Width))}
	return writeEmpty(e, start)
}

// TableRow is w:tr
type TableRow struct {
	Cells []TableCell `xml:"tc"`
}

func (r TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	children := make([]child, 0, len(r.Cells))
	for i := range r.Cells {
		children = append(children, opt("w:tc", &r.Cells[i], true))
	}
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:tr"}}, children...)
}

// TableCell is w:tc. Nested tables and other block content are not modeled.
type TableCell struct {
	Properties *TableCellProperties `xml:"tcPr"`
	Paragraphs []Paragraph          `xml:"p"`
}

func (c *TableCell) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return eachChild(d, func(t xml.StartElement) (bool, error) {
		switch t.Name.Local {
		case "tcPr":
			c.Properties = &TableCellProperties{}
			return true, d.DecodeElement(c.Properties, &t)
		case "p":
			var para Paragraph
			if err := d.DecodeElement(&para, &t); err != nil {
				return true, err
			}
			c.Paragraphs = append(c.Paragraphs, para)
			return true, nil
		}
		return false, nil
	})
}

func (c TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	children := []child{opt("w:tcPr", c.Properties, c.Properties != nil)}
	for i := range c.Paragraphs {
		children = append(children, opt("w:p", &c.Paragraphs[i], true))
	}
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:tc"}}, children...)
}

// GetText joins the cell's paragraph texts with newlines
func (c *TableCell) GetText() string {
	texts := make([]string, 0, len(c.Paragraphs))
	for i := range c.Paragraphs {
		texts = append(texts, c.Paragraphs[i].GetText())
	}
	return strings.Join(texts, "\n")
}

// TableCellProperties is w:tcPr
type TableCellProperties struct {
	Width *Width `xml:"tcW"`
}

func (p TableCellProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:tcPr"}},
		opt("w:tcW", p.Width, p.Width != nil),
	)
}

// TableBorders is w:tblBorders, the outer edges plus the inside rules
type TableBorders struct {
	Top     *BorderProperties `xml:"top"`
	Left    *BorderProperties `xml:"left"`
	Bottom  *BorderProperties `xml:"bottom"`
	Right   *BorderProperties `xml:"right"`
	InsideH *BorderProperties `xml:"insideH"`
	InsideV *BorderProperties `xml:"insideV"`
}

func (b TableBorders) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return writeElement(e, xml.StartElement{Name: xml.Name{Local: "w:tblBorders"}},
		opt("w:top", b.Top, b.Top != nil),
		opt("w:left", b.Left, b.Left != nil),
		opt("w:bottom", b.Bottom, b.Bottom != nil),
		opt("w:right", b.Right, b.Right != nil),
		opt("w:insideH", b.InsideH, b.InsideH != nil),
		opt("w:insideV", b.InsideV, b.InsideV != nil),
	)
}

// BorderProperties describes one border line
type BorderProperties struct {
	Val   string `xml:"val,attr,omitempty"`
	Sz    string `xml:"sz,attr,omitempty"`
	Space string `xml:"space,attr,omitempty"`
	Color string `xml:"color,attr,omitempty"`
}

func (b BorderProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = wAttrs("val", b.Val, "sz", b.Sz, "space", b.Space, "color", b.Color)
	return writeEmpty(e, start)
}
