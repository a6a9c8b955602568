package docx

import (
	"strings"
	"time"
)

// Alignment is a paragraph justification value
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignBoth    Alignment = "both"
)

// Block is one top-level element of a Document: *Heading, *Paragraph or *Table
type Block interface {
	isBlock()
}

// Properties carries the document metadata written to docProps/core.xml
type Properties struct {
	Title    string
	Subject  string
	Creator  string
	Language string
	Created  time.Time
}

// Document is the in-memory structure of a word-processing document
type Document struct {
	Properties Properties
	Blocks     []Block
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{}
}

// Heading is a paragraph rendered with the heading style for Level
type Heading struct {
	Text  string
	Level int
	Align Alignment
}

func (*Heading) isBlock() {}

// Paragraph is a sequence of runs
type Paragraph struct {
	Runs  []Run
	Align Alignment
}

func (*Paragraph) isBlock() {}

// Text returns the concatenated text of the paragraph's runs
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Run is a span of text sharing one set of formatting properties.
// SizePt is in points; Color is a 6-hex-digit RGB string ("" for none).
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	SizePt *float64
	Color  string
}

// Pt returns a pointer to a point size, for use in Run.SizePt
func Pt(size float64) *float64 {
	return &size
}

// Table is a grid of cells. Columns fixes the grid width; when zero the widest
// row decides it. Style names a table style in the StyleSheet.
type Table struct {
	Style   string
	Columns int
	Rows    []*Row
}

func (*Table) isBlock() {}

// Row is an ordered sequence of cells
type Row struct {
	Cells []Cell
}

// Cell holds one or more paragraphs
type Cell struct {
	Paragraphs []Paragraph
}

// Text returns the cell paragraphs' text joined by newlines
func (c Cell) Text() string {
	texts := make([]string, 0, len(c.Paragraphs))
	for i := range c.Paragraphs {
		texts = append(texts, c.Paragraphs[i].Text())
	}
	return strings.Join(texts, "\n")
}

// TextCell returns a cell holding a single paragraph with the given runs
func TextCell(runs ...Run) Cell {
	return Cell{Paragraphs: []Paragraph{{Runs: runs}}}
}

// AddHeading appends a heading block and returns it
func (d *Document) AddHeading(text string, level int) *Heading {
	h := &Heading{Text: text, Level: level}
	d.Blocks = append(d.Blocks, h)
	return h
}

// AddParagraph appends a paragraph block holding runs and returns it
func (d *Document) AddParagraph(runs ...Run) *Paragraph {
	p := &Paragraph{Runs: runs}
	d.Blocks = append(d.Blocks, p)
	return p
}

// AddTable appends a table with the default grid style and returns it
func (d *Document) AddTable(columns int) *Table {
	t := &Table{Style: StyleTableGrid, Columns: columns}
	d.Blocks = append(d.Blocks, t)
	return t
}

// AddRow appends a row of cells and returns it
func (t *Table) AddRow(cells ...Cell) *Row {
	row := &Row{Cells: cells}
	t.Rows = append(t.Rows, row)
	return row
}

// Tables returns the document's tables in order
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}
