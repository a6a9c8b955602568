package docx

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/benjaminschreck/moralreport/pkg/docx/xml"
)

// maxHalfPoints is the largest font size Word accepts (1638pt)
const maxHalfPoints = 3276

var hexColorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// converter translates the Document tree into WordprocessingML elements
type converter struct {
	sheet   *StyleSheet
	section *xml.SectionProperties
}

func (c *converter) document(doc *Document) (*xml.Document, error) {
	body := &xml.Body{SectionProperties: c.section}
	for i, block := range doc.Blocks {
		var (
			elem xml.BodyElement
			err  error
		)
		switch b := block.(type) {
		case *Heading:
			elem, err = c.heading(b)
		case *Paragraph:
			elem, err = c.paragraph(b, "")
		case *Table:
			elem, err = c.table(b)
		default:
			err = fmt.Errorf("unsupported block type %T", block)
		}
		if err != nil {
			return nil, newSerializationError(PartDocument, fmt.Sprintf("block %d", i), err)
		}
		body.Elements = append(body.Elements, elem)
	}
	return &xml.Document{Body: body}, nil
}

func (c *converter) heading(h *Heading) (*xml.Paragraph, error) {
	styleID := HeadingStyleID(h.Level)
	if h.Level < 0 || !c.sheet.Has(styleID) {
		return nil, fmt.Errorf("no style defined for heading level %d", h.Level)
	}
	return c.paragraph(&Paragraph{Runs: []Run{{Text: h.Text}}, Align: h.Align}, styleID)
}

func (c *converter) paragraph(p *Paragraph, styleID string) (*xml.Paragraph, error) {
	out := &xml.Paragraph{}
	if styleID != "" || p.Align != AlignDefault {
		out.Properties = &xml.ParagraphProperties{}
		if styleID != "" {
			out.Properties.Style = &xml.Style{Val: styleID}
		}
		if p.Align != AlignDefault {
			if err := checkAlignment(p.Align); err != nil {
				return nil, err
			}
			out.Properties.Alignment = &xml.Alignment{Val: string(p.Align)}
		}
	}
	for i := range p.Runs {
		runs, err := c.run(&p.Runs[i])
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		out.Runs = append(out.Runs, runs...)
	}
	return out, nil
}

// run converts one tree run. Line breaks in the text become w:br and tabs
// become w:tab, so a single tree run may produce several element runs sharing
// the same properties.
func (c *converter) run(r *Run) ([]xml.Run, error) {
	props, err := runProperties(r)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(r.Text, "\r\n", "\n")
	var runs []xml.Run
	for i, line := range strings.Split(text, "\n") {
		for j, segment := range strings.Split(line, "\t") {
			run := xml.Run{Properties: props}
			if i > 0 && j == 0 {
				run.Break = &xml.Break{}
			}
			if j > 0 {
				run.Tab = &xml.Empty{}
			}
			if segment != "" || j == 0 {
				run.Text = newText(segment)
			}
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func runProperties(r *Run) (*xml.RunProperties, error) {
	if !r.Bold && !r.Italic && r.SizePt == nil && r.Color == "" {
		return nil, nil
	}
	props := &xml.RunProperties{}
	if r.Bold {
		props.Bold = &xml.Empty{}
	}
	if r.Italic {
		props.Italic = &xml.Empty{}
	}
	if r.Color != "" {
		if !hexColorPattern.MatchString(r.Color) {
			return nil, fmt.Errorf("invalid color %q: want 6 hex digits", r.Color)
		}
		props.Color = &xml.Color{Val: strings.ToUpper(r.Color)}
	}
	if r.SizePt != nil {
		size := *r.SizePt
		if math.IsNaN(size) || math.IsInf(size, 0) {
			return nil, fmt.Errorf("invalid font size %vpt", size)
		}
		half := int(math.Round(size * 2))
		if half <= 0 || half > maxHalfPoints {
			return nil, fmt.Errorf("invalid font size %vpt", size)
		}
		props.Size = &xml.Size{Val: half}
		props.SizeCs = &xml.Size{Val: half}
	}
	return props, nil
}

func newText(s string) *xml.Text {
	t := &xml.Text{Content: s}
	if s != strings.TrimSpace(s) {
		t.Space = "preserve"
	}
	return t
}

func (c *converter) table(t *Table) (*xml.Table, error) {
	style := t.Style
	if style == "" {
		style = StyleTableGrid
	}
	if kind, ok := c.sheet.Type(style); !ok || kind != "table" {
		return nil, fmt.Errorf("table style %q is not defined", style)
	}

	columns := t.Columns
	for i, row := range t.Rows {
		if row == nil {
			return nil, fmt.Errorf("row %d is nil", i)
		}
		if t.Columns > 0 && len(row.Cells) > t.Columns {
			return nil, fmt.Errorf("row %d has %d cells, grid has %d columns", i, len(row.Cells), t.Columns)
		}
		if len(row.Cells) > columns {
			columns = len(row.Cells)
		}
	}
	if columns == 0 {
		return nil, fmt.Errorf("table has no columns")
	}

	colWidth := c.section.TextWidth() / columns
	grid := &xml.TableGrid{}
	for i := 0; i < columns; i++ {
		grid.Columns = append(grid.Columns, xml.GridColumn{Width: colWidth})
	}

	out := &xml.Table{
		Properties: &xml.TableProperties{
			Style: &xml.Style{Val: style},
			Width: &xml.Width{Type: "auto", Val: 0},
			Look: &xml.TableLook{
				Val:         "04A0",
				FirstRow:    "1",
				LastRow:     "0",
				FirstColumn: "1",
				LastColumn:  "0",
				NoHBand:     "0",
				NoVBand:     "1",
			},
		},
		Grid: grid,
	}

	for i, row := range t.Rows {
		xrow := xml.TableRow{}
		for j := 0; j < columns; j++ {
			cell := Cell{}
			if j < len(row.Cells) {
				cell = row.Cells[j]
			}
			xcell, err := c.cell(cell, colWidth)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d: %w", i, j, err)
			}
			xrow.Cells = append(xrow.Cells, *xcell)
		}
		out.Rows = append(out.Rows, xrow)
	}
	return out, nil
}

// cell converts a cell; every w:tc must hold at least one paragraph
func (c *converter) cell(cell Cell, width int) (*xml.TableCell, error) {
	out := &xml.TableCell{
		Properties: &xml.TableCellProperties{Width: &xml.Width{Type: "dxa", Val: width}},
	}
	paragraphs := cell.Paragraphs
	if len(paragraphs) == 0 {
		paragraphs = []Paragraph{{}}
	}
	for i := range paragraphs {
		p, err := c.paragraph(&paragraphs[i], "")
		if err != nil {
			return nil, err
		}
		out.Paragraphs = append(out.Paragraphs, *p)
	}
	return out, nil
}

func checkAlignment(a Alignment) error {
	switch a {
	case AlignLeft, AlignCenter, AlignRight, AlignBoth:
		return nil
	}
	return fmt.Errorf("invalid alignment %q", a)
}
