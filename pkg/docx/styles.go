package docx

import (
	"fmt"

	"github.com/benjaminschreck/moralreport/pkg/docx/xml"
)

// Style IDs defined by the default style sheet
const (
	StyleNormal      = "Normal"
	StyleTitle       = "Title"
	StyleTableNormal = "TableNormal"
	StyleTableGrid   = "TableGrid"
)

const maxHeadingLevel = 3

// HeadingStyleID returns the style ID used for a heading level ("Heading1" ...);
// level 0 maps to the Title style.
func HeadingStyleID(level int) string {
	if level == 0 {
		return StyleTitle
	}
	return fmt.Sprintf("Heading%d", level)
}

// StyleSheet is the set of style definitions written to word/styles.xml. The
// serializer resolves every style reference in a Document against it.
type StyleSheet struct {
	defaults *xml.DocDefaults
	styles   []xml.StyleDefinition
}

// Has reports whether a style with the given ID is defined
func (s *StyleSheet) Has(styleID string) bool {
	_, ok := s.lookup(styleID)
	return ok
}

// Type returns the style type ("paragraph", "table" ...) of a defined style
func (s *StyleSheet) Type(styleID string) (string, bool) {
	def, ok := s.lookup(styleID)
	if !ok {
		return "", false
	}
	return def.Type, true
}

// IDs returns the defined style IDs in definition order
func (s *StyleSheet) IDs() []string {
	ids := make([]string, 0, len(s.styles))
	for _, def := range s.styles {
		ids = append(ids, def.StyleID)
	}
	return ids
}

func (s *StyleSheet) lookup(styleID string) (*xml.StyleDefinition, bool) {
	for i := range s.styles {
		if s.styles[i].StyleID == styleID {
			return &s.styles[i], true
		}
	}
	return nil, false
}

func (s *StyleSheet) part() *xml.Styles {
	return &xml.Styles{DocDefaults: s.defaults, Styles: s.styles}
}

// DefaultStyleSheet returns the styles every generated document carries:
// Normal, Title, Heading1..Heading3, TableNormal and TableGrid.
func DefaultStyleSheet() *StyleSheet {
	sheet := &StyleSheet{
		defaults: &xml.DocDefaults{
			RunProperties: &xml.RunProperties{
				Font:   &xml.Font{ASCII: "Calibri", HAnsi: "Calibri", EastAsia: "Calibri", CS: "Calibri"},
				Size:   &xml.Size{Val: 22},
				SizeCs: &xml.Size{Val: 22},
				Lang:   &xml.Lang{Val: "id-ID", EastAsia: "en-US", Bidi: "ar-SA"},
			},
			ParagraphProperties: &xml.ParagraphProperties{
				Spacing: &xml.Spacing{After: 160, Line: 259, LineRule: "auto"},
			},
		},
	}

	sheet.styles = append(sheet.styles,
		xml.StyleDefinition{
			Type:    "paragraph",
			StyleID: StyleNormal,
			Default: true,
			Name:    &xml.Style{Val: "Normal"},
			QFormat: &xml.Empty{},
		},
		paragraphStyle(StyleTitle, "Title", 56, "17365D", -1, 0),
	)
	headingSizes := [maxHeadingLevel]int{32, 26, 24}
	headingColors := [maxHeadingLevel]string{"2F5496", "2F5496", "1F3763"}
	headingBefore := [maxHeadingLevel]int{240, 40, 40}
	for level := 1; level <= maxHeadingLevel; level++ {
		sheet.styles = append(sheet.styles, paragraphStyle(
			HeadingStyleID(level),
			fmt.Sprintf("heading %d", level),
			headingSizes[level-1],
			headingColors[level-1],
			level-1,
			headingBefore[level-1],
		))
	}

	sheet.styles = append(sheet.styles,
		xml.StyleDefinition{
			Type:           "table",
			StyleID:        StyleTableNormal,
			Default:        true,
			Name:           &xml.Style{Val: "Normal Table"},
			UIPriority:     &xml.IntVal{Val: 99},
			SemiHidden:     &xml.Empty{},
			UnhideWhenUsed: &xml.Empty{},
			TableProperties: &xml.TableProperties{
				Indentation: &xml.Width{Type: "dxa", Val: 0},
				CellMargins: &xml.TableCellMargins{
					Top:    &xml.Width{Type: "dxa", Val: 0},
					Left:   &xml.Width{Type: "dxa", Val: 108},
					Bottom: &xml.Width{Type: "dxa", Val: 0},
					Right:  &xml.Width{Type: "dxa", Val: 108},
				},
			},
		},
		xml.StyleDefinition{
			Type:       "table",
			StyleID:    StyleTableGrid,
			Name:       &xml.Style{Val: "Table Grid"},
			BasedOn:    &xml.Style{Val: StyleTableNormal},
			UIPriority: &xml.IntVal{Val: 59},
			ParagraphProperties: &xml.ParagraphProperties{
				Spacing: &xml.Spacing{After: 0, ExplicitAfter: true, Line: 240, LineRule: "auto"},
			},
			TableProperties: &xml.TableProperties{
				Borders: &xml.TableBorders{
					Top:     gridBorder(),
					Left:    gridBorder(),
					Bottom:  gridBorder(),
					Right:   gridBorder(),
					InsideH: gridBorder(),
					InsideV: gridBorder(),
				},
			},
		},
	)
	return sheet
}

// paragraphStyle builds a Title/Heading style. outline < 0 means no outline level.
func paragraphStyle(id, name string, halfPoints int, color string, outline, before int) xml.StyleDefinition {
	def := xml.StyleDefinition{
		Type:       "paragraph",
		StyleID:    id,
		Name:       &xml.Style{Val: name},
		BasedOn:    &xml.Style{Val: StyleNormal},
		Next:       &xml.Style{Val: StyleNormal},
		UIPriority: &xml.IntVal{Val: 9},
		QFormat:    &xml.Empty{},
		ParagraphProperties: &xml.ParagraphProperties{
			KeepNext:  &xml.Empty{},
			KeepLines: &xml.Empty{},
			Spacing:   &xml.Spacing{Before: before, After: 0, ExplicitAfter: true},
		},
		RunProperties: &xml.RunProperties{
			Bold:   &xml.Empty{},
			BoldCs: &xml.Empty{},
			Color:  &xml.Color{Val: color},
			Size:   &xml.Size{Val: halfPoints},
			SizeCs: &xml.Size{Val: halfPoints},
		},
	}
	if outline >= 0 {
		def.ParagraphProperties.OutlineLevel = &xml.IntVal{Val: outline}
	}
	return def
}

func gridBorder() *xml.BorderProperties {
	return &xml.BorderProperties{Val: "single", Sz: "4", Space: "0", Color: "auto"}
}
