package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/benjaminschreck/moralreport/pkg/docx"
)

// Fixed report text
const (
	Title           = "Laporan Hasil Tes Kecerdasan Moral"
	DatePrefix      = "Tanggal: "
	HeadingOverall  = "Skor Keseluruhan"
	HeadingDetail   = "Hasil Detail"
	ColumnAspect    = "Aspek"
	ColumnScore     = "Skor"
	ColumnCategory  = "Kategori"
	OverallSizePt   = 14
	DocumentLocale  = "id-ID"
	DocumentSubject = "Hasil Tes Kecerdasan Moral"
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate renders t as "02 Januari 2006" with Indonesian month names
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// LabelCase selects how aspect names are turned into row labels
type LabelCase int

const (
	// LabelCapitalize upper-cases the first character and lower-cases the rest
	LabelCapitalize LabelCase = iota
	// LabelTitle title-cases every word
	LabelTitle
)

func (c LabelCase) String() string {
	switch c {
	case LabelCapitalize:
		return "capitalize"
	case LabelTitle:
		return "title"
	}
	return fmt.Sprintf("LabelCase(%d)", int(c))
}

// ParseLabelCase parses "capitalize" or "title"
func ParseLabelCase(s string) (LabelCase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "capitalize":
		return LabelCapitalize, nil
	case "title":
		return LabelTitle, nil
	}
	return LabelCapitalize, fmt.Errorf("unknown label case %q", s)
}

type buildConfig struct {
	labelCase LabelCase
	creator   string
}

// BuildOption configures Build
type BuildOption func(*buildConfig)

// WithLabelCase selects the aspect label rule
func WithLabelCase(c LabelCase) BuildOption {
	return func(cfg *buildConfig) {
		cfg.labelCase = c
	}
}

// WithCreator sets the author recorded in the document properties
func WithCreator(name string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.creator = name
	}
}

// Build lays out r as a document generated at generatedAt. It never fails; a
// nil report builds the same document as an empty one.
func Build(r *Report, generatedAt time.Time, opts ...BuildOption) *docx.Document {
	cfg := &buildConfig{labelCase: LabelCapitalize}
	for _, opt := range opts {
		opt(cfg)
	}
	if r == nil {
		r = NewReport()
	}
	label := labeler(cfg.labelCase)

	doc := docx.NewDocument()
	doc.Properties = docx.Properties{
		Title:    Title,
		Subject:  DocumentSubject,
		Creator:  cfg.creator,
		Language: DocumentLocale,
		Created:  generatedAt,
	}

	doc.AddHeading(Title, 1).Align = docx.AlignCenter
	doc.AddParagraph(docx.Run{Text: DatePrefix + FormatDate(generatedAt), Bold: true})

	doc.AddHeading(HeadingOverall, 2)
	doc.AddParagraph(docx.Run{
		Text:   OverallLine(r),
		Bold:   true,
		SizePt: docx.Pt(OverallSizePt),
		Color:  ColorFor(r.ScoreCategory),
	})
	if r.ScoreInterpretation != "" {
		doc.AddParagraph(docx.Run{Text: r.ScoreInterpretation})
	} else {
		doc.AddParagraph()
	}

	doc.AddHeading(HeadingDetail, 2)
	table := doc.AddTable(3)
	table.AddRow(
		docx.TextCell(docx.Run{Text: ColumnAspect, Bold: true}),
		docx.TextCell(docx.Run{Text: ColumnScore, Bold: true}),
		docx.TextCell(docx.Run{Text: ColumnCategory, Bold: true}),
	)
	if r.Aspects != nil {
		for pair := r.Aspects.Oldest(); pair != nil; pair = pair.Next() {
			category := r.AspectCategory(pair.Key)
			table.AddRow(
				docx.TextCell(docx.Run{Text: label(pair.Key)}),
				docx.TextCell(docx.Run{Text: FormatAspectScore(pair.Value)}),
				docx.TextCell(docx.Run{Text: category, Color: ColorFor(category)}),
			)
		}
	}
	return doc
}

// OverallLine is the text of the overall score paragraph
func OverallLine(r *Report) string {
	return fmt.Sprintf("%s - %s", r.OverallScore, r.ScoreCategory)
}

func labeler(c LabelCase) func(string) string {
	if c == LabelTitle {
		caser := cases.Title(language.Und)
		return caser.String
	}
	return Capitalize
}

// Capitalize upper-cases the first character of s and lower-cases the rest
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Title(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}
