package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/benjaminschreck/moralreport/pkg/docx"
)

const examplePayload = `{
	"overallScore": 82.4,
	"scoreCategory": "Baik",
	"scoreInterpretation": "Kecerdasan moral berkembang baik.",
	"aspects": {"empati": 75.6, "keadilan": 88.2},
	"aspectCategories": {"empati": "Cukup", "keadilan": "Baik"}
}`

var generatedAt = time.Date(2026, 10, 19, 8, 30, 15, 0, time.UTC)

func mustDecode(t *testing.T, payload string) *Report {
	t.Helper()
	r, err := DecodeJSON([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	return r
}

func TestBuildLayout(t *testing.T) {
	doc := Build(mustDecode(t, examplePayload), generatedAt)

	if len(doc.Blocks) != 7 {
		t.Fatalf("expected 7 blocks, got %d", len(doc.Blocks))
	}

	title, ok := doc.Blocks[0].(*docx.Heading)
	if !ok || title.Text != Title || title.Level != 1 || title.Align != docx.AlignCenter {
		t.Errorf("unexpected title block %#v", doc.Blocks[0])
	}

	date, ok := doc.Blocks[1].(*docx.Paragraph)
	if !ok || len(date.Runs) != 1 || date.Runs[0].Text != "Tanggal: 19 Oktober 2026" || !date.Runs[0].Bold {
		t.Errorf("unexpected date block %#v", doc.Blocks[1])
	}

	if h, ok := doc.Blocks[2].(*docx.Heading); !ok || h.Text != HeadingOverall || h.Level != 2 {
		t.Errorf("unexpected overall heading %#v", doc.Blocks[2])
	}

	overall, ok := doc.Blocks[3].(*docx.Paragraph)
	if !ok || len(overall.Runs) != 1 {
		t.Fatalf("unexpected overall block %#v", doc.Blocks[3])
	}
	run := overall.Runs[0]
	if run.Text != "82.4 - Baik" || !run.Bold || run.Color != "43A047" || run.SizePt == nil || *run.SizePt != 14 {
		t.Errorf("unexpected overall run %+v", run)
	}

	if p, ok := doc.Blocks[4].(*docx.Paragraph); !ok || p.Text() != "Kecerdasan moral berkembang baik." {
		t.Errorf("unexpected interpretation block %#v", doc.Blocks[4])
	}
	if h, ok := doc.Blocks[5].(*docx.Heading); !ok || h.Text != HeadingDetail || h.Level != 2 {
		t.Errorf("unexpected detail heading %#v", doc.Blocks[5])
	}

	tables := doc.Tables()
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	table := tables[0]
	if table.Style != docx.StyleTableGrid || table.Columns != 3 {
		t.Errorf("table style/columns = %q/%d", table.Style, table.Columns)
	}

	want := [][]string{
		{"Aspek", "Skor", "Kategori"},
		{"Empati", "76", "Cukup"},
		{"Keadilan", "88", "Baik"},
	}
	if len(table.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(table.Rows))
	}
	for i, row := range table.Rows {
		for j, cell := range row.Cells {
			if got := cell.Text(); got != want[i][j] {
				t.Errorf("cell (%d,%d) = %q, want %q", i, j, got, want[i][j])
			}
			if i == 0 && !cell.Paragraphs[0].Runs[0].Bold {
				t.Errorf("header cell %d not bold", j)
			}
		}
	}
	if got := table.Rows[1].Cells[2].Paragraphs[0].Runs[0].Color; got != "FFA000" {
		t.Errorf("row 1 category color = %s, want FFA000", got)
	}
	if got := table.Rows[2].Cells[2].Paragraphs[0].Runs[0].Color; got != "43A047" {
		t.Errorf("row 2 category color = %s, want 43A047", got)
	}
}

func TestBuildScenarios(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, doc *docx.Document)
	}{
		{
			name:    "empty aspects gives header row only",
			payload: `{"overallScore": 50, "scoreCategory": "Cukup", "aspects": {}}`,
			check: func(t *testing.T, doc *docx.Document) {
				if rows := len(doc.Tables()[0].Rows); rows != 1 {
					t.Errorf("expected header row only, got %d rows", rows)
				}
			},
		},
		{
			name:    "unknown category is black",
			payload: `{"overallScore": 10, "scoreCategory": "Unknown"}`,
			check: func(t *testing.T, doc *docx.Document) {
				run := doc.Blocks[3].(*docx.Paragraph).Runs[0]
				if run.Color != "000000" || run.Text != "10 - Unknown" {
					t.Errorf("unexpected overall run %+v", run)
				}
			},
		},
		{
			name:    "missing aspect category is blank and black",
			payload: `{"aspects": {"kejujuran": 91}}`,
			check: func(t *testing.T, doc *docx.Document) {
				row := doc.Tables()[0].Rows[1]
				run := row.Cells[2].Paragraphs[0].Runs[0]
				if run.Text != "" || run.Color != "000000" {
					t.Errorf("unexpected category run %+v", run)
				}
				if got := row.Cells[1].Text(); got != "91" {
					t.Errorf("score cell = %q", got)
				}
			},
		},
		{
			name:    "defaults when everything is absent",
			payload: `{}`,
			check: func(t *testing.T, doc *docx.Document) {
				run := doc.Blocks[3].(*docx.Paragraph).Runs[0]
				if run.Text != "0 - " {
					t.Errorf("overall text = %q, want %q", run.Text, "0 - ")
				}
				if p := doc.Blocks[4].(*docx.Paragraph); len(p.Runs) != 0 {
					t.Errorf("expected empty interpretation paragraph, got %+v", p.Runs)
				}
			},
		},
		{
			name:    "labels are capitalized",
			payload: `{"aspects": {"KEADILAN": 1, "rasa Hormat": 2, "empati": 3}}`,
			check: func(t *testing.T, doc *docx.Document) {
				rows := doc.Tables()[0].Rows
				want := []string{"Keadilan", "Rasa hormat", "Empati"}
				for i, label := range want {
					if got := rows[i+1].Cells[0].Text(); got != label {
						t.Errorf("row %d label = %q, want %q", i+1, got, label)
					}
				}
			},
		},
		{
			name:    "half scores round to even",
			payload: `{"aspects": {"a": 75.5, "b": 74.5, "c": 88.2}}`,
			check: func(t *testing.T, doc *docx.Document) {
				rows := doc.Tables()[0].Rows
				want := []string{"76", "74", "88"}
				for i, score := range want {
					if got := rows[i+1].Cells[1].Text(); got != score {
						t.Errorf("row %d score = %q, want %q", i+1, got, score)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Build(mustDecode(t, tt.payload), generatedAt))
		})
	}
}

func TestBuildNilReport(t *testing.T) {
	doc := Build(nil, generatedAt)
	if rows := len(doc.Tables()[0].Rows); rows != 1 {
		t.Errorf("expected header row only, got %d", rows)
	}
}

func TestBuildTitleCaseLabels(t *testing.T) {
	r := NewReport()
	r.SetAspect("rasa hormat", 80, "Baik")
	r.SetAspect("TANGGUNG JAWAB", 70, "")

	doc := Build(r, generatedAt, WithLabelCase(LabelTitle))
	rows := doc.Tables()[0].Rows
	if got := rows[1].Cells[0].Text(); got != "Rasa Hormat" {
		t.Errorf("label = %q, want Rasa Hormat", got)
	}
	if got := rows[2].Cells[0].Text(); got != "Tanggung Jawab" {
		t.Errorf("label = %q, want Tanggung Jawab", got)
	}
}

func TestBuildRoundTrip(t *testing.T) {
	data, err := docx.Serialize(Build(mustDecode(t, examplePayload), generatedAt))
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	pkg, err := docx.OpenPackage(data)
	if err != nil {
		t.Fatalf("OpenPackage failed: %v", err)
	}
	if err := pkg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	texts, err := pkg.Text()
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	want := []string{
		Title,
		"Tanggal: 19 Oktober 2026",
		HeadingOverall,
		"82.4 - Baik",
		"Kecerdasan moral berkembang baik.",
		HeadingDetail,
		"Aspek", "Skor", "Kategori",
		"Empati", "76", "Cukup",
		"Keadilan", "88", "Baik",
	}
	if len(texts) != len(want) {
		t.Fatalf("got %d paragraphs %q, want %d", len(texts), texts, len(want))
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, texts[i], want[i])
		}
	}

	doc, err := pkg.Document()
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	styles, err := pkg.Styles()
	if err != nil {
		t.Fatalf("Styles failed: %v", err)
	}
	for _, id := range []string{"Heading1", "Heading2", docx.StyleTableGrid} {
		if _, ok := styles.Lookup(id); !ok {
			t.Errorf("style %s not defined", id)
		}
	}
	if len(doc.Body.Elements) != 7 {
		t.Fatalf("expected 7 body elements, got %d", len(doc.Body.Elements))
	}

	second, err := docx.Serialize(Build(mustDecode(t, examplePayload), generatedAt))
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !bytes.Equal(data, second) {
		t.Error("expected identical packages for identical input and time")
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"empati", "Empati"},
		{"KEADILAN", "Keadilan"},
		{"rasa Hormat", "Rasa hormat"},
		{"élan", "Élan"},
		{"1st aspect", "1st aspect"},
	}
	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLabelCase(t *testing.T) {
	tests := []struct {
		in      string
		want    LabelCase
		wantErr bool
	}{
		{"", LabelCapitalize, false},
		{"capitalize", LabelCapitalize, false},
		{"Title", LabelTitle, false},
		{"upper", LabelCapitalize, true},
	}
	for _, tt := range tests {
		got, err := ParseLabelCase(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLabelCase(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "05 Januari 2026"},
		{time.Date(2025, 5, 31, 23, 59, 0, 0, time.UTC), "31 Mei 2025"},
		{time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), "01 Desember 2024"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
