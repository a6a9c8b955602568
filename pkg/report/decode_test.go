package report

import (
	"errors"
	"testing"
)

func aspectKeys(r *Report) []string {
	var keys []string
	for pair := r.Aspects.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, r *Report)
	}{
		{
			name: "full payload",
			input: `{
				"overallScore": 82.4,
				"scoreCategory": "Baik",
				"scoreInterpretation": "Cukup konsisten.",
				"aspects": {"keadilan": 88.2, "empati": 75.6, "Tanggung jawab": 90},
				"aspectCategories": {"empati": "Cukup", "keadilan": "Baik"}
			}`,
			check: func(t *testing.T, r *Report) {
				if got := r.OverallScore.String(); got != "82.4" {
					t.Errorf("overall = %q, want 82.4", got)
				}
				if r.ScoreCategory != "Baik" || r.ScoreInterpretation != "Cukup konsisten." {
					t.Errorf("unexpected text fields %+v", r)
				}
				keys := aspectKeys(r)
				want := []string{"keadilan", "empati", "Tanggung jawab"}
				if len(keys) != len(want) {
					t.Fatalf("aspects = %v, want %v", keys, want)
				}
				for i := range want {
					if keys[i] != want[i] {
						t.Errorf("aspect %d = %q, want %q", i, keys[i], want[i])
					}
				}
				if v, _ := r.Aspects.Get("empati"); v != 75.6 {
					t.Errorf("empati = %v", v)
				}
				if r.AspectCategory("Tanggung jawab") != "" {
					t.Errorf("expected empty category for missing entry")
				}
				if r.AspectCategory("keadilan") != "Baik" {
					t.Errorf("keadilan category = %q", r.AspectCategory("keadilan"))
				}
			},
		},
		{
			name:  "empty object defaults everything",
			input: `{}`,
			check: func(t *testing.T, r *Report) {
				if got := r.OverallScore.String(); got != "0" {
					t.Errorf("overall = %q, want 0", got)
				}
				if r.ScoreCategory != "" || r.ScoreInterpretation != "" {
					t.Errorf("expected empty strings")
				}
				if r.Aspects.Len() != 0 || len(r.AspectCategories) != 0 {
					t.Errorf("expected empty maps")
				}
			},
		},
		{
			name:  "integer and integral float scores keep their form",
			input: `{"overallScore": 82, "aspects": {"a": 1}}`,
			check: func(t *testing.T, r *Report) {
				if got := r.OverallScore.String(); got != "82" {
					t.Errorf("overall = %q, want 82", got)
				}
			},
		},
		{
			name:  "integral float",
			input: `{"overallScore": 82.0}`,
			check: func(t *testing.T, r *Report) {
				if got := r.OverallScore.String(); got != "82.0" {
					t.Errorf("overall = %q, want 82.0", got)
				}
			},
		},
		{
			name:  "exponent",
			input: `{"overallScore": 1e2}`,
			check: func(t *testing.T, r *Report) {
				if got := r.OverallScore.String(); got != "100.0" {
					t.Errorf("overall = %q, want 100.0", got)
				}
			},
		},
		{
			name: "wrong types default silently",
			input: `{
				"overallScore": "82",
				"scoreCategory": 5,
				"scoreInterpretation": null,
				"aspects": {"empati": "tinggi", "adil": 70},
				"aspectCategories": {"empati": 3, "adil": "Baik"}
			}`,
			check: func(t *testing.T, r *Report) {
				if got := r.OverallScore.String(); got != "0" {
					t.Errorf("overall = %q, want 0", got)
				}
				if r.ScoreCategory != "" || r.ScoreInterpretation != "" {
					t.Errorf("expected empty strings, got %q %q", r.ScoreCategory, r.ScoreInterpretation)
				}
				if v, ok := r.Aspects.Get("empati"); !ok || v != 0 {
					t.Errorf("empati = %v, %v; want 0, true", v, ok)
				}
				if r.AspectCategory("empati") != "" || r.AspectCategory("adil") != "Baik" {
					t.Errorf("unexpected categories %v", r.AspectCategories)
				}
			},
		},
		{
			name:  "aspects not an object",
			input: `{"aspects": [1, 2], "aspectCategories": "x"}`,
			check: func(t *testing.T, r *Report) {
				if r.Aspects.Len() != 0 || len(r.AspectCategories) != 0 {
					t.Errorf("expected empty maps")
				}
			},
		},
		{
			name:  "out of range number",
			input: `{"overallScore": 1e999, "aspects": {"a": -1e999}}`,
			check: func(t *testing.T, r *Report) {
				if got := r.OverallScore.String(); got != "0" {
					t.Errorf("overall = %q, want 0", got)
				}
				if v, _ := r.Aspects.Get("a"); v != 0 {
					t.Errorf("a = %v, want 0", v)
				}
			},
		},
		{
			name:  "negative zero",
			input: `{"overallScore": -0}`,
			check: func(t *testing.T, r *Report) {
				if got := r.OverallScore.String(); got != "0" {
					t.Errorf("overall = %q, want 0", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DecodeJSON([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeJSON failed: %v", err)
			}
			tt.check(t, r)
		})
	}
}

func TestDecodeJSONRejectsUnreadablePayloads(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		notObject bool
	}{
		{name: "syntax error", input: `{"overallScore": `},
		{name: "empty body", input: ``},
		{name: "array", input: `[1, 2]`, notObject: true},
		{name: "string", input: `"report"`, notObject: true},
		{name: "null", input: `null`, notObject: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			var perr *PayloadError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *PayloadError, got %T", err)
			}
			if got := errors.Is(err, ErrNotObject); got != tt.notObject {
				t.Errorf("errors.Is(err, ErrNotObject) = %v, want %v", got, tt.notObject)
			}
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	input := `
overallScore: 82.4
scoreCategory: Baik
scoreInterpretation: |
  Baris pertama
  Baris kedua
aspects:
  keadilan: 88.2
  empati: 75.6
  kejujuran: 90
aspectCategories:
  empati: Cukup
  keadilan: Baik
`
	r, err := DecodeYAML([]byte(input))
	if err != nil {
		t.Fatalf("DecodeYAML failed: %v", err)
	}
	if got := r.OverallScore.String(); got != "82.4" {
		t.Errorf("overall = %q", got)
	}
	if r.ScoreInterpretation != "Baris pertama\nBaris kedua\n" {
		t.Errorf("interpretation = %q", r.ScoreInterpretation)
	}
	keys := aspectKeys(r)
	if len(keys) != 3 || keys[0] != "keadilan" || keys[1] != "empati" || keys[2] != "kejujuran" {
		t.Errorf("aspect order = %v", keys)
	}
	if v, _ := r.Aspects.Get("kejujuran"); v != 90 {
		t.Errorf("kejujuran = %v", v)
	}
	if r.AspectCategory("empati") != "Cukup" {
		t.Errorf("empati category = %q", r.AspectCategory("empati"))
	}

	floats := []struct {
		input string
		want  string
	}{
		{"overallScore: 82.0", "82.0"},
		{"overallScore: 82", "82"},
		{"overallScore: .inf", "0"},
		{"overallScore: '82'", "0"},
	}
	for _, tt := range floats {
		r, err := DecodeYAML([]byte(tt.input))
		if err != nil {
			t.Fatalf("DecodeYAML(%q) failed: %v", tt.input, err)
		}
		if got := r.OverallScore.String(); got != tt.want {
			t.Errorf("DecodeYAML(%q) overall = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDecodeYAMLRejectsNonMapping(t *testing.T) {
	for _, input := range []string{"- 1\n- 2\n", "", "just text", "a: [unclosed"} {
		_, err := DecodeYAML([]byte(input))
		if err == nil {
			t.Errorf("DecodeYAML(%q): expected error", input)
			continue
		}
		var perr *PayloadError
		if !errors.As(err, &perr) || perr.Format != "YAML" {
			t.Errorf("DecodeYAML(%q): expected YAML PayloadError, got %v", input, err)
		}
	}
}

func TestScoreString(t *testing.T) {
	tests := []struct {
		score Score
		want  string
	}{
		{Score{}, "0"},
		{IntScore(82), "82"},
		{IntScore(-3), "-3"},
		{FloatScore(82.4), "82.4"},
		{FloatScore(82), "82.0"},
		{FloatScore(1e16), "1e+16"},
		{FloatScore(0.00001), "1e-05"},
		{FloatScore(0.0001), "0.0001"},
	}
	for _, tt := range tests {
		if got := tt.score.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFormatAspectScore(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{75.6, "76"},
		{88.2, "88"},
		{75.5, "76"},
		{74.5, "74"},
		{0.5, "0"},
		{-0.4, "0"},
		{-2.5, "-2"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := FormatAspectScore(tt.in); got != tt.want {
			t.Errorf("FormatAspectScore(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
