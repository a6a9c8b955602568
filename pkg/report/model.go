package report

import (
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Score is a numeric score that remembers how it was written. Integers render
// as written; scores written with a fraction or exponent always render with a
// decimal point ("82.0", "82.4").
type Score struct {
	Value float64
	Float bool
	// literal holds the exact digits of an integer score
	literal string
}

// IntScore returns an integer score
func IntScore(v int64) Score {
	return Score{Value: float64(v), literal: strconv.FormatInt(v, 10)}
}

// FloatScore returns a fractional score
func FloatScore(v float64) Score {
	return Score{Value: v, Float: true}
}

func (s Score) String() string {
	if s.Float {
		return formatFloat(s.Value)
	}
	if s.literal != "" {
		return s.literal
	}
	v := math.Trunc(s.Value)
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// formatFloat renders the shortest representation that reads back as v, in
// plain notation between 1e-4 and 1e16 and in exponent notation outside it.
func formatFloat(v float64) string {
	if v == 0 {
		v = 0 // folds -0
	}
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// Report is a normalized assessment result. Every field is populated; the zero
// value of each is the default for an absent input field.
type Report struct {
	OverallScore        Score
	ScoreCategory       string
	ScoreInterpretation string
	// Aspects keeps insertion order
	Aspects          *orderedmap.OrderedMap[string, float64]
	AspectCategories map[string]string
}

// NewReport returns an empty report
func NewReport() *Report {
	return &Report{
		Aspects:          orderedmap.New[string, float64](),
		AspectCategories: map[string]string{},
	}
}

// AspectCategory returns the category of an aspect, "" when none was given
func (r *Report) AspectCategory(name string) string {
	return r.AspectCategories[name]
}

// SetAspect records an aspect score and category. Re-setting an aspect keeps
// its original position.
func (r *Report) SetAspect(name string, score float64, category string) {
	r.Aspects.Set(name, score)
	if category != "" {
		r.AspectCategories[name] = category
	}
}

// RoundScore rounds half to even, the rule used for every aspect score.
// Non-finite scores round to 0.
func RoundScore(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := math.RoundToEven(v)
	if r == 0 {
		return 0
	}
	return r
}

// FormatAspectScore renders an aspect score as a plain integer
func FormatAspectScore(v float64) string {
	return strconv.FormatFloat(RoundScore(v), 'f', 0, 64)
}
