package report

// DefaultColor is used for any category outside the known bands
const DefaultColor = "000000"

var categoryColors = map[string]string{
	"Sangat Baik":   "2E7D32",
	"Baik":          "43A047",
	"Cukup":         "FFA000",
	"Kurang":        "E53935",
	"Sangat Kurang": "B71C1C",
}

// ColorFor returns the RGB hex color for a category label. Matching is exact
// and case-sensitive.
func ColorFor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return DefaultColor
}
