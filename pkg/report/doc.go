// Package report turns an assessment result into a docx.Document.
//
// DecodeJSON and DecodeYAML normalize an inbound payload into a fully populated
// Report: absent or wrongly typed fields take their zero defaults, and the order
// in which aspects were written is kept because it decides table row order.
// Build lays the report out as a title, a date line, the overall score colored by
// its category, the interpretation text, and a table of aspect scores.
package report
