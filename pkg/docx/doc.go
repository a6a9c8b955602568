// Package docx builds WordprocessingML (.docx) packages from a small in-memory
// document tree and reads them back for inspection.
//
// A Document is an ordered list of blocks: headings, paragraphs made of styled
// runs, and tables whose cells hold paragraphs. Serialize turns a Document into a
// complete package: content types, package and document relationships, the main
// document part, the styles part and the document properties parts. Every part is
// produced from encoding/xml structures in the xml subpackage, and every style the
// tree references is checked against the StyleSheet before any bytes are written.
//
// Basic usage:
//
//	doc := docx.NewDocument()
//	doc.AddHeading("Report", 1).Align = docx.AlignCenter
//	doc.AddParagraph(docx.Run{Text: "Hello", Bold: true, Color: "2E7D32"})
//	tbl := doc.AddTable(2)
//	tbl.AddRow(docx.TextCell(docx.Run{Text: "Name", Bold: true}), docx.TextCell(docx.Run{Text: "Score", Bold: true}))
//
//	data, err := docx.Serialize(doc)
//
// OpenPackage reads a package back; Validate checks its internal consistency and
// Text extracts paragraph text in body order.
package docx
