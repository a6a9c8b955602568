// Package xml provides the WordprocessingML element structures used to write and
// read back the parts of a DOCX package.
//
// DOCX files are ZIP archives of XML parts. This package models the subset of the
// main document and styles parts that moralreport produces, plus the package-level
// parts (content types, relationships, document properties).
//
// # Structure Organization
//
//   - types.go: Core interfaces (BodyElement) and shared value types
//   - document.go: Top-level Document and Body structures
//   - paragraph.go: Paragraph elements and their properties (style, alignment, spacing)
//   - run.go: Run elements (text runs with formatting) and Text
//   - table.go: Table structures (Table, TableRow, TableCell) and their properties
//   - section.go: Section properties (page size and margins)
//   - styles.go: The styles part (docDefaults and style definitions)
//   - package.go: Content types, relationships and document properties parts
//
// # Namespaces
//
// Elements are marshaled with literal "w:" prefixed names; the root element of each
// part declares the prefixes it uses, so the output is namespace-correct without a
// post-processing pass:
//   - w: (word processing) - Main WordprocessingML namespace
//   - r: (relationships) - Relationships namespace
//
// When parts are read back, encoding/xml resolves prefixes to namespace URIs and the
// UnmarshalXML implementations match on local names.
//
// Example of building a document directly:
//
//	doc := &xml.Document{
//	    Body: &xml.Body{
//	        Elements: []xml.BodyElement{
//	            &xml.Paragraph{
//	                Runs: []xml.Run{
//	                    {Text: &xml.Text{Content: "Hello, world!"}},
//	                },
//	            },
//	        },
//	    },
//	}
package xml
