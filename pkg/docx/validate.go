package docx

import (
	"fmt"
	"path"
	"strings"
)

// Validate checks the package's structural consistency: every part has a
// content type, every internal relationship resolves to a part, the main
// document is registered with the WordprocessingML content type, and every
// style the document references is defined. All problems are reported
// together as a *ValidationError.
func (p *Package) Validate() error {
	var issues []ValidationIssue
	report := func(part, format string, args ...interface{}) {
		issues = append(issues, ValidationIssue{Part: part, Message: fmt.Sprintf(format, args...)})
	}

	ct, err := p.ContentTypes()
	if err != nil {
		return &ValidationError{Issues: []ValidationIssue{{Part: PartContentTypes, Message: err.Error()}}}
	}

	for _, name := range p.PartNames() {
		if name == PartContentTypes || strings.HasSuffix(name, "/") {
			continue
		}
		if _, ok := ct.ContentTypeFor("/" + name); !ok {
			report(name, "no content type registered")
		}
	}
	for _, o := range ct.Overrides {
		if _, ok := p.parts[strings.TrimPrefix(o.PartName, "/")]; !ok {
			report(PartContentTypes, "override for missing part %s", o.PartName)
		}
	}

	for _, name := range p.PartNames() {
		if path.Base(path.Dir(name)) != "_rels" || !strings.HasSuffix(name, ".rels") {
			continue
		}
		source := sourceOfRels(name)
		rels, err := p.Relationships(source)
		if err != nil {
			report(name, "%v", err)
			continue
		}
		ids := map[string]bool{}
		for _, rel := range rels {
			if ids[rel.ID] {
				report(name, "duplicate relationship id %s", rel.ID)
			}
			ids[rel.ID] = true
			if rel.TargetMode == "External" {
				continue
			}
			target := resolveTarget(source, rel.Target)
			if _, ok := p.parts[target]; !ok {
				report(name, "relationship %s targets missing part %s", rel.ID, target)
			}
		}
	}

	docName, err := p.MainDocumentPart()
	if err != nil {
		report(PartRootRels, "%v", err)
		return &ValidationError{Issues: issues}
	}
	if got, _ := ct.ContentTypeFor("/" + docName); got != ContentTypeMainDocument {
		report(docName, "content type %q, want %q", got, ContentTypeMainDocument)
	}

	doc, err := p.Document()
	if err != nil {
		report(docName, "%v", err)
	} else {
		styles, err := p.Styles()
		if err != nil {
			report(docName, "%v", err)
		} else {
			has := func(id string) bool {
				_, ok := styles.Lookup(id)
				return ok
			}
			for _, id := range missingStyles(doc, has) {
				report(docName, "references undefined style %s", id)
			}
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// sourceOfRels is the inverse of relsPartName
func sourceOfRels(relsName string) string {
	if relsName == PartRootRels {
		return ""
	}
	dir, base := path.Split(relsName)
	dir = strings.TrimSuffix(strings.TrimSuffix(dir, "/"), "_rels")
	return dir + strings.TrimSuffix(base, ".rels")
}
