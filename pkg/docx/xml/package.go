package xml

import "encoding/xml"

// ContentTypes represents [Content_Types].xml
type ContentTypes struct {
	XMLName   xml.Name   `xml:"Types"`
	Namespace string     `xml:"xmlns,attr"`
	Defaults  []Default  `xml:"Default"`
	Overrides []Override `xml:"Override"`
}

// Default maps a file extension to a content type
type Default struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Override maps a single part name to a content type
type Override struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeFor resolves the content type registered for partName ("/word/document.xml")
func (ct *ContentTypes) ContentTypeFor(partName string) (string, bool) {
	for _, o := range ct.Overrides {
		if o.PartName == partName {
			return o.ContentType, true
		}
	}
	ext := ""
	for i := len(partName) - 1; i >= 0 && partName[i] != '/'; i-- {
		if partName[i] == '.' {
			ext = partName[i+1:]
			break
		}
	}
	for _, d := range ct.Defaults {
		if d.Extension == ext {
			return d.ContentType, true
		}
	}
	return "", false
}

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// CoreProperties represents docProps/core.xml
type CoreProperties struct {
	XMLName        xml.Name `xml:"cp:coreProperties"`
	NamespaceCP    string   `xml:"xmlns:cp,attr"`
	NamespaceDC    string   `xml:"xmlns:dc,attr"`
	NamespaceTerms string   `xml:"xmlns:dcterms,attr"`
	NamespaceType  string   `xml:"xmlns:dcmitype,attr"`
	NamespaceXSI   string   `xml:"xmlns:xsi,attr"`
	Title          string   `xml:"dc:title,omitempty"`
	Subject        string   `xml:"dc:subject,omitempty"`
	Creator        string   `xml:"dc:creator,omitempty"`
	Language       string   `xml:"dc:language,omitempty"`
	LastModifiedBy string   `xml:"cp:lastModifiedBy,omitempty"`
	Revision       int      `xml:"cp:revision"`
	Created        W3CDTF   `xml:"dcterms:created"`
	Modified       W3CDTF   `xml:"dcterms:modified"`
}

// W3CDTF is a dcterms date element typed as xsi:type="dcterms:W3CDTF"
type W3CDTF struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// AppProperties represents docProps/app.xml
type AppProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Namespace   string   `xml:"xmlns,attr"`
	NamespaceVT string   `xml:"xmlns:vt,attr"`
	Application string   `xml:"Application"`
	DocSecurity int      `xml:"DocSecurity"`
}
