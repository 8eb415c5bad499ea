package license

import "strings"

// Info is one extracted licensing statement tied to a scanned file by its
// checksum.
//
// Comment is a pointer so an absent comment can be told apart from an empty
// one. The two serializers treat that distinction differently and both
// behaviours are relied upon by downstream consumers.
type Info struct {
	LicenseID       string
	Name            string
	ExtractedText   string
	CrossReferences []string
	Comment         *string
	FileChecksum    string
}

// Comment constructs the pointer form of a comment value.
func Comment(value string) *string {
	return &value
}

// CommentText returns the comment or the empty string when absent.
func (i *Info) CommentText() string {
	if i.Comment == nil {
		return ""
	}
	return *i.Comment
}

// TagValue renders the tag-value fragment for the licensing statement.
// Cross references keep their input order. The comment line appears only when
// a comment is present and non-empty.
func (i *Info) TagValue() string {
	var b strings.Builder
	b.WriteString("LicenseID: " + i.LicenseID + "\n")
	b.WriteString("LicenseName: " + i.Name + "\n")
	for _, ref := range i.CrossReferences {
		b.WriteString("LicenseCrossReference: " + ref + "\n")
	}
	b.WriteString("ExtractedText: <text>" + i.ExtractedText + "</text>\n")
	if i.Comment != nil && *i.Comment != "" {
		b.WriteString("LicenseComment: <text>" + *i.Comment + "</text>\n")
	}
	return b.String()
}

// RDF renders the RDF/XML fragment for the licensing statement, one seeAlso
// element per cross reference. Unlike the tag form, an empty comment still
// serializes here; only an absent one is omitted.
func (i *Info) RDF() string {
	var b strings.Builder
	b.WriteString("\t\t<licenseId>" + i.LicenseID + "</licenseId>\n")
	b.WriteString("\t\t<licenseName>" + i.Name + "</licenseName>\n")
	b.WriteString("\t\t<extractedText>" + i.ExtractedText + "</extractedText>\n")
	for _, ref := range i.CrossReferences {
		b.WriteString("\t\t<rdfs:seeAlso>" + ref + "</rdfs:seeAlso>\n")
	}
	if i.Comment != nil {
		b.WriteString("\t\t<rdfs:comment>" + *i.Comment + "</rdfs:comment>\n")
	}
	return b.String()
}
