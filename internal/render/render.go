package render

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"spdxgen/internal/docstore"
	"spdxgen/internal/filetype"
	"spdxgen/internal/fingerprint"
	"spdxgen/internal/license"
)

const (
	spdxVersion = "SPDX-2.1"
	dataLicense = "CC0-1.0"
	documentRef = "SPDXRef-DOCUMENT"
)

// Template renders the template file at path with the provided data.
func Template(path string, data any) (string, error) {
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// TagDocument renders a document with its package, files, and extracted
// licensing records as SPDX tag-value text.
func TagDocument(doc *docstore.Document, pkg *docstore.Package, files []*docstore.PackageFile, licensings []*license.Info, creator string) string {
	var b strings.Builder

	b.WriteString("SPDXVersion: " + spdxVersion + "\n")
	b.WriteString("DataLicense: " + dataLicense + "\n")
	b.WriteString("SPDXID: " + documentRef + "\n")
	b.WriteString("DocumentName: " + doc.Name + "\n")
	b.WriteString("DocumentNamespace: " + doc.Namespace + "\n")
	b.WriteString("Creator: " + creator + "\n")
	b.WriteString("Created: " + formatCreated(doc.CreatedAt) + "\n")

	if pkg != nil {
		b.WriteString("\n## Package Information\n")
		b.WriteString("PackageName: " + pkg.Name + "\n")
		b.WriteString("SPDXID: " + doc.SPDXRef + "\n")
		if pkg.FileName != "" {
			b.WriteString("PackageFileName: " + pkg.FileName + "\n")
		}
		if pkg.Checksum != "" {
			b.WriteString("PackageChecksum: " + fingerprint.AlgorithmSHA1 + ": " + pkg.Checksum + "\n")
		}
		b.WriteString("PackageVerificationCode: " + pkg.VerificationCode + "\n")
	}

	for _, file := range files {
		b.WriteString("\n## File Information\n")
		b.WriteString("FileName: " + file.FileName + "\n")
		b.WriteString(fmt.Sprintf("SPDXID: SPDXRef-File-%d\n", file.ID))
		// Stored types are free strings; only the canonical vocabulary may
		// appear on a FileType line.
		if kind, ok := filetype.ParseType(file.FileType); ok {
			b.WriteString("FileType: " + kind.String() + "\n")
		}
		b.WriteString("FileChecksum: " + fingerprint.AlgorithmSHA1 + ": " + file.Checksum + "\n")
	}

	if len(licensings) > 0 {
		b.WriteString("\n## Extracted Licensing Information\n")
		for _, info := range licensings {
			b.WriteString("\n")
			b.WriteString(info.TagValue())
		}
	}

	return b.String()
}

// RDFDocument renders a document with its package, files, and extracted
// licensing records as an RDF/XML rendition.
func RDFDocument(doc *docstore.Document, pkg *docstore.Package, files []*docstore.PackageFile, licensings []*license.Info, creator string) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"` + "\n")
	b.WriteString(`         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"` + "\n")
	b.WriteString(`         xmlns="http://spdx.org/rdf/terms#">` + "\n")
	b.WriteString(`<SpdxDocument rdf:about="` + doc.Namespace + "#" + documentRef + `">` + "\n")
	b.WriteString("\t<specVersion>" + spdxVersion + "</specVersion>\n")
	b.WriteString("\t<dataLicense rdf:resource=\"http://spdx.org/licenses/" + dataLicense + "\"/>\n")
	b.WriteString("\t<name>" + doc.Name + "</name>\n")
	b.WriteString("\t<creationInfo>\n")
	b.WriteString("\t\t<CreationInfo>\n")
	b.WriteString("\t\t\t<creator>" + creator + "</creator>\n")
	b.WriteString("\t\t\t<created>" + formatCreated(doc.CreatedAt) + "</created>\n")
	b.WriteString("\t\t</CreationInfo>\n")
	b.WriteString("\t</creationInfo>\n")

	if pkg != nil {
		b.WriteString("\t<describesPackage>\n")
		b.WriteString("\t\t<Package rdf:about=\"" + doc.Namespace + "#" + doc.SPDXRef + "\">\n")
		b.WriteString("\t\t\t<name>" + pkg.Name + "</name>\n")
		if pkg.FileName != "" {
			b.WriteString("\t\t\t<packageFileName>" + pkg.FileName + "</packageFileName>\n")
		}
		if pkg.Checksum != "" {
			b.WriteString("\t\t\t<checksumValue>" + pkg.Checksum + "</checksumValue>\n")
		}
		b.WriteString("\t\t\t<packageVerificationCode>" + pkg.VerificationCode + "</packageVerificationCode>\n")
		for _, file := range files {
			b.WriteString("\t\t\t<hasFile>\n")
			b.WriteString(fmt.Sprintf("\t\t\t\t<File rdf:about=\"%s#SPDXRef-File-%d\">\n", doc.Namespace, file.ID))
			b.WriteString("\t\t\t\t\t<fileName>" + file.FileName + "</fileName>\n")
			if kind, ok := filetype.ParseType(file.FileType); ok {
				b.WriteString("\t\t\t\t\t<fileType>" + kind.String() + "</fileType>\n")
			}
			b.WriteString("\t\t\t\t\t<checksumValue>" + file.Checksum + "</checksumValue>\n")
			b.WriteString("\t\t\t\t</File>\n")
			b.WriteString("\t\t\t</hasFile>\n")
		}
		b.WriteString("\t\t</Package>\n")
		b.WriteString("\t</describesPackage>\n")
	}

	for _, info := range licensings {
		b.WriteString("\t<ExtractedLicensingInfo>\n")
		b.WriteString(info.RDF())
		b.WriteString("\t</ExtractedLicensingInfo>\n")
	}

	b.WriteString("</SpdxDocument>\n")
	b.WriteString("</rdf:RDF>\n")

	return b.String()
}

func formatCreated(created time.Time) string {
	return created.UTC().Format(time.RFC3339)
}
