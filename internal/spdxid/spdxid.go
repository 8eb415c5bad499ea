package spdxid

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RefPrefix starts every SPDX element reference this tool generates.
const RefPrefix = "SPDXRef-"

// NewRef returns a globally unique SPDX element reference.
func NewRef() string {
	return RefPrefix + uuid.NewString()
}

// NamespaceSuffix returns a unique namespace suffix embedding the document
// name, suitable for appending to a namespace base URL.
func NamespaceSuffix(docName string) string {
	return "/" + docName + "-" + uuid.NewString()
}

// Namespace joins the configured namespace base with a fresh suffix for the
// named document.
func Namespace(base, docName string) string {
	return strings.TrimRight(base, "/") + NamespaceSuffix(docName)
}

// PackageName strips the extension from a package file name, peeling the
// extra ".tar" layer off compound extensions like .tar.gz and .tar.bz2.
func PackageName(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if strings.HasSuffix(name, ".tar") {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

// DocumentTitle derives a human-readable document name from a package path:
// the base name without extension, separator runs collapsed to single spaces,
// title-cased. Paths that yield nothing fall back to "Unknown Package".
func DocumentTitle(sourcePath string) string {
	if sourcePath == "" {
		return "Unknown Package"
	}
	base := filepath.Base(sourcePath)
	base = PackageName(base)
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown Package"
	}
	return cases.Title(language.Und).String(title)
}
