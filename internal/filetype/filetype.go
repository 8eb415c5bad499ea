package filetype

import "strings"

// Type is the SPDX file-type category assigned to a scanned file.
type Type string

const (
	Source  Type = "SOURCE"
	Binary  Type = "BINARY"
	Archive Type = "ARCHIVE"
	Other   Type = "OTHER"
)

var allTypes = []Type{Source, Binary, Archive, Other}

var typeSet = func() map[Type]struct{} {
	set := make(map[Type]struct{}, len(allTypes))
	for _, t := range allTypes {
		set[t] = struct{}{}
	}
	return set
}()

// ParseType converts a stored string into a Type.
func ParseType(value string) (Type, bool) {
	normalized := Type(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := typeSet[normalized]; ok {
		return normalized, true
	}
	return "", false
}

// String returns the stored representation of the type.
func (t Type) String() string { return string(t) }

var binaryPatterns = []string{
	" executable",
	" relocatable",
	" shared object",
	" dynamically linked",
	" ar archive",
}

// Classify maps a content-probe description (the free text a magic-number
// probe reports for a file) to a file-type category. Rules apply in precedence
// order and the first match wins; "ar archive" lands in Binary because the
// binary rules run before the archive rule. Probe strings matching no rule
// resolve to Other, never to an error.
func Classify(probe string) Type {
	switch {
	case isSource(probe):
		return Source
	case isBinary(probe):
		return Binary
	case strings.Contains(probe, "archive"):
		return Archive
	default:
		return Other
	}
}

func isSource(probe string) bool {
	// Leading spaces matter: " text" must not match "context". The HTML and
	// XML rules pair with a bare "text" instead.
	hasText := strings.Contains(probe, " text")
	switch {
	case hasText && strings.Contains(probe, " source"):
		return true
	case hasText && strings.Contains(probe, " script"):
		return true
	case hasText && strings.Contains(probe, " program"):
		return true
	case strings.Contains(probe, " shell script"):
		return true
	case strings.Contains(probe, " text executable"):
		return true
	case strings.Contains(probe, "HTML") && strings.Contains(probe, "text"):
		return true
	case strings.Contains(probe, "XML") && strings.Contains(probe, "text"):
		return true
	}
	return false
}

func isBinary(probe string) bool {
	for _, pattern := range binaryPatterns {
		if strings.Contains(probe, pattern) {
			return true
		}
	}
	return false
}
