package magic

import "github.com/gabriel-vasile/mimetype"

// mimeDescriptions maps detected MIME types to the phrases file(1) prints for
// the same content. Downstream classification matches on these phrases, so
// the wording follows file(1) output rather than the MIME names. Ordered most
// specific first.
var mimeDescriptions = []struct {
	mime string
	text string
}{
	{"text/x-shellscript", "POSIX shell script, ASCII text executable"},
	{"text/x-python", "Python script, ASCII text executable"},
	{"text/x-perl", "Perl script, ASCII text executable"},
	{"text/x-php", "PHP script, ASCII text"},
	{"text/html", "HTML document, ASCII text"},
	{"image/svg+xml", "SVG Scalable Vector Graphics image, XML 1.0 document, ASCII text"},
	{"text/xml", "XML 1.0 document, ASCII text"},
	{"application/x-executable", "ELF 64-bit LSB executable"},
	{"application/x-sharedlib", "ELF 64-bit LSB shared object"},
	{"application/x-object", "ELF 64-bit LSB relocatable"},
	{"application/x-archive", "current ar archive"},
	{"application/x-tar", "POSIX tar archive"},
	{"application/zip", "Zip archive data, at least v2.0 to extract"},
	{"application/vnd.debian.binary-package", "Debian binary package"},
	{"application/x-rpm", "RPM v3.0 bin"},
	{"application/gzip", "gzip compressed data"},
	{"application/x-bzip2", "bzip2 compressed data"},
	{"application/x-xz", "XZ compressed data"},
	{"application/x-7z-compressed", "7-zip archive data"},
	{"application/pdf", "PDF document"},
	{"application/json", "JSON text data"},
	{"text/csv", "CSV text"},
}

// fallbackDescription renders a detected MIME type as a file(1) style phrase.
// Unmatched text types collapse to plain text and everything else to the
// generic "data" answer file(1) gives for unknown content.
func fallbackDescription(mtype *mimetype.MIME) string {
	if mtype == nil {
		return "data"
	}

	for _, entry := range mimeDescriptions {
		if mtype.Is(entry.mime) {
			return entry.text
		}
	}

	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return "ASCII text"
		}
	}

	return "data"
}
