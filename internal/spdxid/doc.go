// Package spdxid generates the identifier strings an SPDX document needs:
// SPDXRef element references, document namespace suffixes, and the friendly
// names derived from package file names.
package spdxid
