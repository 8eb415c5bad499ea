// Package archive unpacks tar and zip package archives into short-lived
// scratch directories for scanning.
//
// Extraction follows a strict scoped pattern: the scratch directory is
// created on entry and recursively removed when the scope ends, whatever the
// outcome. Callers that need the directory beyond a single function should
// use Extract and Close; everything else should prefer WithExtraction.
package archive
