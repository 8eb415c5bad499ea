// Package filetype assigns SPDX file-type categories to scanned files based
// on the description string a content probe reports for them.
//
// Classification is a best-effort heuristic over probe phrasing, not a
// guarantee. Anything the rules do not recognize is categorized Other so a
// scan never fails on an exotic file.
package filetype
