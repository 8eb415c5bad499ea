// Package render produces the output renditions for a stored SPDX document:
// tag-value text, an RDF/XML form, and user-supplied template files.
package render
