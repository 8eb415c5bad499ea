// Package license models extracted licensing statements and their SPDX
// serializations.
//
// An Info value carries the fields a scan or an operator attaches to a file:
// the human-readable license identifier, extracted text, cross references,
// and an optional comment. The tag-value and RDF renderings follow the SPDX
// 2.1 extracted-licensing layout.
package license
