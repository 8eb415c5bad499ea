// Package docstore persists SPDX documents, packages, files, and licensing
// records in SQLite.
//
// The Store manages database connections, schema initialization, and the
// insert and lookup paths the scanner and CLI rely on. Rows are insert-only:
// documents accumulate as scans run, and licensing entries are written in a
// single transaction covering the license catalog, its document association,
// and the file link so a failed insert leaves no orphan rows.
//
// Schema changes bump the version in schema.go; users delete the database to
// adopt the new schema.
package docstore
