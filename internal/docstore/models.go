package docstore

import "time"

// Document is a persisted SPDX document header row.
type Document struct {
	ID        int64
	Name      string
	Namespace string
	SPDXRef   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Package is the package described by an SPDX document. The current document
// model carries exactly one package per document.
type Package struct {
	ID               int64
	DocumentID       int64
	Name             string
	FileName         string
	Checksum         string
	VerificationCode string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PackageFile is a single scanned file belonging to a package.
type PackageFile struct {
	ID        int64
	PackageID int64
	FileName  string
	Checksum  string
	FileType  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LicensingOptions carries license catalog attributes that are not part of
// the extracted licensing record itself.
type LicensingOptions struct {
	OSIApproved    bool
	StandardHeader string
}

// Licensing summarizes one file-to-license link for listings.
type Licensing struct {
	ID            int64
	AssociationID int64
	FileID        int64
	FileName      string
	LicenseID     string
	LicenseName   string
	CreatedAt     time.Time
}

// HealthSummary aggregates row counts for diagnostic output.
type HealthSummary struct {
	Documents  int
	Packages   int
	Files      int
	Licenses   int
	Licensings int
}

// DatabaseHealth captures diagnostic information about the document database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	TableExists      bool
	ColumnsPresent   []string
	MissingColumns   []string
	IntegrityCheck   bool
	TotalDocuments   int
	Error            string
}
