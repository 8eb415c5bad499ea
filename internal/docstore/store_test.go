package docstore_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"spdxgen/internal/docstore"
	"spdxgen/internal/license"
	"spdxgen/internal/testsupport"
)

func seedPackageFile(t *testing.T, store *docstore.Store, checksum string) (*docstore.Document, *docstore.Package, *docstore.PackageFile) {
	t.Helper()
	ctx := context.Background()

	doc, err := store.CreateDocument(ctx, "Zlib", "https://spdx.example.org/spdxdocs/zlib-1234", "SPDXRef-doc")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	pkg, err := store.CreatePackage(ctx, doc.ID, "zlib", "zlib-1.2.11.tar.gz", "aabbcc", "0123456789abcdef0123456789abcdef01234567")
	if err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}
	file, err := store.AddPackageFile(ctx, pkg.ID, "zlib-1.2.11/adler32.c", checksum, "SOURCE")
	if err != nil {
		t.Fatalf("AddPackageFile: %v", err)
	}
	return doc, pkg, file
}

func TestOpenInitializesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	doc, err := store.CreateDocument(ctx, "Sample Package", "https://spdx.example.org/spdxdocs/sample-1", "SPDXRef-abc")
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if doc.ID == 0 {
		t.Fatal("expected document ID to be assigned")
	}
	if doc.CreatedAt.IsZero() || doc.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps populated, got %#v", doc)
	}

	fetched, err := store.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if fetched == nil || fetched.Name != "Sample Package" || fetched.SPDXRef != "SPDXRef-abc" {
		t.Fatalf("unexpected fetched document: %#v", fetched)
	}

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("unexpected document list: %#v", docs)
	}
}

func TestGetDocumentMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	doc, err := store.GetDocument(context.Background(), 12345)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if doc != nil {
		t.Fatalf("expected nil document for missing id, got %#v", doc)
	}
}

func TestCreatePackageAndFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	doc := testsupport.NewDocument(t, store, "Zlib", "https://spdx.example.org/spdxdocs/zlib-1", "SPDXRef-1")

	pkg, err := store.CreatePackage(ctx, doc.ID, "zlib", "zlib-1.2.11.tar.gz", "f00d", "da39a3ee5e6b4b0d3255bfef95601890afd80709")
	if err != nil {
		t.Fatalf("CreatePackage failed: %v", err)
	}
	if pkg.DocumentID != doc.ID || pkg.VerificationCode == "" {
		t.Fatalf("unexpected package: %#v", pkg)
	}

	found, err := store.PackageByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("PackageByDocument failed: %v", err)
	}
	if found == nil || found.ID != pkg.ID {
		t.Fatalf("expected package for document, got %#v", found)
	}

	first, err := store.AddPackageFile(ctx, pkg.ID, "zlib/adler32.c", "1111", "SOURCE")
	if err != nil {
		t.Fatalf("AddPackageFile failed: %v", err)
	}
	second, err := store.AddPackageFile(ctx, pkg.ID, "zlib/libz.so.1", "2222", "BINARY")
	if err != nil {
		t.Fatalf("AddPackageFile failed: %v", err)
	}

	files, err := store.FilesByPackage(ctx, pkg.ID)
	if err != nil {
		t.Fatalf("FilesByPackage failed: %v", err)
	}
	if len(files) != 2 || files[0].ID != first.ID || files[1].ID != second.ID {
		t.Fatalf("unexpected file ordering: %#v", files)
	}
	if files[1].FileType != "BINARY" {
		t.Fatalf("expected BINARY file type, got %q", files[1].FileType)
	}

	byChecksum, err := store.FileByChecksum(ctx, "1111")
	if err != nil {
		t.Fatalf("FileByChecksum failed: %v", err)
	}
	if byChecksum == nil || byChecksum.ID != first.ID {
		t.Fatalf("expected file by checksum, got %#v", byChecksum)
	}

	missing, err := store.FileByChecksum(ctx, "9999")
	if err != nil {
		t.Fatalf("FileByChecksum miss failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown checksum, got %#v", missing)
	}
}

func TestPackageByDocumentMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	doc := testsupport.NewDocument(t, store, "Empty", "https://spdx.example.org/spdxdocs/empty-1", "SPDXRef-1")
	pkg, err := store.PackageByDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("PackageByDocument failed: %v", err)
	}
	if pkg != nil {
		t.Fatalf("expected nil package, got %#v", pkg)
	}
}

func TestInsertLicensingRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	doc, _, file := seedPackageFile(t, store, "abc123")

	info := &license.Info{
		LicenseID:       "LicenseRef-1",
		Name:            "Sleepycat License",
		ExtractedText:   "Redistribution and use in source and binary forms...",
		CrossReferences: []string{"https://example.org/sleepycat", "https://example.org/mirror"},
		Comment:         license.Comment("found in COPYING"),
		FileChecksum:    file.Checksum,
	}

	catalogID, err := store.InsertLicensing(ctx, doc.ID, info, docstore.LicensingOptions{OSIApproved: true})
	if err != nil {
		t.Fatalf("InsertLicensing failed: %v", err)
	}
	if catalogID == 0 {
		t.Fatal("expected catalog id to be assigned")
	}

	licensings, err := store.ListLicensings(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListLicensings failed: %v", err)
	}
	if len(licensings) != 1 {
		t.Fatalf("expected one licensing, got %d", len(licensings))
	}
	entry := licensings[0]
	if entry.FileID != file.ID || entry.LicenseID != "LicenseRef-1" || entry.FileName != file.FileName {
		t.Fatalf("unexpected licensing entry: %#v", entry)
	}

	loaded, err := store.FindLicensing(ctx, entry.AssociationID)
	if err != nil {
		t.Fatalf("FindLicensing failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected licensing record")
	}
	if loaded.LicenseID != info.LicenseID || loaded.Name != info.Name || loaded.ExtractedText != info.ExtractedText {
		t.Fatalf("unexpected loaded record: %#v", loaded)
	}
	if len(loaded.CrossReferences) != 2 || loaded.CrossReferences[0] != info.CrossReferences[0] || loaded.CrossReferences[1] != info.CrossReferences[1] {
		t.Fatalf("unexpected cross references: %#v", loaded.CrossReferences)
	}
	if loaded.Comment == nil || *loaded.Comment != "found in COPYING" {
		t.Fatalf("unexpected comment: %v", loaded.Comment)
	}
}

func TestInsertLicensingUnknownChecksumLeavesNoRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	doc, _, _ := seedPackageFile(t, store, "abc123")

	info := &license.Info{
		LicenseID:     "LicenseRef-1",
		Name:          "Unknown",
		ExtractedText: "text",
		FileChecksum:  "never-hashed",
	}
	_, err := store.InsertLicensing(ctx, doc.ID, info, docstore.LicensingOptions{})
	if !errors.Is(err, docstore.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Licenses != 0 || health.Licensings != 0 {
		t.Fatalf("expected no licensing rows after failed insert, got %+v", health)
	}
}

func TestInsertLicensingRollsBackWhenAssociationFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	_, _, file := seedPackageFile(t, store, "abc123")

	info := &license.Info{
		LicenseID:     "LicenseRef-1",
		Name:          "Orphaned",
		ExtractedText: "text",
		FileChecksum:  file.Checksum,
	}
	_, err := store.InsertLicensing(ctx, 9999, info, docstore.LicensingOptions{})
	if err == nil {
		t.Fatal("expected error for unknown document id")
	}
	if errors.Is(err, docstore.ErrFileNotFound) {
		t.Fatalf("expected the file lookup to succeed, got %v", err)
	}
	if !strings.Contains(err.Error(), "insert association") {
		t.Fatalf("expected the association insert to fail, got %v", err)
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Licenses != 0 || health.Licensings != 0 {
		t.Fatalf("expected licenses row rolled back with the association, got %+v", health)
	}
}

func TestFindLicensingMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	info, err := store.FindLicensing(context.Background(), 54321)
	if err != nil {
		t.Fatalf("FindLicensing failed: %v", err)
	}
	if info != nil {
		t.Fatalf("expected nil record for missing association, got %#v", info)
	}
}

func TestLicensingCommentDistinguishesNilFromEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	doc, pkg, file := seedPackageFile(t, store, "abc123")
	other, err := store.AddPackageFile(ctx, pkg.ID, "zlib-1.2.11/zlib.h", "def456", "SOURCE")
	if err != nil {
		t.Fatalf("AddPackageFile: %v", err)
	}

	withoutComment := &license.Info{
		LicenseID:     "LicenseRef-nil",
		Name:          "No Comment",
		ExtractedText: "text",
		FileChecksum:  file.Checksum,
	}
	if _, err := store.InsertLicensing(ctx, doc.ID, withoutComment, docstore.LicensingOptions{}); err != nil {
		t.Fatalf("InsertLicensing nil comment: %v", err)
	}

	emptyComment := &license.Info{
		LicenseID:     "LicenseRef-empty",
		Name:          "Empty Comment",
		ExtractedText: "text",
		Comment:       license.Comment(""),
		FileChecksum:  other.Checksum,
	}
	if _, err := store.InsertLicensing(ctx, doc.ID, emptyComment, docstore.LicensingOptions{}); err != nil {
		t.Fatalf("InsertLicensing empty comment: %v", err)
	}

	licensings, err := store.ListLicensings(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListLicensings: %v", err)
	}
	if len(licensings) != 2 {
		t.Fatalf("expected two licensings, got %d", len(licensings))
	}

	byIdentifier := map[string]int64{}
	for _, entry := range licensings {
		byIdentifier[entry.LicenseID] = entry.AssociationID
	}

	loadedNil, err := store.FindLicensing(ctx, byIdentifier["LicenseRef-nil"])
	if err != nil {
		t.Fatalf("FindLicensing nil comment: %v", err)
	}
	if loadedNil.Comment != nil {
		t.Fatalf("expected nil comment, got %q", *loadedNil.Comment)
	}

	loadedEmpty, err := store.FindLicensing(ctx, byIdentifier["LicenseRef-empty"])
	if err != nil {
		t.Fatalf("FindLicensing empty comment: %v", err)
	}
	if loadedEmpty.Comment == nil || *loadedEmpty.Comment != "" {
		t.Fatalf("expected empty comment pointer, got %v", loadedEmpty.Comment)
	}
}

func TestHealthCounts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	doc, _, file := seedPackageFile(t, store, "abc123")
	info := &license.Info{
		LicenseID:     "LicenseRef-1",
		Name:          "Custom",
		ExtractedText: "text",
		FileChecksum:  file.Checksum,
	}
	if _, err := store.InsertLicensing(ctx, doc.ID, info, docstore.LicensingOptions{}); err != nil {
		t.Fatalf("InsertLicensing: %v", err)
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	want := docstore.HealthSummary{Documents: 1, Packages: 1, Files: 1, Licenses: 1, Licensings: 1}
	if health != want {
		t.Fatalf("unexpected health summary: %+v", health)
	}
}

func TestCheckHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	health, err := store.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TableExists {
		t.Fatalf("unexpected health: %+v", health)
	}
	if !health.IntegrityCheck {
		t.Fatalf("expected integrity check to pass: %+v", health)
	}
	if len(health.MissingColumns) != 0 {
		t.Fatalf("expected no missing columns, got %v", health.MissingColumns)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump schema version: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	if _, err := docstore.Open(cfg); !errors.Is(err, docstore.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch error, got %v", err)
	}
}
