package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	packageColumns = "id, spdx_doc_id, name, file_name, checksum, verification_code, created_at, updated_at"
	fileColumns    = "id, package_id, file_name, file_checksum, file_type, created_at, updated_at"
)

// CreatePackage inserts the package row for a document.
func (s *Store) CreatePackage(ctx context.Context, docID int64, name, fileName, checksum, verificationCode string) (*Package, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("package name required")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO packages (spdx_doc_id, name, file_name, checksum, verification_code, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		docID,
		name,
		nullableString(fileName),
		nullableString(checksum),
		verificationCode,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert package: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.packageByID(ctx, id)
}

func (s *Store) packageByID(ctx context.Context, id int64) (*Package, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = ?`, id)
	pkg, err := scanPackage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get package: %w", err)
	}
	return pkg, nil
}

// PackageByDocument returns the package described by a document. A document
// without a package yields (nil, nil).
func (s *Store) PackageByDocument(ctx context.Context, docID int64) (*Package, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+packageColumns+` FROM packages WHERE spdx_doc_id = ? ORDER BY id LIMIT 1`,
		docID,
	)
	pkg, err := scanPackage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("package by document: %w", err)
	}
	return pkg, nil
}

// AddPackageFile records one scanned file for a package.
func (s *Store) AddPackageFile(ctx context.Context, pkgID int64, fileName, checksum, fileType string) (*PackageFile, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, errors.New("file name required")
	}
	if strings.TrimSpace(checksum) == "" {
		return nil, errors.New("file checksum required")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO package_files (package_id, file_name, file_checksum, file_type, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		pkgID,
		fileName,
		checksum,
		fileType,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert package file: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM package_files WHERE id = ?`, id)
	file, err := scanPackageFile(row)
	if err != nil {
		return nil, fmt.Errorf("get package file: %w", err)
	}
	return file, nil
}

// FilesByPackage returns a package's files ordered by insertion.
func (s *Store) FilesByPackage(ctx context.Context, pkgID int64) ([]*PackageFile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+fileColumns+` FROM package_files WHERE package_id = ? ORDER BY id`, pkgID)
	if err != nil {
		return nil, fmt.Errorf("files by package: %w", err)
	}
	defer rows.Close()

	var files []*PackageFile
	for rows.Next() {
		file, err := scanPackageFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

// FileByChecksum returns the first file matching a checksum. A missing row
// yields (nil, nil).
func (s *Store) FileByChecksum(ctx context.Context, checksum string) (*PackageFile, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+fileColumns+` FROM package_files WHERE file_checksum = ? ORDER BY id LIMIT 1`,
		checksum,
	)
	file, err := scanPackageFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by checksum: %w", err)
	}
	return file, nil
}

func scanPackage(scanner interface{ Scan(dest ...any) error }) (*Package, error) {
	var (
		id         int64
		docID      int64
		name       string
		fileName   sql.NullString
		checksum   sql.NullString
		vcode      sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(&id, &docID, &name, &fileName, &checksum, &vcode, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	pkg := &Package{
		ID:               id,
		DocumentID:       docID,
		Name:             name,
		FileName:         fileName.String,
		Checksum:         checksum.String,
		VerificationCode: vcode.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		pkg.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		pkg.UpdatedAt = updated
	}
	return pkg, nil
}

func scanPackageFile(scanner interface{ Scan(dest ...any) error }) (*PackageFile, error) {
	var (
		id         int64
		pkgID      int64
		fileName   string
		checksum   string
		fileType   sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(&id, &pkgID, &fileName, &checksum, &fileType, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	file := &PackageFile{
		ID:        id,
		PackageID: pkgID,
		FileName:  fileName,
		Checksum:  checksum,
		FileType:  fileType.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		file.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		file.UpdatedAt = updated
	}
	return file, nil
}
