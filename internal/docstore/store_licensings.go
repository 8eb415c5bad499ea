package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"spdxgen/internal/license"
)

// InsertLicensing records an extracted licensing entry for a document. It
// resolves the owning file by checksum, inserts the license catalog row, the
// document association, and the file link in a single transaction, and
// returns the catalog id. A checksum with no matching file fails with
// ErrFileNotFound and leaves no rows behind.
func (s *Store) InsertLicensing(ctx context.Context, docID int64, info *license.Info, opts LicensingOptions) (int64, error) {
	if info == nil {
		return 0, errors.New("licensing info is nil")
	}
	ctx = ensureContext(ctx)

	var catalogID int64
	err := retryOnBusy(ctx, func() error {
		id, txErr := s.insertLicensingTx(ctx, docID, info, opts)
		if txErr != nil {
			return txErr
		}
		catalogID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return catalogID, nil
}

func (s *Store) insertLicensingTx(ctx context.Context, docID int64, info *license.Info, opts LicensingOptions) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin licensing tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var fileID int64
	row := tx.QueryRowContext(
		ctx,
		`SELECT id FROM package_files WHERE file_checksum = ? ORDER BY id LIMIT 1`,
		info.FileChecksum,
	)
	if err := row.Scan(&fileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: checksum %q", ErrFileNotFound, info.FileChecksum)
		}
		return 0, fmt.Errorf("lookup file by checksum: %w", err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO licenses (extracted_text, license_name, osi_approved, standard_license_header, license_cross_reference, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		info.ExtractedText,
		info.Name,
		boolToInt(opts.OSIApproved),
		nullableString(opts.StandardHeader),
		nullableString(joinCrossReferences(info.CrossReferences)),
		timestamp,
		timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("insert license: %w", err)
	}
	licenseID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("license insert id: %w", err)
	}

	res, err = tx.ExecContext(
		ctx,
		`INSERT INTO doc_license_associations (spdx_doc_id, license_id, license_identifier, license_name, license_comments, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		docID,
		licenseID,
		info.LicenseID,
		info.Name,
		commentValue(info.Comment),
		timestamp,
		timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("insert association: %w", err)
	}
	associationID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("association insert id: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO licensings (package_file_id, juncture, doc_license_association_id, created_at, updated_at)
         VALUES (?, '', ?, ?, ?)`,
		fileID,
		associationID,
		timestamp,
		timestamp,
	); err != nil {
		return 0, fmt.Errorf("insert licensing link: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit licensing: %w", err)
	}
	return licenseID, nil
}

// FindLicensing loads the licensing record behind a document association. A
// missing association yields (nil, nil) so callers keep whatever record they
// already hold.
func (s *Store) FindLicensing(ctx context.Context, associationID int64) (*license.Info, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT dla.license_identifier, dla.license_name, dla.license_comments,
                l.extracted_text, l.license_cross_reference
         FROM doc_license_associations AS dla
         INNER JOIN licenses AS l ON dla.license_id = l.id
         WHERE dla.id = ?`,
		associationID,
	)

	var (
		identifier sql.NullString
		name       sql.NullString
		comment    sql.NullString
		text       sql.NullString
		references sql.NullString
	)
	if err := row.Scan(&identifier, &name, &comment, &text, &references); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find licensing: %w", err)
	}

	info := &license.Info{
		LicenseID:       identifier.String,
		Name:            name.String,
		ExtractedText:   text.String,
		CrossReferences: splitCrossReferences(references),
	}
	if comment.Valid {
		info.Comment = license.Comment(comment.String)
	}
	return info, nil
}

// ListLicensings returns the licensing links recorded for a document.
func (s *Store) ListLicensings(ctx context.Context, docID int64) ([]*Licensing, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT lg.id, lg.doc_license_association_id, lg.package_file_id,
                pf.file_name, dla.license_identifier, dla.license_name, lg.created_at
         FROM licensings AS lg
         INNER JOIN doc_license_associations AS dla ON lg.doc_license_association_id = dla.id
         INNER JOIN package_files AS pf ON lg.package_file_id = pf.id
         WHERE dla.spdx_doc_id = ?
         ORDER BY lg.id`,
		docID,
	)
	if err != nil {
		return nil, fmt.Errorf("list licensings: %w", err)
	}
	defer rows.Close()

	var licensings []*Licensing
	for rows.Next() {
		var (
			entry      Licensing
			fileName   sql.NullString
			identifier sql.NullString
			name       sql.NullString
			createdRaw sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.AssociationID, &entry.FileID, &fileName, &identifier, &name, &createdRaw); err != nil {
			return nil, err
		}
		entry.FileName = fileName.String
		entry.LicenseID = identifier.String
		entry.LicenseName = name.String
		if created, err := parseTimeString(createdRaw.String); err == nil {
			entry.CreatedAt = created
		}
		licensings = append(licensings, &entry)
	}
	return licensings, rows.Err()
}

func joinCrossReferences(refs []string) string {
	return strings.Join(refs, "\n")
}

func splitCrossReferences(value sql.NullString) []string {
	if !value.Valid || value.String == "" {
		return nil
	}
	return strings.Split(value.String, "\n")
}
