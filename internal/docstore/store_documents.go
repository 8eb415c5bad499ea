package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const documentColumns = "id, name, namespace, spdx_ref, created_at, updated_at"

// CreateDocument inserts a new SPDX document header.
func (s *Store) CreateDocument(ctx context.Context, name, namespace, spdxRef string) (*Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("document name required")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO spdx_documents (name, namespace, spdx_ref, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)`,
		name,
		namespace,
		spdxRef,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetDocument(ctx, id)
}

// GetDocument fetches a document by identifier. A missing row yields (nil, nil).
func (s *Store) GetDocument(ctx context.Context, id int64) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM spdx_documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns all documents ordered by creation time.
func (s *Store) ListDocuments(ctx context.Context) ([]*Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM spdx_documents ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func scanDocument(scanner interface{ Scan(dest ...any) error }) (*Document, error) {
	var (
		id         int64
		name       string
		namespace  sql.NullString
		spdxRef    sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(&id, &name, &namespace, &spdxRef, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	doc := &Document{
		ID:        id,
		Name:      name,
		Namespace: namespace.String,
		SPDXRef:   spdxRef.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		doc.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		doc.UpdatedAt = updated
	}
	return doc, nil
}
