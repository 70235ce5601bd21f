package store

import (
	"context"
	"fmt"
	"time"

	"github.com/accion2025/buencuidar/internal/client/models"
)

// UpsertDocument records a submitted verification document, overwriting any
// previous submission of the same type.
func (s *Store) UpsertDocument(ctx context.Context, d models.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (owner_id, document_type, storage_path, status, uploaded_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(owner_id, document_type) DO UPDATE SET
		   storage_path = excluded.storage_path,
		   status = excluded.status,
		   uploaded_at = excluded.uploaded_at`,
		d.OwnerID, string(d.Type), d.StoragePath, d.Status, d.UploadedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("caching document %s: %w", d.Type, err)
	}
	return nil
}

// Documents lists the owner's submitted documents.
func (s *Store) Documents(ctx context.Context, ownerID string) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner_id, document_type, storage_path, status, uploaded_at
		   FROM documents WHERE owner_id = ? ORDER BY document_type`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reading cached documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		var docType, uploadedAt string
		if err := rows.Scan(&d.OwnerID, &docType, &d.StoragePath, &d.Status, &uploadedAt); err != nil {
			return nil, err
		}
		d.Type = models.DocumentType(docType)
		if ts, err := time.Parse(time.RFC3339, uploadedAt); err == nil {
			d.UploadedAt = ts
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
