package store

import (
	"context"
	"fmt"

	"github.com/accion2025/buencuidar/internal/client/models"
	"github.com/accion2025/buencuidar/internal/dbx"
)

// ReplacePostings swaps the cached job board for the given list in one
// transaction, so readers never observe a half-replaced board.
func (s *Store) ReplacePostings(ctx context.Context, postings []models.Posting) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM postings`); err != nil {
			return fmt.Errorf("clearing postings: %w", err)
		}
		for _, p := range postings {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO postings (id, date, start_time, end_time, status, caregiver_id, details)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.Date, p.Start, p.End, p.Status, p.CaregiverID, p.Details)
			if err != nil {
				return fmt.Errorf("caching posting %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// Postings returns the cached board in date/time order.
func (s *Store) Postings(ctx context.Context) ([]models.Posting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, start_time, end_time, status, caregiver_id, details
		   FROM postings ORDER BY date, start_time`)
	if err != nil {
		return nil, fmt.Errorf("reading cached postings: %w", err)
	}
	defer rows.Close()

	var out []models.Posting
	for rows.Next() {
		var p models.Posting
		if err := rows.Scan(&p.ID, &p.Date, &p.Start, &p.End, &p.Status, &p.CaregiverID, &p.Details); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
