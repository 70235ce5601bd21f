package remote

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/accion2025/buencuidar/internal/client/models"
	"github.com/accion2025/buencuidar/internal/common"
)

// sessionSlack is how close to expiry a cached session may be before the
// next GetSession call revalidates against the backend.
const sessionSlack = 30 * time.Second

// GetSession returns the session for the stored refresh token. A cached
// session with a live access token is returned without a round-trip; the
// token's exp claim is inspected locally without verifying the signature,
// since the backend is the verifier and we only need the timestamp.
func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	cached := c.session
	refreshToken := c.cfg.RefreshToken
	c.mu.Unlock()

	if cached != nil && time.Until(cached.ExpiresAt) > sessionSlack {
		return cached, nil
	}
	if refreshToken == "" {
		return nil, common.ErrNoSession
	}

	var userID, accessToken string
	row := c.db.QueryRow(ctx,
		`SELECT user_id, access_token FROM `+common.TableAuthSessions+
			` WHERE refresh_token = $1 AND NOT revoked`, refreshToken)
	if err := row.Scan(&userID, &accessToken); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNoSession
		}
		return nil, fmt.Errorf("loading session: %w", mapTableErr(err))
	}

	s := &Session{UserID: userID, AccessToken: accessToken, ExpiresAt: tokenExpiry(accessToken)}
	if !s.ExpiresAt.After(time.Now()) {
		return nil, common.ErrSessionExpired
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return s, nil
}

// tokenExpiry reads the exp claim without verifying the signature. Opaque
// or claimless tokens get a short synthetic lifetime so they are revalidated
// frequently rather than trusted forever.
func tokenExpiry(raw string) time.Time {
	fallback := time.Now().Add(time.Minute)

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return fallback
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	return exp.Time
}

// UpsertRow inserts or overwrites one row, last write wins. key columns form
// the conflict target; fields are written on both paths.
func (c *Client) UpsertRow(ctx context.Context, table string, key map[string]any, fields map[string]any) error {
	query, args := buildUpsert(table, key, fields)
	if _, err := c.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting %s: %w", table, mapTableErr(err))
	}
	return nil
}

// buildUpsert renders INSERT .. ON CONFLICT .. DO UPDATE with deterministic
// column order (sorted within key and fields) so it is testable.
func buildUpsert(table string, key map[string]any, fields map[string]any) (string, []any) {
	keyCols := sortedKeys(key)
	fieldCols := sortedKeys(fields)

	cols := make([]string, 0, len(keyCols)+len(fieldCols))
	args := make([]any, 0, len(keyCols)+len(fieldCols))
	placeholders := make([]string, 0, cap(cols))

	for _, k := range keyCols {
		cols = append(cols, k)
		args = append(args, key[k])
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}
	for _, k := range fieldCols {
		cols = append(cols, k)
		args = append(args, fields[k])
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	assignments := make([]string, 0, len(fieldCols))
	for _, k := range fieldCols {
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", k, k))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(keyCols, ", "),
		strings.Join(assignments, ", "),
	)
	return query, args
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// OpenPostings fetches every posting still marked open, for the job board.
func (c *Client) OpenPostings(ctx context.Context) ([]models.Posting, error) {
	rows, err := c.db.Query(ctx,
		`SELECT id, to_char(date, 'YYYY-MM-DD'), start_time, COALESCE(end_time, ''),
		        status, COALESCE(caregiver_id::text, ''), COALESCE(details, '')
		   FROM `+common.TableJobPostings+`
		  WHERE status = 'open'
		  ORDER BY date, start_time`)
	if err != nil {
		return nil, fmt.Errorf("selecting postings: %w", mapTableErr(err))
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

// mapTableErr translates Postgres policy rejections into sentinel errors.
func mapTableErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42501" { // insufficient_privilege
		return fmt.Errorf("%w: %s", common.ErrPermissionDenied, pgErr.Message)
	}
	return err
}
