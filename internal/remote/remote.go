// Package remote is the client's seam to the hosted backend: auth sessions,
// relational tables, blob storage and the change feed. Everything above this
// package talks to the Service interface; the concrete Client speaks the
// S3 API for blobs and the Postgres wire for tables and notifications.
//
// The backend owns all schemas and all consistency semantics. This package
// deliberately exposes last-write-wins upserts and nothing stronger.
package remote

import (
	"context"
	"time"
)

// ProgressFunc receives transferred and total byte counts during an upload.
type ProgressFunc func(transferred, total int64)

// UploadOptions carries per-upload settings shared by both transport legs.
type UploadOptions struct {
	ContentType string
	// Overwrite allows replacing an existing object at the same path.
	Overwrite bool
	// Progress, when set, is called as bytes land (resumable leg only).
	Progress ProgressFunc
}

// Session is an authenticated backend session.
type Session struct {
	UserID      string
	AccessToken string
	ExpiresAt   time.Time
}

// Change is one row-change event delivered by the change feed.
type Change struct {
	Table  string
	Action string
	Record map[string]any
}

// Service is the set of remote operations the client core consumes.
// Cancellation is carried by the context on every call; callers impose
// their own timeouts (GetSession in particular may hang indefinitely).
type Service interface {
	// GetSession returns the current authenticated session, or
	// common.ErrNoSession / common.ErrSessionExpired.
	GetSession(ctx context.Context) (*Session, error)

	// UploadResumable uploads blob to bucket/path in resumable parts,
	// reporting progress and aborting cleanly on context cancellation.
	UploadResumable(ctx context.Context, bucket, path string, blob []byte, opts UploadOptions) error

	// UploadStandard uploads blob to bucket/path in a single request.
	UploadStandard(ctx context.Context, bucket, path string, blob []byte, opts UploadOptions) error

	// PublicURL returns the public URL for an object. No I/O.
	PublicURL(bucket, path string) string

	// UpsertRow writes fields into table for the row identified by key,
	// inserting or overwriting with last-write-wins semantics.
	UpsertRow(ctx context.Context, table string, key map[string]any, fields map[string]any) error

	// SubscribeToChanges delivers row changes on table matching filter
	// ("column=value", empty for all) until the returned unsubscribe
	// function is called or ctx ends.
	SubscribeToChanges(ctx context.Context, table, filter string, fn func(Change)) (func(), error)
}
