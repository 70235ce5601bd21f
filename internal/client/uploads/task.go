// Package uploads drives a single file upload to the hosted backend through
// a fixed step sequence with a two-leg transport strategy and bounded
// retries.
//
// Steps within one attempt: SessionCheck, PrepareFile, TransportPrimary
// (resumable, raced against a handshake timeout), TransportFallback
// (standard, on primary failure), PersistMetadata, Finalize. A failed
// attempt restarts at TransportPrimary after a linear backoff, up to three
// attempts. Auth and validation failures are terminal and never retried.
//
// Concurrent tasks targeting the same (owner, document type) key are not
// serialized: the metadata write is a last-write-wins upsert and both tasks
// may race to it. That is a known product decision, not an oversight.
package uploads

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/accion2025/buencuidar/internal/client/models"
)

// Kind selects the upload flavor: a verification document row or the
// profile avatar field.
type Kind int

const (
	KindDocument Kind = iota
	KindAvatar
)

func (k Kind) String() string {
	if k == KindAvatar {
		return "avatar"
	}
	return "document"
}

// Per-kind payload ceilings; anything larger is rejected before the first
// attempt.
const (
	MaxAvatarBytes   = 5 * 1024 * 1024
	MaxDocumentBytes = 10 * 1024 * 1024
)

// Task is one user-initiated upload. A Task is owned by exactly one Run
// call and is never shared.
type Task struct {
	ID   string
	Kind Kind
	// DocumentType applies to KindDocument only.
	DocumentType models.DocumentType
	// OwnerID, when set, bypasses the SessionCheck step.
	OwnerID     string
	FileName    string
	ContentType string
	Data        []byte
}

// NewDocumentTask builds a verification-document upload task.
func NewDocumentTask(ownerID string, docType models.DocumentType, fileName, contentType string, data []byte) Task {
	return Task{
		ID:           uuid.NewString(),
		Kind:         KindDocument,
		DocumentType: docType,
		OwnerID:      ownerID,
		FileName:     fileName,
		ContentType:  contentType,
		Data:         data,
	}
}

// NewAvatarTask builds a profile-avatar upload task.
func NewAvatarTask(ownerID, fileName, contentType string, data []byte) Task {
	return Task{
		ID:          uuid.NewString(),
		Kind:        KindAvatar,
		OwnerID:     ownerID,
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	}
}

func (t Task) maxBytes() int {
	if t.Kind == KindAvatar {
		return MaxAvatarBytes
	}
	return MaxDocumentBytes
}

func (t Task) kindLabel() string {
	if t.Kind == KindDocument && t.DocumentType != "" {
		return string(t.DocumentType)
	}
	return t.Kind.String()
}

// storagePath computes the object key: {owner}/{kind}-{unix ts}.{ext}.
// A fresh timestamp per attempt keeps a retried upload from colliding with
// a half-written object from the previous attempt.
func (t Task) storagePath(ownerID string, now time.Time) string {
	return fmt.Sprintf("%s/%s-%d.%s", ownerID, t.kindLabel(), now.Unix(), t.ext())
}

// extByType pins extensions for the content types the product accepts, so
// object keys stay stable across platforms.
var extByType = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"application/pdf": "pdf",
}

func (t Task) ext() string {
	if e := strings.TrimPrefix(filepath.Ext(t.FileName), "."); e != "" {
		return strings.ToLower(e)
	}
	ct, _, err := mime.ParseMediaType(t.ContentType)
	if err == nil {
		if e, ok := extByType[ct]; ok {
			return e
		}
	}
	return "bin"
}
