// Package services holds the user-facing application services: document
// verification, profile avatar changes and appointment requests. Each
// service composes the upload pipeline, the codec helpers and the local
// cache into one operation per user action.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/accion2025/buencuidar/internal/client/models"
	"github.com/accion2025/buencuidar/internal/client/uploads"
	"github.com/accion2025/buencuidar/internal/logging"
)

// Runner drives one upload task to completion.
type Runner interface {
	Run(ctx context.Context, task uploads.Task, cb uploads.Callbacks) uploads.Result
}

// DocumentCache records submitted documents locally.
type DocumentCache interface {
	UpsertDocument(ctx context.Context, d models.Document) error
	Documents(ctx context.Context, ownerID string) ([]models.Document, error)
}

// DocumentService submits caregiver verification documents.
type DocumentService struct {
	runner Runner
	cache  DocumentCache
	log    logging.Logger
	now    func() time.Time
}

func NewDocumentService(runner Runner, cache DocumentCache, log logging.Logger) *DocumentService {
	return &DocumentService{runner: runner, cache: cache, log: log, now: time.Now}
}

// Submit uploads one verification document and, on success, mirrors the
// resulting row into the local cache. The returned Result carries the
// terminal outcome; the error is reserved for inputs rejected before any
// attempt.
func (s *DocumentService) Submit(ctx context.Context, ownerID string, docType models.DocumentType, fileName, contentType string, data []byte, cb uploads.Callbacks) (uploads.Result, error) {
	if !models.ValidDocumentType(docType) {
		return uploads.Result{}, fmt.Errorf("unknown document type %q", docType)
	}

	task := uploads.NewDocumentTask(ownerID, docType, fileName, contentType, data)
	res := s.runner.Run(ctx, task, cb)

	if res.Outcome == uploads.OutcomeSuccess {
		doc := uploads.DocumentFromResult(task, ownerID, res, s.now())
		if err := s.cache.UpsertDocument(ctx, doc); err != nil {
			s.log.Warn(ctx, "caching document after upload failed", "type", docType, "error", err)
		}
	}
	return res, nil
}

// Submitted lists the owner's documents as known locally.
func (s *DocumentService) Submitted(ctx context.Context, ownerID string) ([]models.Document, error) {
	return s.cache.Documents(ctx, ownerID)
}
