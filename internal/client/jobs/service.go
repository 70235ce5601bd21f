package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/accion2025/buencuidar/internal/client/models"
	"github.com/accion2025/buencuidar/internal/common"
	"github.com/accion2025/buencuidar/internal/logging"
	"github.com/accion2025/buencuidar/internal/remote"
)

// Board is the remote side of the job board.
type Board interface {
	OpenPostings(ctx context.Context) ([]models.Posting, error)
	UpsertRow(ctx context.Context, table string, key map[string]any, fields map[string]any) error
	SubscribeToChanges(ctx context.Context, table, filter string, fn func(remote.Change)) (func(), error)
}

// Cache is the local side: last-known board for offline rendering.
type Cache interface {
	ReplacePostings(ctx context.Context, postings []models.Posting) error
	Postings(ctx context.Context) ([]models.Posting, error)
}

// Service produces the visible job board and keeps the cache fresh.
type Service struct {
	board Board
	cache Cache
	log   logging.Logger
	now   func() time.Time
}

func NewService(board Board, cache Cache, log logging.Logger) *Service {
	return &Service{board: board, cache: cache, log: log, now: time.Now}
}

// Open returns the postings a caregiver should see right now. On a remote
// failure the cached board is served instead (filtered again, so postings
// that expired while offline drop out).
func (s *Service) Open(ctx context.Context) ([]models.Posting, error) {
	now := s.now()

	postings, err := s.board.OpenPostings(ctx)
	if err != nil {
		cached, cerr := s.cache.Postings(ctx)
		if cerr != nil {
			return nil, fmt.Errorf("fetching postings: %w", err)
		}
		s.log.Warn(ctx, "job board fetch failed, serving cache", "error", err)
		return FilterVisible(cached, now), nil
	}

	visible := FilterVisible(postings, now)

	if err := s.cache.ReplacePostings(ctx, visible); err != nil {
		s.log.Warn(ctx, "caching job board failed", "error", err)
	}

	s.expireStale(ctx, postings, now)

	return visible, nil
}

// expireStale moves unassigned postings whose window has passed to
// cancelled upstream. Best-effort and non-transactional: a failed write is
// logged and dropped, never surfaced to the render path.
func (s *Service) expireStale(ctx context.Context, postings []models.Posting, now time.Time) {
	for _, p := range postings {
		if p.Status != "open" || p.Assigned() || Visible(p, now) {
			continue
		}
		err := s.board.UpsertRow(ctx, common.TableJobPostings,
			map[string]any{"id": p.ID},
			map[string]any{"status": "cancelled"},
		)
		if err != nil {
			s.log.Warn(ctx, "expiring stale posting failed", "posting", p.ID, "error", err)
		}
	}
}

// Watch re-fetches the board on every remote change and hands the fresh
// list to onRefresh. The returned function stops the subscription.
func (s *Service) Watch(ctx context.Context, onRefresh func([]models.Posting)) (func(), error) {
	return s.board.SubscribeToChanges(ctx, common.TableJobPostings, "", func(remote.Change) {
		list, err := s.Open(ctx)
		if err != nil {
			s.log.Warn(ctx, "refresh after change failed", "error", err)
			return
		}
		onRefresh(list)
	})
}
