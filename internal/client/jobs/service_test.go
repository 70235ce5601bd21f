package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/accion2025/buencuidar/internal/client/models"
	"github.com/accion2025/buencuidar/internal/common"
	"github.com/accion2025/buencuidar/internal/logging"
	"github.com/accion2025/buencuidar/internal/remote"
)

type fakeBoard struct {
	mu       sync.Mutex
	postings []models.Posting
	fetchErr error
	upserts  []map[string]any
	notify   func(remote.Change)
}

func (b *fakeBoard) OpenPostings(ctx context.Context) ([]models.Posting, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	return b.postings, nil
}

func (b *fakeBoard) UpsertRow(ctx context.Context, table string, key map[string]any, fields map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if table != common.TableJobPostings {
		return errors.New("unexpected table " + table)
	}
	merged := map[string]any{}
	for k, v := range key {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	b.upserts = append(b.upserts, merged)
	return nil
}

func (b *fakeBoard) SubscribeToChanges(ctx context.Context, table, filter string, fn func(remote.Change)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notify = fn
	return func() {}, nil
}

func (b *fakeBoard) upsertCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.upserts)
}

type fakeCache struct {
	mu       sync.Mutex
	postings []models.Posting
	readErr  error
}

func (c *fakeCache) ReplacePostings(ctx context.Context, postings []models.Posting) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.postings = postings
	return nil
}

func (c *fakeCache) Postings(ctx context.Context) ([]models.Posting, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.postings, c.readErr
}

func newTestService(board *fakeBoard, cache *fakeCache, now time.Time) *Service {
	s := NewService(board, cache, logging.NewDefault(false))
	s.now = func() time.Time { return now }
	return s
}

func TestOpen_FiltersAndCaches(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	board := &fakeBoard{postings: []models.Posting{
		{ID: "today", Date: "2026-03-10", Start: "10:00", Status: "open"},
		{ID: "past", Date: "2026-03-09", Start: "10:00", Status: "open"},
		{ID: "future", Date: "2026-03-11", Start: "10:00", Status: "open"},
	}}
	cache := &fakeCache{}

	got, err := newTestService(board, cache, now).Open(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.Equal(t, "today", got[0].ID)
	require.Equal(t, "future", got[1].ID)

	cached, err := cache.Postings(context.Background())
	require.NoError(t, err)
	require.Equal(t, got, cached)
}

func TestOpen_ExpiresStaleUnassignedPostings(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	board := &fakeBoard{postings: []models.Posting{
		{ID: "stale", Date: "2026-03-09", Start: "10:00", Status: "open"},
		{ID: "taken", Date: "2026-03-09", Start: "10:00", Status: "open", CaregiverID: "c1"},
		{ID: "done", Date: "2026-03-09", Start: "10:00", Status: "completed"},
		{ID: "live", Date: "2026-03-11", Start: "10:00", Status: "open"},
	}}

	_, err := newTestService(board, &fakeCache{}, now).Open(context.Background())
	require.NoError(t, err)

	require.Len(t, board.upserts, 1)
	require.Equal(t, "stale", board.upserts[0]["id"])
	require.Equal(t, "cancelled", board.upserts[0]["status"])
}

func TestOpen_ServesCacheWhenRemoteFails(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	board := &fakeBoard{fetchErr: errors.New("network down")}
	cache := &fakeCache{postings: []models.Posting{
		{ID: "kept", Date: "2026-03-11", Start: "10:00", Status: "open"},
		{ID: "expired-offline", Date: "2026-03-09", Start: "10:00", Status: "open"},
	}}

	got, err := newTestService(board, cache, now).Open(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "kept", got[0].ID)
	require.Zero(t, board.upsertCount())
}

func TestOpen_RemoteAndCacheFailing(t *testing.T) {
	board := &fakeBoard{fetchErr: errors.New("network down")}
	cache := &fakeCache{readErr: errors.New("cache gone")}

	_, err := newTestService(board, cache, time.Now()).Open(context.Background())
	require.ErrorContains(t, err, "network down")
}

func TestWatch_RefreshesOnChange(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	board := &fakeBoard{}
	svc := newTestService(board, &fakeCache{}, now)

	var (
		mu     sync.Mutex
		latest []models.Posting
	)
	stop, err := svc.Watch(context.Background(), func(list []models.Posting) {
		mu.Lock()
		defer mu.Unlock()
		latest = list
	})
	require.NoError(t, err)
	defer stop()

	board.mu.Lock()
	board.postings = []models.Posting{{ID: "new", Date: "2026-03-11", Start: "10:00", Status: "open"}}
	notify := board.notify
	board.mu.Unlock()

	notify(remote.Change{Table: common.TableJobPostings, Action: "INSERT"})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, latest, 1)
	require.Equal(t, "new", latest[0].ID)
}
