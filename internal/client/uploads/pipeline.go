package uploads

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/accion2025/buencuidar/internal/client/models"
	"github.com/accion2025/buencuidar/internal/common"
	"github.com/accion2025/buencuidar/internal/logging"
	"github.com/accion2025/buencuidar/internal/remote"
	"github.com/accion2025/buencuidar/internal/timex"
)

// Default policy values. Fields on Pipeline so tests can shrink them.
const (
	defaultSessionTimeout   = 5 * time.Second
	defaultHandshakeTimeout = 15 * time.Second
	defaultFallbackTimeout  = 45 * time.Second
	// settleDelay lets an aborted primary connection release its resources
	// before the fallback opens a new one. Empirical.
	defaultSettleDelay   = 2500 * time.Millisecond
	defaultTaskCeiling   = 120 * time.Second
	defaultBackoffUnit   = 4 * time.Second
	defaultHeartbeatTick = 5 * time.Second
	defaultMaxAttempts   = 3
)

var errEmptyFile = errors.New("empty file")

// Callbacks are the host's view into a running task. Progress fires after
// every state transition; Heartbeat fires on a fixed tick while the task is
// in flight so the host can refresh elapsed-time UI. Both are optional and
// must not block.
type Callbacks struct {
	Progress  func(Status)
	Heartbeat func(elapsed time.Duration)
}

// Pipeline runs upload tasks against the remote data service. It holds no
// per-task state; each Run owns its task exclusively, so a Pipeline is safe
// for concurrent use.
type Pipeline struct {
	remote remote.Service
	bucket string
	log    logging.Logger

	sessionTimeout   time.Duration
	handshakeTimeout time.Duration
	fallbackTimeout  time.Duration
	settleDelay      time.Duration
	taskCeiling      time.Duration
	backoffUnit      time.Duration
	heartbeatTick    time.Duration
	maxAttempts      int

	now func() time.Time
}

func NewPipeline(svc remote.Service, bucket string, log logging.Logger) *Pipeline {
	return &Pipeline{
		remote:           svc,
		bucket:           bucket,
		log:              log,
		sessionTimeout:   defaultSessionTimeout,
		handshakeTimeout: defaultHandshakeTimeout,
		fallbackTimeout:  defaultFallbackTimeout,
		settleDelay:      defaultSettleDelay,
		taskCeiling:      defaultTaskCeiling,
		backoffUnit:      defaultBackoffUnit,
		heartbeatTick:    defaultHeartbeatTick,
		maxAttempts:      defaultMaxAttempts,
		now:              time.Now,
	}
}

// Run drives task to a terminal outcome. Cancelling ctx aborts the in-flight
// transport, stops the retry loop and yields OutcomeCancelled. Run never
// returns before the task has resolved one way or the other.
func (p *Pipeline) Run(ctx context.Context, task Task, cb Callbacks) Result {
	log := p.log.With("task", task.ID, "kind", task.Kind.String())

	report := func(st Status) {
		log.Debug(ctx, "upload step", "step", st.Step.String(), "attempt", st.Attempt, "percent", st.Percent)
		if cb.Progress != nil {
			cb.Progress(st)
		}
	}

	if len(task.Data) > task.maxBytes() {
		err := &Error{
			Kind: ErrValidation, Step: StepPrepareFile, Attempt: 0,
			Err: fmt.Errorf("file of %d bytes exceeds the %d byte limit", len(task.Data), task.maxBytes()),
		}
		log.Warn(ctx, "upload rejected", "error", err)
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	ownerID := task.OwnerID
	if ownerID == "" {
		report(Status{Step: StepSessionCheck, Attempt: 1})
		session, err := timex.Race(ctx, p.sessionTimeout, func(ctx context.Context) (*remote.Session, error) {
			return p.remote.GetSession(ctx)
		})
		if err != nil {
			uerr := &Error{Kind: ErrAuth, Step: StepSessionCheck, Attempt: 1, Err: err}
			log.Warn(ctx, "session check failed", "error", err)
			if ctx.Err() != nil {
				return Result{Outcome: OutcomeCancelled, Attempts: 1, Err: uerr}
			}
			return Result{Outcome: OutcomeFailed, Attempts: 1, Err: uerr}
		}
		ownerID = session.UserID
	}

	started := p.now()
	deadline := started.Add(p.taskCeiling)

	if cb.Heartbeat != nil {
		hbCtx, hbStop := context.WithCancel(ctx)
		defer hbStop()
		go p.heartbeat(hbCtx, started, cb.Heartbeat)
	}

	var (
		attempt  int
		finalURL string
		lastErr  *Error
	)

	linear := retry.BackoffFunc(func() (time.Duration, bool) {
		return p.backoffUnit * time.Duration(attempt), false
	})

	err := retry.Do(ctx, retry.WithMaxRetries(uint64(p.maxAttempts-1), linear), func(rctx context.Context) error {
		attempt++
		url, aerr := p.runAttempt(rctx, task, ownerID, deadline, attempt, report)
		if aerr == nil {
			finalURL = url
			return nil
		}

		if ctx.Err() != nil {
			// Caller cancelled: stop immediately, no further attempts.
			return ctx.Err()
		}

		lastErr = aerr
		log.Warn(ctx, "upload attempt failed",
			"attempt", attempt, "step", aerr.Step.String(), "kind", aerr.Kind.String(), "error", aerr.Err)

		if aerr.Kind == ErrAuth || aerr.Kind == ErrValidation {
			return aerr
		}
		return retry.RetryableError(aerr)
	})

	if err == nil {
		report(Status{Step: StepIdle, Attempt: attempt})
		log.Info(ctx, "upload finished", "attempts", attempt, "url", finalURL)
		return Result{Outcome: OutcomeSuccess, URL: finalURL, Attempts: attempt}
	}

	if ctx.Err() != nil {
		log.Info(ctx, "upload cancelled", "attempts", attempt)
		return Result{Outcome: OutcomeCancelled, Attempts: attempt, Err: lastErr}
	}

	if lastErr == nil {
		var uerr *Error
		if !errors.As(err, &uerr) {
			uerr = classify(StepTransportPrimary, attempt, err)
		}
		lastErr = uerr
	}
	lastErr.Attempt = attempt
	log.Error(ctx, "upload failed", "attempts", attempt, "error", lastErr)
	return Result{Outcome: OutcomeFailed, Attempts: attempt, Err: lastErr}
}

// runAttempt executes one pass through the step sequence. It returns the
// public URL on success. The whole-task deadline bounds every leg; the
// per-leg budgets ride inside it.
func (p *Pipeline) runAttempt(ctx context.Context, task Task, ownerID string, deadline time.Time, attempt int, report func(Status)) (string, *Error) {
	attemptCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	report(Status{Step: StepPrepareFile, Attempt: attempt})
	if len(task.Data) == 0 {
		return "", &Error{Kind: ErrValidation, Step: StepPrepareFile, Attempt: attempt, Err: errEmptyFile}
	}

	path := task.storagePath(ownerID, p.now())

	report(Status{Step: StepTransportPrimary, Attempt: attempt})

	// primaryLive gates the progress callback: once the race is decided a
	// still-running primary leg must not emit anything observable.
	var primaryLive atomic.Bool
	primaryLive.Store(true)

	primaryOpts := remote.UploadOptions{
		ContentType: task.ContentType,
		Overwrite:   true,
		Progress: func(transferred, total int64) {
			if !primaryLive.Load() {
				return
			}
			percent := 0
			if total > 0 {
				percent = int(transferred * 100 / total)
			}
			report(Status{Step: StepTransportPrimary, Attempt: attempt, Percent: percent})
		},
	}

	_, primaryErr := timex.Race(attemptCtx, p.handshakeTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.remote.UploadResumable(ctx, p.bucket, path, task.Data, primaryOpts)
	})
	primaryLive.Store(false)

	if primaryErr != nil {
		if ctx.Err() != nil {
			return "", classify(StepTransportPrimary, attempt, ctx.Err())
		}
		if errors.Is(primaryErr, timex.ErrDeadlineExceeded) {
			// Handshake window elapsed: the primary leg is already
			// cancelled, give the connection a moment to wind down
			// before opening the fallback.
			p.settle(attemptCtx)
		}

		report(Status{Step: StepTransportFallback, Attempt: attempt})
		fallbackOpts := remote.UploadOptions{ContentType: task.ContentType, Overwrite: true}
		_, fallbackErr := timex.Race(attemptCtx, p.fallbackTimeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, p.remote.UploadStandard(ctx, p.bucket, path, task.Data, fallbackOpts)
		})
		if fallbackErr != nil {
			if ctx.Err() != nil {
				return "", classify(StepTransportFallback, attempt, ctx.Err())
			}
			return "", classify(StepTransportFallback, attempt, fallbackErr)
		}
	}

	report(Status{Step: StepPersistMetadata, Attempt: attempt})
	url := p.remote.PublicURL(p.bucket, path)
	if err := p.persistMetadata(attemptCtx, task, ownerID, path, url); err != nil {
		// The blob is already in storage; it stays orphaned there. Accepted.
		return "", &Error{Kind: ErrPersistence, Step: StepPersistMetadata, Attempt: attempt, Err: err}
	}

	report(Status{Step: StepFinalize, Attempt: attempt, Percent: 100})
	return url, nil
}

func (p *Pipeline) persistMetadata(ctx context.Context, task Task, ownerID, path, url string) error {
	if task.Kind == KindAvatar {
		return p.remote.UpsertRow(ctx, common.TableProfiles,
			map[string]any{"id": ownerID},
			map[string]any{"avatar_url": url},
		)
	}
	return p.remote.UpsertRow(ctx, common.TableDocuments,
		map[string]any{
			"caregiver_id":  ownerID,
			"document_type": string(task.DocumentType),
		},
		map[string]any{
			"storage_path": path,
			"status":       common.DocumentStatusInReview,
			"uploaded_at":  p.now().UTC(),
		},
	)
}

// settle sleeps for the fixed post-abort delay, returning early if the
// attempt context ends first.
func (p *Pipeline) settle(ctx context.Context) {
	t := time.NewTimer(p.settleDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (p *Pipeline) heartbeat(ctx context.Context, started time.Time, fn func(time.Duration)) {
	ticker := time.NewTicker(p.heartbeatTick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fn(time.Since(started))
		case <-ctx.Done():
			return
		}
	}
}

// DocumentFromResult builds the local cache row for a successful document
// upload.
func DocumentFromResult(task Task, ownerID string, res Result, at time.Time) models.Document {
	return models.Document{
		OwnerID:     ownerID,
		Type:        task.DocumentType,
		StoragePath: res.URL,
		Status:      common.DocumentStatusInReview,
		UploadedAt:  at,
	}
}
