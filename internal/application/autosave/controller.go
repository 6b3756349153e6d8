// Package autosave persists an editing session's portfolio to the document
// store. Bursts of edits are coalesced by a debounce timer, writes are
// serialized per session, and failures leave the in-memory model untouched.
package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

const DefaultDebounceWindow = 2 * time.Second

var tracer = otel.Tracer("autosave")

// SnapshotFunc returns a deep copy of the current model. It must not call
// back into the controller.
type SnapshotFunc func() *portfolio.Portfolio

// SavedHook runs after every successful write, outside the controller locks.
type SavedHook func(ctx context.Context, userID string, doc *portfolio.Portfolio)

type Options struct {
	DebounceWindow time.Duration
	WriteTimeout   time.Duration
	Now            func() time.Time
	OnSaved        []SavedHook
}

// State is a point-in-time view of the controller for status displays.
type State struct {
	Status      Status    `json:"status"`
	LastSavedAt time.Time `json:"lastSavedAt"`
	Pending     bool      `json:"pending"`
	Err         error     `json:"-"`
}

type Controller struct {
	store    portfolio.DocumentStore
	userID   string
	snapshot SnapshotFunc
	opts     Options
	logger   logger.Logger

	// writeMu keeps at most one write in flight.
	writeMu sync.Mutex

	mu          sync.Mutex
	status      Status
	lastErr     error
	lastSavedAt time.Time
	lastIssued  time.Time
	timer       *time.Timer
	timerSeq    uint64
	rev         uint64
	writtenRev  uint64
	closed      bool
}

func NewController(store portfolio.DocumentStore, userID string, snapshot SnapshotFunc, opts Options, log logger.Logger) *Controller {
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = DefaultDebounceWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		store:    store,
		userID:   userID,
		snapshot: snapshot,
		opts:     opts,
		logger:   log.With(zap.String("owner_id", userID)),
		status:   StatusIdle,
	}
}

// MarkLoaded records that the initial load finished. savedAt is the stored
// document's updatedAt, zero for a fresh portfolio.
func (c *Controller) MarkLoaded(savedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusIdle {
		c.status = StatusSaved
	}
	c.lastSavedAt = savedAt
	c.lastIssued = savedAt
}

// MarkDirty registers a mutation and restarts the debounce window.
func (c *Controller) MarkDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.logger.Warn("Edit after close is not saved")
		return
	}
	c.rev++
	c.status = StatusSaving
	c.stopTimerLocked()
	seq := c.timerSeq
	c.timer = time.AfterFunc(c.opts.DebounceWindow, func() { c.fire(seq) })
}

// SaveNow cancels the pending debounce and writes the latest state at once.
// If a write is already in flight it waits for it first.
func (c *Controller) SaveNow(ctx context.Context) error {
	c.mu.Lock()
	c.stopTimerLocked()
	c.mu.Unlock()
	return c.flush(ctx, true)
}

// Close stops the timer and flushes an unsaved revision.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.stopTimerLocked()
	c.mu.Unlock()
	return c.flush(ctx, false)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Status:      c.status,
		LastSavedAt: c.lastSavedAt,
		Pending:     c.timer != nil,
		Err:         c.lastErr,
	}
}

// stopTimerLocked also retires the current sequence number, so a callback
// that already started cannot act on behalf of a cancelled timer.
func (c *Controller) stopTimerLocked() {
	c.timerSeq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) fire(seq uint64) {
	c.mu.Lock()
	if seq != c.timerSeq {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	ctx := context.Background()
	if err := c.flush(ctx, false); err != nil {
		c.logger.Error("Debounced autosave failed", err)
	}
}

// flush writes the current model. Without force it skips revisions that
// are already stored, so a timer that lost a race with SaveNow is a no-op.
func (c *Controller) flush(ctx context.Context, force bool) error {
	c.writeMu.Lock()

	c.mu.Lock()
	rev := c.rev
	if !force && rev == c.writtenRev {
		c.mu.Unlock()
		c.writeMu.Unlock()
		return nil
	}
	ts := c.opts.Now().UTC()
	if ts.Before(c.lastIssued) {
		ts = c.lastIssued
	}
	c.lastIssued = ts
	c.status = StatusSaving
	c.mu.Unlock()

	doc := c.snapshot()
	doc.UpdatedAt = ts

	err := c.write(ctx, doc)

	c.mu.Lock()
	if err != nil {
		c.status = StatusError
		c.lastErr = err
	} else {
		c.lastErr = nil
		if rev > c.writtenRev {
			c.writtenRev = rev
		}
		c.lastSavedAt = ts
		if c.rev == c.writtenRev && c.timer == nil {
			c.status = StatusSaved
		}
	}
	c.mu.Unlock()
	c.writeMu.Unlock()

	if err != nil {
		return err
	}
	for _, hook := range c.opts.OnSaved {
		hook(ctx, c.userID, doc)
	}
	return nil
}

func (c *Controller) write(ctx context.Context, doc *portfolio.Portfolio) error {
	ctx, span := tracer.Start(ctx, "autosave.write")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", c.userID))

	if c.opts.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.WriteTimeout)
		defer cancel()
	}

	err := c.store.Set(ctx, c.userID, doc, portfolio.SetOptions{Merge: true})
	if err == nil {
		c.logger.Debug("Portfolio saved", zap.Time("updated_at", doc.UpdatedAt))
		return nil
	}
	span.RecordError(err)
	c.logger.Warn("Portfolio write failed, keeping local edits", zap.Error(err))

	if errors.Is(err, apperror.ErrStoreUnavailable) {
		return err
	}
	return apperror.NewStoreUnavailable("portfolio write failed", err)
}
