package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/ndscreen/internal/store"
)

// DefaultAutosaveDelay is the quiet period after the last change before the
// state is written.
const DefaultAutosaveDelay = 800 * time.Millisecond

// Autosaver coalesces session changes into debounced writes. Each Schedule
// restarts the delay and replaces the pending payload, so at most one write
// is pending and it carries the newest state.
type Autosaver struct {
	repo   store.EntryRepo
	delay  time.Duration
	logger *slog.Logger

	// OnSaved is called after a successful write of a state that has a
	// profile. It runs on the writing goroutine.
	OnSaved func(rev int64)

	// OnError is called when a write fails.
	OnError func(err error)

	writeMu sync.Mutex // serializes writes so they land in schedule order

	mu      sync.Mutex
	timer   *time.Timer
	pending *Payload
	closed  bool
}

// NewAutosaver creates an autosaver writing to repo. A non-positive delay
// uses DefaultAutosaveDelay.
func NewAutosaver(repo store.EntryRepo, delay time.Duration, logger *slog.Logger) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Autosaver{repo: repo, delay: delay, logger: logger}
}

// Watch registers the autosaver as s's change observer.
func (a *Autosaver) Watch(s *Session) {
	s.OnChange(func() {
		p, err := s.Payload()
		if err != nil {
			a.logger.Error("encode session for autosave", "error", err)
			return
		}
		a.Schedule(p)
	})
}

// Schedule replaces the pending payload with p and restarts the delay.
func (a *Autosaver) Schedule(p Payload) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.pending = &p
	if a.timer == nil {
		a.timer = time.AfterFunc(a.delay, a.fire)
		return
	}
	a.timer.Reset(a.delay)
}

func (a *Autosaver) fire() {
	_ = a.Flush(context.Background())
}

// Flush writes the pending payload immediately, if any.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	p := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
	}
	a.mu.Unlock()

	if p == nil {
		return nil
	}

	rev, err := a.repo.SaveAll(ctx, p.Values)
	if err != nil {
		a.logger.Error("autosave failed", "error", err)
		if a.OnError != nil {
			a.OnError(err)
		}
		return err
	}
	a.logger.Debug("autosaved", "revision", rev)
	if p.HasProfile && a.OnSaved != nil {
		a.OnSaved(rev)
	}
	return nil
}

// Close stops further scheduling and writes any pending payload.
func (a *Autosaver) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.Flush(ctx)
}
