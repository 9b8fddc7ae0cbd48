package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// AutosaveConfig carries the two timer settings: the unconditional periodic
// interval and the short debounce window that coalesces bursts of edits.
type AutosaveConfig struct {
	Interval time.Duration
	Debounce time.Duration
}

// Autosaver feeds two independently scheduled triggers into one idempotent
// save: a periodic ticker that fires while the session is live, and a
// debounced timer reset on every edit. Autosave is best-effort; failures are
// logged and the next trigger retries. Only the final submission treats a
// persistence failure as fatal, and that path does not go through here.
type Autosaver struct {
	mu       sync.Mutex
	save     func(ctx context.Context) error
	interval time.Duration
	debounce time.Duration
	logger   *slog.Logger

	debounceTimer *time.Timer
	done          chan struct{}
	started       bool
	stopped       bool
}

func NewAutosaver(save func(ctx context.Context) error, cfg AutosaveConfig, logger *slog.Logger) *Autosaver {
	return &Autosaver{
		save:     save,
		interval: cfg.Interval,
		debounce: cfg.Debounce,
		logger:   logger,
	}
}

// StartPeriodic begins the interval trigger. Safe to call more than once;
// only the first call starts the goroutine.
func (a *Autosaver) StartPeriodic() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started || a.stopped {
		return
	}
	a.started = true
	a.done = make(chan struct{})

	go func(done chan struct{}) {
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				a.trySave()
			}
		}
	}(a.done)
}

// Touch schedules a debounced save: rapid successive edits collapse into a
// single write once the burst settles.
func (a *Autosaver) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	if a.debounceTimer != nil {
		a.debounceTimer.Stop()
	}
	a.debounceTimer = time.AfterFunc(a.debounce, a.trySave)
}

// Flush saves immediately and reports the error; used by save-now and the
// pre-submission write where persistence failure is fatal.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.debounceTimer != nil {
		a.debounceTimer.Stop()
		a.debounceTimer = nil
	}
	a.mu.Unlock()

	return a.save(ctx)
}

// Stop halts both triggers. Pending debounced saves are dropped; the caller
// decides whether a final Flush is needed first.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	a.stopped = true
	if a.debounceTimer != nil {
		a.debounceTimer.Stop()
		a.debounceTimer = nil
	}
	if a.started {
		close(a.done)
	}
}

func (a *Autosaver) trySave() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.save(ctx); err != nil {
		// Best effort: never block or fail the user-facing flow. The next
		// periodic tick retries.
		a.logger.Warn("autosave failed", "error", err)
	}
}
