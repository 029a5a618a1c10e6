// Package engine implements the synchronization core: validate the
// configured paths, mirror the configured entries from the source base
// into the destination base, then delete destination entries the
// configuration no longer wants.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/wsl-tools/wslsync/internal/event"
	"github.com/wsl-tools/wslsync/internal/stats"
)

// Config describes one sync run.
type Config struct {
	Source  string   // windows_base: source tree root
	Dest    string   // wsl2_base: destination tree root
	Entries []string // relative paths to sync, in configured order

	DryRun  bool
	NoTimes bool // don't preserve mtime/atime on copied files
	Verify  bool // re-hash source and destination after each copy
	BWLimit int64

	Logger *slog.Logger
	Events chan<- event.Event
	Stats  *stats.Collector
}

// EntryError records the failure of one configured entry.
type EntryError struct {
	Entry string
	Err   error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Entry, e.Err)
}

// Result is the outcome of a sync run. Err is set only for fatal
// (validation or cancellation) failures; per-entry problems land in
// Failures and the run still completes.
type Result struct {
	Stats    stats.Snapshot
	Failures []EntryError
	Err      error
}

// Engine owns the state of a single run: the kept-set, the accumulated
// failures, and the current phase. It is not reused across runs.
type Engine struct {
	cfg      Config
	log      *slog.Logger
	stats    *stats.Collector
	limiter  *rate.Limiter
	kept     *KeptSet
	failures []EntryError
	phase    Phase
}

// Run executes a sync, blocking until complete. Phases are strictly
// sequential: cleanup never starts until the copy phase has finished and
// the kept-set is final.
func Run(ctx context.Context, cfg Config) Result {
	e := &Engine{
		cfg:   cfg,
		log:   cfg.Logger,
		stats: cfg.Stats,
		kept:  NewKeptSet(cfg.Dest),
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.stats == nil {
		e.stats = stats.NewCollector()
	}
	if cfg.BWLimit > 0 {
		e.limiter = NewBWLimiter(cfg.BWLimit)
	}

	if err := e.validate(); err != nil {
		e.setPhase(PhaseFailed)
		e.log.Error("validation failed", "error", err)
		return Result{Stats: e.stats.Snapshot(), Err: err}
	}

	e.copyAll(ctx)
	if err := ctx.Err(); err != nil {
		e.setPhase(PhaseFailed)
		return Result{Stats: e.stats.Snapshot(), Failures: e.failures, Err: err}
	}

	e.clean(ctx)
	if err := ctx.Err(); err != nil {
		e.setPhase(PhaseFailed)
		return Result{Stats: e.stats.Snapshot(), Failures: e.failures, Err: err}
	}

	e.setPhase(PhaseDone)
	snap := e.stats.Snapshot()
	e.log.Info("sync complete",
		"copied", snap.FilesCopied,
		"failed", snap.FilesFailed,
		"skipped", snap.EntriesSkipped,
		"deleted", snap.FilesDeleted,
		"pruned", snap.DirsPruned,
		"preserved", snap.FilesPreserved,
		"bytes", snap.BytesCopied,
	)
	return Result{Stats: snap, Failures: e.failures}
}

func (e *Engine) setPhase(p Phase) {
	e.phase = p
	e.log.Info("sync phase", "phase", p.String())
	e.emit(event.Event{Type: event.PhaseStarted, Phase: p.String()})
}

// emit sends an event without blocking; a full channel drops the event
// rather than stalling the sync.
func (e *Engine) emit(ev event.Event) {
	if e.cfg.Events == nil {
		return
	}
	ev.Timestamp = time.Now()
	select {
	case e.cfg.Events <- ev:
	default:
	}
}

// relDest returns path relative to the destination base for events and
// logs, falling back to the absolute path.
func (e *Engine) relDest(path string) string {
	rel, err := filepath.Rel(e.cfg.Dest, path)
	if err != nil {
		return path
	}
	return rel
}
