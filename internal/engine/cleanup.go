package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/wsl-tools/wslsync/internal/event"
	"github.com/wsl-tools/wslsync/internal/pathsafe"
)

// clean runs the cleanup pass: delete destination files the kept-set no
// longer wants, then prune emptied directories bottom-up. Cleanup I/O
// failures are logged and skipped; they never abort the remaining pass.
func (e *Engine) clean(ctx context.Context) {
	e.setPhase(PhaseCleaning)

	var files, dirs []string
	err := filepath.WalkDir(e.cfg.Dest, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			e.log.Warn("cleanup walk", "path", path, "error", err)
			return nil
		}
		if path == e.cfg.Dest {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return // cancelled
	}

	for _, path := range files {
		if ctx.Err() != nil {
			return
		}
		e.cleanFile(path)
	}

	// Prune directories deepest-first so emptied subtrees collapse fully.
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	for _, dir := range dirs {
		if ctx.Err() != nil {
			return
		}
		e.pruneDir(dir)
	}
}

func (e *Engine) cleanFile(path string) {
	if e.kept.Keeps(path) {
		e.stats.AddFilesPreserved(1)
		e.emit(event.Event{Type: event.FilePreserved, Path: e.relDest(path)})
		return
	}

	// Defensive: never delete anything that resolves outside the
	// destination base, however it got there.
	if !pathsafe.Within(path, e.cfg.Dest) {
		e.log.Warn("skipping path outside destination base", "path", path)
		return
	}

	e.emit(event.Event{Type: event.FileDeleted, Path: e.relDest(path)})

	if e.cfg.DryRun {
		e.stats.AddFilesDeleted(1)
		e.log.Info("would delete", "path", path)
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		e.log.Warn("delete failed", "path", path, "error", err)
		return
	}
	e.stats.AddFilesDeleted(1)
	e.log.Debug("deleted", "path", path)
}

func (e *Engine) pruneDir(dir string) {
	// An empty directory the configuration still wants stays.
	if e.kept.Keeps(dir) {
		return
	}
	if !pathsafe.Within(dir, e.cfg.Dest) {
		e.log.Warn("skipping path outside destination base", "path", dir)
		return
	}

	if e.cfg.DryRun {
		// Emptiness can't be observed on disk in dry-run; a directory
		// would be pruned iff nothing kept lives below it.
		if !e.kept.KeepsUnder(dir) {
			e.stats.AddDirsPruned(1)
			e.emit(event.Event{Type: event.DirPruned, Path: e.relDest(dir)})
			e.log.Info("would prune", "path", dir)
		}
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		e.log.Warn("prune readdir failed", "path", dir, "error", err)
		return
	}
	if len(entries) > 0 {
		return
	}

	if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
		e.log.Warn("prune failed", "path", dir, "error", err)
		return
	}
	e.stats.AddDirsPruned(1)
	e.emit(event.Event{Type: event.DirPruned, Path: e.relDest(dir)})
	e.log.Debug("pruned", "path", dir)
}
