package engine

import (
	"fmt"
	"os"

	"github.com/wsl-tools/wslsync/internal/pathsafe"
)

// validate confirms both base directories and checks every configured
// entry for traversal before anything is copied. All-or-nothing: any
// violation aborts the run with zero mutation. The one permitted side
// effect is creating the destination base itself (skipped in dry-run).
func (e *Engine) validate() error {
	e.setPhase(PhaseValidating)

	info, err := os.Stat(e.cfg.Source)
	if err != nil {
		return fmt.Errorf("source base: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source base %s is not a directory", e.cfg.Source)
	}

	if _, err := os.Stat(e.cfg.Dest); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("destination base: %w", err)
		}
		if e.cfg.DryRun {
			e.log.Info("destination base missing, would create", "path", e.cfg.Dest)
		} else if err := os.MkdirAll(e.cfg.Dest, 0o755); err != nil {
			return fmt.Errorf("create destination base: %w", err)
		}
	}

	for _, entry := range e.cfg.Entries {
		src, err := pathsafe.Join(e.cfg.Source, entry)
		if err != nil {
			return fmt.Errorf("entry %q: %w", entry, err)
		}
		if !pathsafe.Within(src, e.cfg.Source) {
			return fmt.Errorf("entry %q resolves outside source base: %w", entry, pathsafe.ErrTraversal)
		}

		dst, err := pathsafe.Join(e.cfg.Dest, entry)
		if err != nil {
			return fmt.Errorf("entry %q: %w", entry, err)
		}
		if !pathsafe.Within(dst, e.cfg.Dest) {
			return fmt.Errorf("entry %q resolves outside destination base: %w", entry, pathsafe.ErrTraversal)
		}
	}

	return nil
}
