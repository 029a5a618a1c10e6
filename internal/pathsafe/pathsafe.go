// Package pathsafe guards filesystem operations against path traversal.
// Every configured entry is joined and checked here before the engine
// reads, writes, or deletes anything.
package pathsafe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrTraversal is returned when an entry would escape its base directory.
var ErrTraversal = errors.New("path escapes base directory")

// Join joins an untrusted relative entry onto base. Absolute entries and
// traversal sequences (`..`) that would leave base are rejected.
func Join(base, entry string) (string, error) {
	cleaned := filepath.FromSlash(entry)
	if entry == "" || !filepath.IsLocal(cleaned) {
		return "", fmt.Errorf("%q: %w", entry, ErrTraversal)
	}
	return filepath.Join(base, cleaned), nil
}

// Within reports whether candidate resolves to base or a descendant of it.
// Symlinks are followed for the part of candidate that exists on disk; a
// nonexistent tail is resolved lexically, so a destination that has not
// been created yet can still be checked.
func Within(candidate, base string) bool {
	resolvedBase, err := resolve(base)
	if err != nil {
		return false
	}
	resolvedCand, err := resolve(candidate)
	if err != nil {
		return false
	}
	if resolvedCand == resolvedBase {
		return true
	}
	return strings.HasPrefix(resolvedCand, resolvedBase+string(filepath.Separator))
}

// resolve canonicalizes path: absolute, cleaned, symlinks followed for the
// deepest existing ancestor, remaining segments re-attached lexically.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	// Walk up to the deepest existing ancestor, resolve that, then
	// append the nonexistent tail.
	prefix := abs
	var tail []string
	for {
		parent := filepath.Dir(prefix)
		if parent == prefix {
			// Hit the root without finding anything on disk.
			return abs, nil
		}
		tail = append(tail, filepath.Base(prefix))
		prefix = parent

		resolved, err = filepath.EvalSymlinks(prefix)
		if err == nil {
			break
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}

	for i := len(tail) - 1; i >= 0; i-- {
		resolved = filepath.Join(resolved, tail[i])
	}
	return resolved, nil
}
