package engine

import (
	"path/filepath"
	"strings"
)

// KeptSet records destination paths that must survive the cleanup pass:
// every file copied (or, in dry-run, that would be copied) and every
// directory mirrored from a configured entry. It is owned by a single
// engine run and discarded afterwards; nothing persists between runs.
type KeptSet struct {
	base  string
	paths map[string]bool // absolute destination path -> is directory
}

// NewKeptSet creates an empty kept-set rooted at the destination base.
func NewKeptSet(base string) *KeptSet {
	return &KeptSet{
		base:  filepath.Clean(base),
		paths: make(map[string]bool),
	}
}

// Add records a kept file.
func (k *KeptSet) Add(path string) { k.paths[filepath.Clean(path)] = false }

// AddDir records a kept directory. Descendants of a kept directory are
// retained even when they were not individually recorded.
func (k *KeptSet) AddDir(path string) { k.paths[filepath.Clean(path)] = true }

// Len returns the number of recorded paths.
func (k *KeptSet) Len() int { return len(k.paths) }

// Keeps reports whether path must survive cleanup: either recorded
// directly, or a descendant of a recorded directory.
func (k *KeptSet) Keeps(path string) bool {
	path = filepath.Clean(path)
	if _, ok := k.paths[path]; ok {
		return true
	}
	for p := filepath.Dir(path); len(p) > len(k.base); p = filepath.Dir(p) {
		if isDir, ok := k.paths[p]; ok && isDir {
			return true
		}
		if filepath.Dir(p) == p {
			break
		}
	}
	return false
}

// KeepsUnder reports whether any recorded path lies strictly below dir.
// The cleanup pass uses this in dry-run mode, where emptied directories
// cannot be observed on disk.
func (k *KeptSet) KeepsUnder(dir string) bool {
	prefix := filepath.Clean(dir) + string(filepath.Separator)
	for p := range k.paths {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
