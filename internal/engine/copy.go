package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/wsl-tools/wslsync/internal/event"
	"github.com/wsl-tools/wslsync/internal/platform"
)

// copyAll runs the copy phase: every configured entry in order, failures
// isolated per entry. Partial success is reported, never fatal.
func (e *Engine) copyAll(ctx context.Context) {
	e.setPhase(PhaseCopying)

	for _, entry := range e.cfg.Entries {
		if ctx.Err() != nil {
			return
		}
		if err := e.copyEntry(ctx, entry); err != nil {
			e.failures = append(e.failures, EntryError{Entry: entry, Err: err})
			var rep reportedError
			if !errors.As(err, &rep) {
				e.emit(event.Event{Type: event.FileFailed, Path: entry, Error: err})
			}
			e.log.Warn("entry failed", "entry", entry, "error", err)
		}
	}
}

// copyEntry dispatches one configured entry by its discovered kind.
func (e *Engine) copyEntry(ctx context.Context, entry string) error {
	// Entries were safety-checked during validation; plain joins here.
	src := filepath.Join(e.cfg.Source, entry)
	dst := filepath.Join(e.cfg.Dest, entry)

	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			if linfo, lerr := os.Lstat(src); lerr == nil && linfo.Mode()&os.ModeSymlink != 0 {
				// Dangling symlink: skipped, not failed.
				e.stats.AddEntriesSkipped(1)
				e.emit(event.Event{Type: event.EntrySkipped, Path: entry})
				e.log.Warn("skipping dangling symlink", "entry", entry)
				return nil
			}
			// Missing entries fail here rather than during validation: a
			// config may list paths that appear on the Windows side later.
			return fmt.Errorf("source not found: %s", src)
		}
		return fmt.Errorf("stat %s: %w", src, err)
	}

	switch {
	case info.IsDir():
		return e.copyTree(ctx, src, dst)
	case info.Mode().IsRegular():
		if err := e.copyFile(ctx, src, dst, info); err != nil {
			return err
		}
		e.kept.Add(dst)
		return nil
	default:
		// Sockets, devices, fifos. Skipped with a warning rather than
		// failing the run.
		e.stats.AddEntriesSkipped(1)
		e.emit(event.Event{Type: event.EntrySkipped, Path: entry})
		e.log.Warn("skipping irregular entry", "entry", entry, "mode", info.Mode().String())
		return nil
	}
}

// copyTree mirrors srcDir into dstDir. WalkDir visits entries in lexical
// order, which keeps logs reproducible. Individual file failures are
// counted and the walk continues; the aggregate error marks the entry
// failed without losing the rest of the tree.
func (e *Engine) copyTree(ctx context.Context, srcDir, dstDir string) error {
	var firstErr error
	var errCount int
	fail := func(err error) {
		errCount++
		if firstErr == nil {
			firstErr = err
		}
	}

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			fail(err)
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			fail(fmt.Errorf("rel path for %s: %w", path, err))
			return nil
		}
		dst := filepath.Join(dstDir, rel)

		switch {
		case d.IsDir():
			if !e.cfg.DryRun {
				if err := os.MkdirAll(dst, 0o755); err != nil {
					fail(fmt.Errorf("mkdir %s: %w", dst, err))
					return fs.SkipDir
				}
			}
			e.kept.AddDir(dst)
			e.stats.AddDirsCreated(1)
			e.emit(event.Event{Type: event.DirCreated, Path: e.relDest(dst)})
			return nil

		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				fail(fmt.Errorf("stat %s: %w", path, err))
				return nil
			}
			if err := e.copyFile(ctx, path, dst, info); err != nil {
				fail(err)
				return nil
			}
			e.kept.Add(dst)
			return nil

		default:
			// Symlinks and special files inside trees are not mirrored.
			e.log.Warn("skipping irregular file", "path", path, "mode", d.Type().String())
			return nil
		}
	})
	if walkErr != nil {
		fail(walkErr)
	}

	if errCount > 1 {
		return fmt.Errorf("%w (and %d more errors)", firstErr, errCount-1)
	}
	return firstErr
}

// copyFile copies one regular file: write to a uniquely-named temp file
// beside the destination, apply metadata, then rename into place so a
// crashed run never leaves a half-written destination file.
func (e *Engine) copyFile(ctx context.Context, src, dst string, info os.FileInfo) error {
	rel := e.relDest(dst)

	if e.cfg.DryRun {
		// A simulated copy still has to be able to read the source;
		// an unreadable file fails the same way it would in a real run.
		f, err := os.Open(src)
		if err != nil {
			return e.fileFailed(src, dst, fmt.Errorf("open %s: %w", src, err))
		}
		f.Close()
		e.stats.AddFilesCopied(1)
		e.stats.AddBytesCopied(info.Size())
		e.emit(event.Event{Type: event.FileCopied, Path: rel, Size: info.Size()})
		e.log.Debug("would copy", "src", src, "dst", dst, "bytes", info.Size())
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return e.fileFailed(src, dst, fmt.Errorf("create parent dir: %w", err))
	}

	tmp := tmpPath(dst)
	defer os.Remove(tmp) // no-op once renamed

	written, err := e.writeTmp(ctx, src, tmp, info)
	if err != nil {
		return e.fileFailed(src, dst, err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		return e.fileFailed(src, dst, fmt.Errorf("rename %s -> %s: %w", tmp, dst, err))
	}

	if e.cfg.Verify {
		if err := verifyCopy(src, dst); err != nil {
			e.stats.AddVerifyFailed(1)
			e.emit(event.Event{Type: event.VerifyFailed, Path: rel, Error: err})
			e.log.Error("verify failed", "src", src, "dst", dst, "error", err)
		}
	}

	e.stats.AddFilesCopied(1)
	e.stats.AddBytesCopied(written)
	e.emit(event.Event{Type: event.FileCopied, Path: rel, Size: written})
	e.log.Debug("copied", "src", src, "dst", dst, "bytes", written)
	return nil
}

// reportedError marks a failure already surfaced as a FileFailed event so
// the entry-level handler does not emit a second one for the same file.
type reportedError struct{ err error }

func (r reportedError) Error() string { return r.err.Error() }
func (r reportedError) Unwrap() error { return r.err }

// fileFailed records a per-file failure with enough context to diagnose.
func (e *Engine) fileFailed(src, dst string, err error) error {
	e.stats.AddFilesFailed(1)
	e.emit(event.Event{Type: event.FileFailed, Path: e.relDest(dst), Error: err})
	e.log.Error("copy failed", "src", src, "dst", dst, "error", err)
	return reportedError{err: err}
}

func (e *Engine) writeTmp(ctx context.Context, src, tmp string, info os.FileInfo) (int64, error) {
	fd, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("create tmp %s: %w", tmp, err)
	}

	var written int64
	if info.Size() > 0 {
		if e.limiter != nil {
			written, err = copyThrottled(ctx, src, fd, e.limiter)
		} else {
			var result platform.CopyResult
			result, err = platform.CopyFile(platform.CopyFileParams{
				SrcPath: src,
				DstFd:   fd,
				SrcSize: info.Size(),
			})
			written = result.BytesWritten
		}
		if err != nil {
			fd.Close()
			return written, fmt.Errorf("copy data: %w", err)
		}
	}

	if !e.cfg.NoTimes {
		if err := preserveTimes(fd, info); err != nil {
			fd.Close()
			return written, err
		}
	}

	if err := fd.Close(); err != nil {
		return written, fmt.Errorf("close tmp %s: %w", tmp, err)
	}
	return written, nil
}

// preserveTimes copies mtime and atime from the source onto the still-open
// temp file, before the rename makes it visible.
func preserveTimes(fd *os.File, info os.FileInfo) error {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fmt.Errorf("unsupported stat type for %s", fd.Name())
	}
	return setFileTimes(int(fd.Fd()), fd.Name(), atimeFromStat(stat), info.ModTime())
}

func tmpPath(dst string) string {
	dir, base := filepath.Split(dst)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.wslsync-tmp", base, uuid.New().String()[:8]))
}
