package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/wsl-tools/wslsync/internal/event"
	"github.com/wsl-tools/wslsync/internal/stats"
)

// plainPresenter outputs one line per file action to stdout, and periodic
// progress to stderr when output is redirected (not a TTY).
type plainPresenter struct {
	w      io.Writer
	errW   io.Writer
	stats  *stats.Collector
	isTTY  bool
	dryRun bool
}

func (p *plainPresenter) Run(events <-chan event.Event) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.PhaseStarted:
		switch ev.Phase {
		case "copying":
			fmt.Fprintln(p.w, stylePhase.Render("copying files"))
		case "cleaning":
			fmt.Fprintln(p.w, stylePhase.Render("cleaning destination"))
		}
	case event.FileCopied:
		fmt.Fprintf(p.w, "%s %s  %s\n",
			styleCopy.Render(p.verb("copy:")), ev.Path, styleSize.Render(FormatBytes(ev.Size)))
	case event.FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "%s %s  %s\n", styleFail.Render("fail:"), ev.Path, errMsg)
	case event.EntrySkipped:
		fmt.Fprintf(p.w, "%s %s\n", styleSkip.Render("skip:"), ev.Path)
	case event.FileDeleted:
		fmt.Fprintf(p.w, "%s %s\n", styleDelete.Render(p.verb("delete:")), ev.Path)
	case event.DirPruned:
		fmt.Fprintf(p.w, "%s %s\n", styleDelete.Render(p.verb("prune:")), ev.Path)
	case event.VerifyFailed:
		fmt.Fprintf(p.w, "%s %s\n", styleFail.Render("MISMATCH:"), ev.Path)
	case event.DirCreated, event.FilePreserved:
		// silent in plain mode
	}
}

// verb prefixes an action with "would " on dry runs.
func (p *plainPresenter) verb(action string) string {
	if p.dryRun {
		return "would " + action
	}
	return action
}

func (p *plainPresenter) printProgress() {
	if p.isTTY {
		// Interactive runs already see the per-action feed.
		return
	}
	snap := p.stats.Snapshot()
	avg := 0.0
	if secs := snap.Elapsed.Seconds(); secs > 0 {
		avg = float64(snap.BytesCopied) / secs
	}
	fmt.Fprintf(p.errW, "progress: %s copied %s files %s\n",
		FormatBytes(snap.BytesCopied),
		FormatCount(snap.FilesCopied),
		FormatRate(avg),
	)
}

func (p *plainPresenter) Summary() string {
	return completionSummary(p.stats.Snapshot())
}
