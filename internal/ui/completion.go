package ui

import (
	"fmt"

	"github.com/wsl-tools/wslsync/internal/stats"
)

// completionSummary builds a final summary line from a snapshot.
// Format: done ✓  copied 48  size 2.1 MiB  deleted 3  pruned 1  time 17s  errors 0
func completionSummary(snap stats.Snapshot) string {
	icon := "✓"
	if snap.FilesFailed > 0 || snap.VerifyFailed > 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  copied %s  size %s  deleted %s  pruned %s  time %s",
		icon,
		FormatCount(snap.FilesCopied),
		FormatBytes(snap.BytesCopied),
		FormatCount(snap.FilesDeleted),
		FormatCount(snap.DirsPruned),
		FormatDuration(snap.Elapsed),
	)

	if snap.EntriesSkipped > 0 {
		base += fmt.Sprintf("  skipped %s", FormatCount(snap.EntriesSkipped))
	}

	base += fmt.Sprintf("  errors %d", snap.FilesFailed+snap.VerifyFailed)

	return base
}
