package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	PhaseStarted Type = iota + 1
	FileCopied
	FileFailed
	EntrySkipped
	DirCreated
	FileDeleted
	DirPruned
	FilePreserved
	VerifyFailed
)

var typeNames = [...]string{
	PhaseStarted:  "PhaseStarted",
	FileCopied:    "FileCopied",
	FileFailed:    "FileFailed",
	EntrySkipped:  "EntrySkipped",
	DirCreated:    "DirCreated",
	FileDeleted:   "FileDeleted",
	DirPruned:     "DirPruned",
	FilePreserved: "FilePreserved",
	VerifyFailed:  "VerifyFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the sync engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Phase     string // set on PhaseStarted
	Path      string // path relative to the destination base
	Size      int64  // file size in bytes
	Error     error
}
