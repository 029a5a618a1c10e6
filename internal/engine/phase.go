package engine

// Phase identifies the engine's position in the sync state machine.
// Phases run strictly in order; Failed absorbs any validation error and
// context cancellation.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseValidating
	PhaseCopying
	PhaseCleaning
	PhaseDone
	PhaseFailed
)

var phaseNames = [...]string{
	PhaseInit:       "init",
	PhaseValidating: "validating",
	PhaseCopying:    "copying",
	PhaseCleaning:   "cleaning",
	PhaseDone:       "done",
	PhaseFailed:     "failed",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}
