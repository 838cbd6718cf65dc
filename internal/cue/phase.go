package cue

// Phase is where a session currently is inside one HandleUtterance
// call. The session moves through phases strictly sequentially; the
// value is readable from other goroutines so the UI can show what the
// blocking call is doing.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseDetecting Phase = "detecting"
	PhaseResolving Phase = "resolving"
	PhaseSelecting Phase = "selecting"
	PhasePlaying   Phase = "playing"
)

// phaseTransitions is the complete set of legal phase moves for one
// utterance: Idle -> Detecting -> {Idle on no match | Resolving ->
// Selecting -> {Idle on selection failure | Playing -> Idle}}.
var phaseTransitions = map[Phase][]Phase{
	PhaseIdle:      {PhaseDetecting},
	PhaseDetecting: {PhaseIdle, PhaseResolving},
	PhaseResolving: {PhaseSelecting},
	PhaseSelecting: {PhaseIdle, PhasePlaying},
	PhasePlaying:   {PhaseIdle},
}

// CanTransitionTo reports whether moving from p to next is a legal
// phase transition.
func (p Phase) CanTransitionTo(next Phase) bool {
	for _, t := range phaseTransitions[p] {
		if t == next {
			return true
		}
	}
	return false
}

// Phases returns every phase, scan-ordered for display.
func Phases() []Phase {
	return []Phase{PhaseIdle, PhaseDetecting, PhaseResolving, PhaseSelecting, PhasePlaying}
}
