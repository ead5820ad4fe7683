package workflow

import "fmt"

// Phase is a step in a mutation workflow. The original callback-chained
// confirmation flow is modeled as an explicit machine so transitions can
// be tested independent of any UI toolkit.
type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseAwaitingConfirmation Phase = "awaiting_confirmation"
	PhaseMutating             Phase = "mutating"
	PhasePersisting           Phase = "persisting"
	PhaseSyncing              Phase = "syncing"
	PhaseFailed               Phase = "failed"
)

var transitions = map[Phase][]Phase{
	PhaseIdle:                 {PhaseAwaitingConfirmation},
	PhaseAwaitingConfirmation: {PhaseMutating, PhaseIdle}, // dismissal aborts back to idle
	PhaseMutating:             {PhasePersisting},
	PhasePersisting:           {PhaseSyncing, PhaseFailed},
	PhaseSyncing:              {PhaseIdle, PhaseFailed},
	PhaseFailed:               {PhaseIdle},
}

// Machine tracks the phase of the single in-flight workflow. Only one
// workflow can be pending at a time, which models the original blocking
// modal as an explicit guard instead of relying on UI exclusivity.
type Machine struct {
	phase Phase
}

func NewMachine() *Machine {
	return &Machine{phase: PhaseIdle}
}

func (m *Machine) Phase() Phase {
	return m.phase
}

// Idle reports whether a new workflow may start.
func (m *Machine) Idle() bool {
	return m.phase == PhaseIdle || m.phase == PhaseFailed
}

// Transition moves to the target phase, rejecting moves the machine does
// not define.
func (m *Machine) Transition(to Phase) error {
	for _, allowed := range transitions[m.phase] {
		if allowed == to {
			m.phase = to
			return nil
		}
	}
	return fmt.Errorf("invalid workflow transition %s -> %s", m.phase, to)
}

// Reset forces the machine back to idle. Used when a failed workflow's
// notice is dismissed.
func (m *Machine) Reset() {
	m.phase = PhaseIdle
}
