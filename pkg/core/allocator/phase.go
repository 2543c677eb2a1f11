package allocator

// Phase names recorded on committed blocks
const (
	PhasePriority  = "priority"
	PhaseSpread    = "spread"
	PhaseMixing    = "mixing"
	PhaseRemainder = "remainder"
)

// Phase is one pass of the allocation pipeline.
// Phases run in a fixed order and each sees every booking made by the phases before it.
type Phase interface {
	// Name returns the identifier recorded on blocks committed by this phase
	Name() string

	// Run commits blocks into the shared state.
	// Any returned error aborts the whole run.
	Run(state *ScheduleState) error
}

// DefaultPhases returns the standard pipeline: priority, spread, mixing, remainder
func DefaultPhases() []Phase {
	return []Phase{
		&PriorityPhase{},
		&SpreadPhase{},
		&MixingPhase{},
		&RemainderPhase{},
	}
}
