package allocator

import "go.uber.org/zap"

// RemainderPhase fills every subject's unmet requirement into the earliest feasible slots
type RemainderPhase struct{}

func (p *RemainderPhase) Name() string {
	return PhaseRemainder
}

func (p *RemainderPhase) Run(state *ScheduleState) error {
	for _, subject := range state.Subjects {
		if state.Remaining(subject) == 0 {
			continue
		}

		for _, slot := range state.Slots {
			if state.Remaining(subject) == 0 {
				break
			}
			if _, err := state.tryPlace(subject, slot, p.Name()); err != nil {
				return err
			}
		}

		if missing := state.Remaining(subject); missing > 0 {
			state.logger.Debug("Subject under-allocated after remainder pass",
				zap.String("subject", subject.ID),
				zap.Int("missing", missing))
		}
	}
	return nil
}
