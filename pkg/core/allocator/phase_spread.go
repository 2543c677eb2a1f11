package allocator

import (
	"go.uber.org/zap"
)

// SpreadPhase places the remaining blocks of spread subjects at roughly equal
// chronological intervals across the horizon
type SpreadPhase struct{}

func (p *SpreadPhase) Name() string {
	return PhaseSpread
}

func (p *SpreadPhase) Run(state *ScheduleState) error {
	total := len(state.Slots)

	for _, subject := range state.Subjects {
		if !subject.Spread {
			continue
		}
		remaining := state.Remaining(subject)
		if remaining == 0 {
			continue
		}

		idealGap := total / (remaining + 1)
		deferred := 0

		for k := 1; k <= remaining; k++ {
			placed := false
			for i := k * idealGap; i < total; i++ {
				ok, err := state.tryPlace(subject, state.Slots[i], p.Name())
				if err != nil {
					return err
				}
				if ok {
					placed = true
					break
				}
			}
			if !placed {
				deferred++
			}
		}

		state.logger.Debug("Spread subject distributed",
			zap.String("subject", subject.ID),
			zap.Int("ideal_gap", idealGap),
			zap.Int("targets", remaining),
			zap.Int("deferred", deferred))
	}
	return nil
}
