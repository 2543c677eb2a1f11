package allocator

import (
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// MixingPhase rotates subjects that share a mixing group, and therefore one scarce room type,
// so that the same subject is not taught in two consecutive scarce-room slots
type MixingPhase struct{}

func (p *MixingPhase) Name() string {
	return PhaseMixing
}

func (p *MixingPhase) Run(state *ScheduleState) error {
	for _, tag := range mixingTags(state) {
		if err := p.sequence(state, tag); err != nil {
			return err
		}
	}
	return nil
}

// sequence walks the horizon once for a single mixing group
func (p *MixingPhase) sequence(state *ScheduleState, tag string) error {
	var members []*model.Subject
	for _, s := range state.Subjects {
		if s.MixingGroup == tag {
			members = append(members, s)
		}
	}

	var previous *model.Subject
	commits := 0

	for _, slot := range state.Slots {
		if !anyRemaining(state, members) {
			break
		}

		var eligible []*model.Subject
		placements := make(map[string]placement)
		for _, s := range members {
			if state.Remaining(s) == 0 {
				continue
			}
			if pl, ok := state.findPlacement(s, slot); ok {
				eligible = append(eligible, s)
				placements[s.ID] = pl
			}
		}

		chosen := chooseMixingSubject(state, eligible, previous)
		if chosen == nil {
			continue
		}

		if err := state.commit(chosen, placements[chosen.ID], slot, p.Name()); err != nil {
			return err
		}
		previous = chosen
		commits++
	}

	state.logger.Debug("Mixing group sequenced",
		zap.String("mixing_group", tag),
		zap.Int("subjects", len(members)),
		zap.Int("committed", commits))
	return nil
}

// chooseMixingSubject picks the eligible subject with the most remaining blocks, skipping the
// previously committed subject unless it is the only candidate. Ties go to the lower id.
// eligible must be sorted by id.
func chooseMixingSubject(state *ScheduleState, eligible []*model.Subject, previous *model.Subject) *model.Subject {
	if len(eligible) == 0 {
		return nil
	}
	if len(eligible) == 1 {
		return eligible[0]
	}

	var best *model.Subject
	for _, s := range eligible {
		if s == previous {
			continue
		}
		if best == nil || state.Remaining(s) > state.Remaining(best) {
			best = s
		}
	}
	return best
}

func anyRemaining(state *ScheduleState, subjects []*model.Subject) bool {
	for _, s := range subjects {
		if state.Remaining(s) > 0 {
			return true
		}
	}
	return false
}

// mixingTags returns the distinct mixing group tags in sorted order
func mixingTags(state *ScheduleState) []string {
	var tags []string
	for _, s := range state.Subjects {
		if s.MixingGroup != "" && !slices.Contains(tags, s.MixingGroup) {
			tags = append(tags, s.MixingGroup)
		}
	}
	slices.Sort(tags)
	return tags
}
