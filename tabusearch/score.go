package tabusearch

import (
	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/neighborhood"
)

// basePenalty precomputes Σ local_penalty(c)*violation(c) over every
// enabled constraint from cached values, so scoreOf only has to correct for
// the constraints a candidate move actually touches (O(|related|) per
// move, not O(|constraints|)).
func basePenalty(m *model.Model) float64 {
	var total float64
	for _, c := range m.Constraints() {
		if c.IsEnabled() {
			total += c.LocalPenalty() * c.Violation()
		}
	}
	return total
}

// augmentedScoreOf returns obj_after + Σ(local_penalty·violation_after) for
// mv under base (= basePenalty(m) for the whole pool), without the
// frequency/lagrangian terms — this is the "augmented objective" the
// glossary names, used inside scoreOf. The tabu-override check in
// selectMove compares the full score from scoreOf, not this value.
func augmentedScoreOf(m *model.Model, mv *neighborhood.Move, base float64) float64 {
	objAfter := m.EvaluateObjectiveMove(mv.Alterations)

	penaltyAfter := base
	for _, ci := range mv.RelatedConstraints {
		c := m.Constraint(ci)
		if !c.IsEnabled() {
			continue
		}
		violBefore := c.Violation()
		_, violAfter := m.EvaluateConstraintMove(ci, mv.Alterations)
		penaltyAfter += c.LocalPenalty() * (violAfter - violBefore)
	}
	return objAfter + penaltyAfter
}

// scoreOf implements the scoring formula:
//
//	obj_after + Σ(local_penalty·violation_after) + freq_penalty·Σfrequency(v) + lagrangian_penalty·lagrangian_term
//
// base must be basePenalty(m) computed once for the whole candidate pool
// this pass; mv.RelatedConstraints supplies the O(related) correction.
func scoreOf(m *model.Model, mv *neighborhood.Move, state *State, opts Options, base float64) float64 {
	augmented := augmentedScoreOf(m, mv, base)

	var lagrangian float64
	if state.DualEstimates != nil {
		for _, ci := range mv.RelatedConstraints {
			if ci < len(state.DualEstimates) {
				_, violAfter := m.EvaluateConstraintMove(ci, mv.Alterations)
				lagrangian += state.DualEstimates[ci] * violAfter
			}
		}
	}

	var freqTerm float64
	for _, a := range mv.Alterations {
		if a.VarIndex < len(state.Frequency) {
			freqTerm += float64(state.Frequency[a.VarIndex])
		}
	}

	return augmented +
		opts.FrequencyPenaltyCoefficient*freqTerm +
		opts.LagrangianPenaltyCoefficient*lagrangian
}
