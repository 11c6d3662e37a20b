package solver

import (
	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/tabusearch"
)

// controllerState carries the penalty controller's own memory across outer
// passes: the currently adapted relaxing rate and the outer-stagnation
// counters.
type controllerState struct {
	relaxingRate float64

	bestFeasibleObjective  float64
	haveFeasibleObjective  bool
	bestAugmentedObjective float64
	haveAugmentedObjective bool

	outerStagnationCount int
}

func newControllerState(opts Options) *controllerState {
	return &controllerState{relaxingRate: opts.Penalty.RelaxingRate}
}

// initializePenalties seeds every constraint's local/global penalty with
// opts.Penalty.InitialPenaltyCoefficient, the shared starting point both
// penalty coefficients begin from.
func initializePenalties(m *model.Model, opts Options) {
	for _, c := range m.Constraints() {
		c.SetLocalPenalty(opts.Penalty.InitialPenaltyCoefficient)
		c.SetGlobalPenalty(opts.Penalty.InitialPenaltyCoefficient)
	}
}

// afterPass applies the between-pass penalty policy given whether the pass
// that just completed ended feasible, and reports whether the controller
// decided to restart.
func (cs *controllerState) afterPass(m *model.Model, state *tabusearch.State, opts Options, endedFeasible bool) (restarted bool) {
	if endedFeasible {
		cs.relaxForFeasiblePass(m, opts)
	} else {
		cs.tightenForInfeasiblePass(m, opts)
	}

	if opts.Penalty.EnableGroupPenaltyCoefficient {
		tieGroupPenalties(m)
	}

	improved := cs.recordProgress(m)
	if improved {
		cs.outerStagnationCount = 0
		return false
	}

	cs.outerStagnationCount++
	if opts.Penalty.OuterStagnationThreshold > 0 && cs.outerStagnationCount >= opts.Penalty.OuterStagnationThreshold {
		cs.outerStagnationCount = 0
		restartSearch(m, state, opts)
		return true
	}
	return false
}

// relaxForFeasiblePass multiplies every local penalty by the current
// relaxing rate, then adapts the rate itself toward RelaxingRateMax (reward)
// or RelaxingRateMin (penalize) depending on whether the feasible objective
// improved since the last feasible pass.
func (cs *controllerState) relaxForFeasiblePass(m *model.Model, opts Options) {
	for _, c := range m.Constraints() {
		if c.IsEnabled() {
			c.SetLocalPenalty(c.LocalPenalty() * cs.relaxingRate)
		}
	}

	var objective float64
	if o := m.Objective(); o != nil {
		objective = o.Value()
	}
	betterFeasible := !cs.haveFeasibleObjective || isBetterObjective(m.Sense(), objective, cs.bestFeasibleObjective)

	if betterFeasible {
		cs.relaxingRate *= opts.Penalty.RelaxingRateIncreaseRate
	} else {
		cs.relaxingRate *= opts.Penalty.RelaxingRateDecreaseRate
	}
	if cs.relaxingRate > opts.Penalty.RelaxingRateMax {
		cs.relaxingRate = opts.Penalty.RelaxingRateMax
	}
	if cs.relaxingRate < opts.Penalty.RelaxingRateMin {
		cs.relaxingRate = opts.Penalty.RelaxingRateMin
	}
}

// tightenForInfeasiblePass multiplies each violated constraint's local
// penalty by a factor interpolated between the uniform TighteningRate and a
// proportional-to-violation-share rate, per UpdatingBalance ∈ [0,1].
func (cs *controllerState) tightenForInfeasiblePass(m *model.Model, opts Options) {
	maxViol := 0.0
	for _, c := range m.Constraints() {
		if c.IsEnabled() && c.Violation() > maxViol {
			maxViol = c.Violation()
		}
	}
	if maxViol <= 0 {
		return
	}

	balance := opts.Penalty.UpdatingBalance
	base := opts.Penalty.TighteningRate
	for _, c := range m.Constraints() {
		if !c.IsEnabled() || c.Violation() <= 0 {
			continue
		}
		share := c.Violation() / maxViol
		// factor interpolates linearly between the uniform rate (balance=0)
		// and a rate scaled by this constraint's share of the worst
		// violation (balance=1): 1 + (base-1)*((1-balance) + balance*share).
		weight := (1-balance)*1.0 + balance*share
		factor := 1 + (base-1)*weight
		c.SetLocalPenalty(c.LocalPenalty() * factor)
	}
}

// tieGroupPenalties sets every selection group's member constraints' local
// penalty to their shared maximum, the is_enabled_group_penalty_coefficient
// behavior.
func tieGroupPenalties(m *model.Model) {
	for _, g := range m.Selections() {
		if len(g.RelatedConstraints) == 0 {
			continue
		}
		max := 0.0
		for _, ci := range g.RelatedConstraints {
			if p := m.Constraint(ci).LocalPenalty(); p > max {
				max = p
			}
		}
		for _, ci := range g.RelatedConstraints {
			m.Constraint(ci).SetLocalPenalty(max)
		}
	}
}

// recordProgress updates the controller's best-known feasible and augmented
// objectives from the model's current quiescent state and reports whether
// either one improved — the "new feasible or better augmented incumbent"
// test that drives the restart trigger.
func (cs *controllerState) recordProgress(m *model.Model) bool {
	improved := false
	sense := m.Sense()

	augmented := augmentedQuiescentObjective(m)
	if !cs.haveAugmentedObjective || isBetterObjective(sense, augmented, cs.bestAugmentedObjective) {
		cs.bestAugmentedObjective = augmented
		cs.haveAugmentedObjective = true
		improved = true
	}

	if m.IsFeasible() && m.Objective() != nil {
		obj := m.Objective().Value()
		if !cs.haveFeasibleObjective || isBetterObjective(sense, obj, cs.bestFeasibleObjective) {
			cs.bestFeasibleObjective = obj
			cs.haveFeasibleObjective = true
			improved = true
		}
	}
	return improved
}

func isBetterObjective(sense model.Sense, candidate, incumbent float64) bool {
	if sense == model.Max {
		return candidate > incumbent
	}
	return candidate < incumbent
}

func augmentedQuiescentObjective(m *model.Model) float64 {
	var obj float64
	if o := m.Objective(); o != nil {
		obj = o.Value()
	}
	var penalty float64
	for _, c := range m.Constraints() {
		if c.IsEnabled() {
			penalty += c.LocalPenalty() * c.Violation()
		}
	}
	return obj + penalty
}

// restartSearch implements the outer-stagnation restart policy: Simple
// reinitializes every mutable variable's value from the augmented
// incumbent (falling back to each variable's bound midpoint if no
// incumbent has been recorded yet), Smart additionally resets every
// constraint's local penalty back to its global penalty. Both modes leave
// fixed variables untouched, honoring the fixed-variable invariant.
func restartSearch(m *model.Model, state *tabusearch.State, opts Options) {
	incumbent := state.AugmentedIncumbent
	for i, v := range m.Variables() {
		if v.IsFixed() {
			continue
		}
		if incumbent.Found && i < len(incumbent.Values) {
			v.SetValueForce(incumbent.Values[i])
		} else {
			v.SetValueForce((v.LowerBound() + v.UpperBound()) / 2)
		}
	}
	_ = m.Update()

	if opts.Restart.Mode == RestartSmart {
		for _, c := range m.Constraints() {
			c.ResetLocalToGlobal()
		}
	}
}
