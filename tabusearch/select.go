package tabusearch

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/neighborhood"
)

// isBetterScore reports whether candidate dominates incumbent under sense:
// lower is better for Min, higher is better for Max.
func isBetterScore(sense model.Sense, candidate, incumbent float64) bool {
	if sense == model.Max {
		return candidate > incumbent
	}
	return candidate < incumbent
}

// variableTabu reports whether variable vi is still resting: it was moved
// within the last Tenure iterations.
func variableTabu(state *State, vi int) bool {
	if vi < 0 || vi >= len(state.LastMove) {
		return false
	}
	last := state.LastMove[vi]
	if last < 0 {
		return false
	}
	return state.Iteration-last < state.Tenure
}

// moveTabu derives a move's tabu status from its altered variables per
// opts.TabuMode: All requires every variable tabu, Any requires at least
// one.
func moveTabu(mv *neighborhood.Move, state *State, mode TabuMode) bool {
	if len(mv.Alterations) == 0 {
		return false
	}
	switch mode {
	case All:
		for _, a := range mv.Alterations {
			if !variableTabu(state, a.VarIndex) {
				return false
			}
		}
		return true
	default: // Any
		for _, a := range mv.Alterations {
			if variableTabu(state, a.VarIndex) {
				return true
			}
		}
		return false
	}
}

// selectMove implements loop steps 4-6: find the minimum/maximum-score
// candidate M*, accept it outright unless it is tabu, override the tabu
// status when it strictly improves the global (augmented) incumbent and
// opts.IgnoreTabuIfGlobalIncumbent is set, and otherwise fall back to the
// best non-tabu candidate, and when every candidate is tabu, to the
// least-tabu candidate that improves the augmented incumbent. Returns
// ok=false when none of these applies.
func selectMove(m *model.Model, candidates []*neighborhood.Move, scores []float64, state *State, opts Options) (*neighborhood.Move, float64, bool) {
	sense := m.Sense()

	bestIdx := 0
	for i := 1; i < len(candidates); i++ {
		if isBetterScore(sense, scores[i], scores[bestIdx]) {
			bestIdx = i
		}
	}

	best := candidates[bestIdx]
	if !moveTabu(best, state, opts.TabuMode) {
		return best, scores[bestIdx], true
	}

	if opts.IgnoreTabuIfGlobalIncumbent &&
		(!state.AugmentedIncumbent.Found || isBetterScore(sense, scores[bestIdx], state.AugmentedIncumbent.Objective)) {
		return best, scores[bestIdx], true
	}

	bestNonTabuIdx := -1
	for i, mv := range candidates {
		if moveTabu(mv, state, opts.TabuMode) {
			continue
		}
		if bestNonTabuIdx == -1 || isBetterScore(sense, scores[i], scores[bestNonTabuIdx]) {
			bestNonTabuIdx = i
		}
	}
	if bestNonTabuIdx != -1 {
		return candidates[bestNonTabuIdx], scores[bestNonTabuIdx], true
	}

	// Every candidate is tabu: accept the least-tabu improving move (the
	// tabu candidate whose most-recently-moved variable rested longest)
	// if it still improves the augmented incumbent, per loop step 6's
	// "accept the least-tabu improving move or break".
	leastTabuIdx := -1
	leastTabuAge := -1
	for i, mv := range candidates {
		if !isBetterScore(sense, scores[i], state.AugmentedIncumbent.Objective) {
			continue
		}
		age := minRestAge(mv, state)
		if age > leastTabuAge {
			leastTabuAge = age
			leastTabuIdx = i
		}
	}
	if leastTabuIdx != -1 {
		return candidates[leastTabuIdx], scores[leastTabuIdx], true
	}
	return nil, 0, false
}

// minRestAge returns the smallest (iteration - lastMove) among mv's altered
// variables, i.e. how close to eligible the most recently moved one is;
// used only to rank among tabu candidates when nothing non-tabu survives.
func minRestAge(mv *neighborhood.Move, state *State) int {
	age := -1
	for _, a := range mv.Alterations {
		if a.VarIndex < 0 || a.VarIndex >= len(state.LastMove) {
			continue
		}
		last := state.LastMove[a.VarIndex]
		if last < 0 {
			continue
		}
		d := state.Iteration - last
		if age == -1 || d < age {
			age = d
		}
	}
	if age == -1 {
		return 0
	}
	return age
}

// applyChosenMove commits mv's alterations atomically via model.ApplyMove
// and resynchronizes every touched SelectionGroup's SelectedVar pointer
// (model.ApplyMove only writes variable values; the group's pointer is this
// package's responsibility to keep consistent with the model invariant
// "the selected-pointer agrees with that member").
func applyChosenMove(m *model.Model, mv *neighborhood.Move) error {
	if err := m.ApplyMove(mv.Alterations, mv.RelatedConstraints); err != nil {
		return err
	}
	touchedGroups := make(map[int]bool)
	for _, a := range mv.Alterations {
		v := m.Variable(a.VarIndex)
		if gi := v.SelectionGroupIndex(); gi >= 0 {
			touchedGroups[gi] = true
		}
	}
	for gi := range touchedGroups {
		g := m.Selection(gi)
		for pos, vi := range g.Members {
			if m.Variable(vi).Value() == 1 {
				g.Select(pos)
				break
			}
		}
	}
	return nil
}

// markApplied stamps every altered variable's last-move timestamp and bumps
// its frequency counter: the short-term and long-term memory the search
// keeps per variable.
func markApplied(state *State, mv *neighborhood.Move, iter int) {
	for _, a := range mv.Alterations {
		if a.VarIndex >= len(state.LastMove) {
			continue
		}
		state.LastMove[a.VarIndex] = iter
		state.Frequency[a.VarIndex]++
	}
}

// augmentedObjective returns the model's current quiescent augmented
// objective: obj + Σ(local_penalty·violation) over every enabled
// constraint.
func augmentedObjective(m *model.Model) float64 {
	var obj float64
	if o := m.Objective(); o != nil {
		obj = o.Value()
	}
	return obj + basePenalty(m)
}

// snapshotIncumbent captures the model's current variable values into an
// Incumbent, defensively copying so later mutation never aliases it.
func snapshotIncumbent(m *model.Model, objective float64) Incumbent {
	values := make([]int64, m.NumVariables())
	for i, v := range m.Variables() {
		values[i] = v.Value()
	}
	return Incumbent{Objective: objective, Values: values, Found: true}
}

// seedIncumbents ensures both incumbent flavors reflect at least the pass's
// starting assignment, so a pass that accepts nothing (for example one whose
// time budget is already exhausted) still reports a valid incumbent.
func seedIncumbents(m *model.Model, state *State) {
	sense := m.Sense()
	aug := augmentedObjective(m)
	if !state.AugmentedIncumbent.Found || isBetterScore(sense, aug, state.AugmentedIncumbent.Objective) {
		state.AugmentedIncumbent = snapshotIncumbent(m, aug)
	}
	if m.IsFeasible() && m.Objective() != nil {
		obj := m.Objective().Value()
		if !state.FeasibleIncumbent.Found || isBetterScore(sense, obj, state.FeasibleIncumbent.Objective) {
			state.FeasibleIncumbent = snapshotIncumbent(m, obj)
		}
	}
}

// updateIncumbents re-evaluates both incumbent flavors after a move commit
// and reports whether either one improved, driving the consecutive
// improvement/no-improvement counters loop step 8 reads.
func updateIncumbents(m *model.Model, state *State, _ float64) bool {
	sense := m.Sense()
	improved := false

	aug := augmentedObjective(m)
	if !state.AugmentedIncumbent.Found || isBetterScore(sense, aug, state.AugmentedIncumbent.Objective) {
		state.AugmentedIncumbent = snapshotIncumbent(m, aug)
		improved = true
	}
	if m.IsFeasible() && m.Objective() != nil {
		obj := m.Objective().Value()
		if !state.FeasibleIncumbent.Found || isBetterScore(sense, obj, state.FeasibleIncumbent.Objective) {
			state.FeasibleIncumbent = snapshotIncumbent(m, obj)
			improved = true
		}
	}
	return improved
}

// recomputeImprovability refreshes every mutable variable's
// IsObjectiveImprovable/IsFeasibilityImprovable flags from the model's
// current quiescent state, consumed by the next iteration's AcceptMask.
// Objective-improvable: the variable has bound margin in the direction its
// objective coefficient favors. Feasibility-improvable: the variable
// participates in at least one currently violated constraint.
func recomputeImprovability(m *model.Model) {
	sense := m.Sense()
	for _, v := range m.Variables() {
		if v.IsFixed() {
			v.SetImprovability(false, false)
			continue
		}

		objImprovable := false
		if coef := v.ObjectiveSensitivity(); coef != 0 {
			wantDecrease := coef > 0
			if sense == model.Max {
				wantDecrease = !wantDecrease
			}
			if wantDecrease && v.HasLowerBoundMargin() {
				objImprovable = true
			}
			if !wantDecrease && v.HasUpperBoundMargin() {
				objImprovable = true
			}
		}

		feasImprovable := false
		for _, ci := range v.RelatedConstraints() {
			c := m.Constraint(ci)
			if c.IsEnabled() && c.Violation() > 0 {
				feasImprovable = true
				break
			}
		}

		v.SetImprovability(objImprovable, feasImprovable)
	}
}

// adjustIterationBudget implements loop step 8's iteration-budget control:
// enough consecutive improvements widen the inner-iteration cap by
// IterationIncreaseRate; enough consecutive non-improvements shrink it by
// IterationDecreaseRate, never below the configured floor of 1.
func adjustIterationBudget(current int, opts Options, state *State) int {
	if opts.IntensityIncreaseCountThreshold > 0 && state.consecutiveImprovements >= opts.IntensityIncreaseCountThreshold {
		next := int(float64(current) * opts.IterationIncreaseRate)
		if next < 1 {
			next = 1
		}
		return next
	}
	if opts.IntensityDecreaseCountThreshold > 0 && state.consecutiveNoImprovements >= opts.IntensityDecreaseCountThreshold {
		next := int(float64(current) * opts.IterationDecreaseRate)
		if next < 1 {
			next = 1
		}
		return next
	}
	return current
}

// adjustTenureFromState implements loop step 8's tenure shift: one step
// toward widening after a stagnation streak, one step toward narrowing
// after an improvement streak, staying within adjustTenure's band of
// half to twice InitialTabuTenure.
func adjustTenureFromState(state *State, opts Options, mutableCount int) int {
	direction := 0
	if opts.IntensityDecreaseCountThreshold > 0 && state.consecutiveNoImprovements >= opts.IntensityDecreaseCountThreshold {
		direction = 1
	} else if opts.IntensityIncreaseCountThreshold > 0 && state.consecutiveImprovements >= opts.IntensityIncreaseCountThreshold {
		direction = -1
	}
	if direction == 0 {
		return state.Tenure
	}
	return adjustTenure(state.Tenure, opts.InitialTabuTenure, direction, mutableCount)
}

// applyInitialModification performs opts.NumberOfInitialModification random
// univariable moves before the pass proper begins, a diversification kick
// driven by the "is_enabled_initial_modification" switch; moves are
// drawn from the Off-mask (unfiltered) candidate pool generated with a mask
// that accepts everything, applied without tabu/score consideration since
// they happen before the pass's own bookkeeping starts.
func applyInitialModification(m *model.Model, nb *neighborhood.Neighborhood, state *State, opts Options, r *rand.Rand) {
	for i := 0; i < opts.NumberOfInitialModification; i++ {
		candidates := nb.UpdateMoves(neighborhood.AcceptMask{}, true, rng.Derive(r, uint64(i)), 1)
		var univariable []*neighborhood.Move
		for _, mv := range candidates {
			if mv.IsUnivariable {
				univariable = append(univariable, mv)
			}
		}
		if len(univariable) == 0 {
			continue
		}
		pick := univariable[r.Intn(len(univariable))]
		_ = applyChosenMove(m, pick)
		markApplied(state, pick, -1)
	}
}
