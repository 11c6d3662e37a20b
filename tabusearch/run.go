package tabusearch

import (
	"math/rand"
	"time"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/internal/workerpool"
	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/neighborhood"
)

// Run executes one tabu pass over m/nb, mutating state in place and
// returning the pass's Outcome. seed seeds every derived RNG stream the
// pass uses (candidate shuffling, tenure randomization); passing the same
// seed across two Runs with identical m/nb/state/opts reproduces the same
// trajectory, the determinism guarantee every RNG consumer in this package
// relies on.
func Run(m *model.Model, nb *neighborhood.Neighborhood, state *State, opts Options, seed *rand.Rand) (Outcome, error) {
	var outcome Outcome

	mutableCount := 0
	for _, v := range m.Variables() {
		if !v.IsFixed() {
			mutableCount++
		}
	}

	tenureRNG := rng.Derive(seed, 1)
	state.Tenure = randomizeTenure(opts.InitialTabuTenure, opts.TabuTenureRandomizeRate, mutableCount, tenureRNG)

	if opts.EnableInitialModification {
		applyInitialModification(m, nb, state, opts, rng.Derive(seed, 2))
	}

	recomputeImprovability(m)
	seedIncumbents(m, state)

	start := time.Now()
	iterationMax := opts.IterationMax
	noImproveStreak := 0
	appliedSpecial := make(map[uint64]bool)

	iter := 0
	for ; iter < iterationMax; iter++ {
		if opts.TimeMax > 0 && time.Since(start)+opts.TimeOffset >= opts.TimeMax {
			outcome.StoppedByTime = true
			break
		}
		if opts.HasTargetObjectiveValue && targetReached(m, opts) {
			outcome.StoppedByTarget = true
			break
		}

		state.Iteration = iter
		iterRNG := rng.Derive(seed, uint64(iter)+1000)
		mask := acceptMaskFor(opts.ScreeningMode, iter)

		candidates := nb.UpdateMoves(mask, opts.EnableShuffle, iterRNG, opts.Workers)
		candidates = filterAvailable(candidates, appliedSpecial)
		if len(candidates) == 0 {
			noImproveStreak++
			if opts.EnableAutomaticBreak && noImproveStreak >= opts.InnerStagnationThreshold {
				break
			}
			continue
		}

		basePen := basePenalty(m)
		scores := make([]float64, len(candidates))
		workers := opts.Workers
		if workers < 1 {
			workers = 1
		}
		workerpool.Run(len(candidates), workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				scores[i] = scoreOf(m, candidates[i], state, opts, basePen)
			}
		})

		chosen, chosenScore, ok := selectMove(m, candidates, scores, state, opts)
		if !ok {
			noImproveStreak++
			if opts.EnableAutomaticBreak && noImproveStreak >= opts.InnerStagnationThreshold {
				break
			}
			continue
		}

		if err := applyChosenMove(m, chosen); err != nil {
			return outcome, err
		}
		markApplied(state, chosen, iter)
		if chosen.IsSpecial {
			appliedSpecial[chosen.Hash] = true
		}
		nb.RegisterAcceptedMove(chosen, rng.Derive(seed, uint64(iter)+2000))
		outcome.AcceptedMoves++

		improved := updateIncumbents(m, state, chosenScore)
		if improved {
			noImproveStreak = 0
			state.consecutiveImprovements++
			state.consecutiveNoImprovements = 0
		} else {
			noImproveStreak++
			state.consecutiveNoImprovements++
			state.consecutiveImprovements = 0
		}

		if opts.EnableIterationAutoAdjust {
			iterationMax = adjustIterationBudget(iterationMax, opts, state)
		}
		if opts.EnableTenureAutoAdjust {
			state.Tenure = adjustTenureFromState(state, opts, mutableCount)
		}

		recomputeImprovability(m)
	}

	outcome.IterationsRun = iter
	outcome.EndedFeasible = m.IsFeasible()
	return outcome, nil
}

// acceptMaskFor derives this iteration's AcceptMask from the configured
// ImprovabilityScreeningMode. Aggressive alternates Off/Intensive every
// other iteration; Automatic falls back to requiring both axes improvable
// (the outer penalty controller, which retains cross-pass progress
// history, is better placed to drive a true automatic policy, but this
// package owns no state across Run calls to do so itself).
func acceptMaskFor(mode ImprovabilityScreeningMode, iter int) neighborhood.AcceptMask {
	soft := neighborhood.AcceptMask{RequireObjectiveImprovable: true, RequireFeasibilityImprovable: true}
	intensive := neighborhood.AcceptMask{RequireObjectiveImprovable: true, RequireFeasibilityImprovable: true, RequireBoth: true}
	switch mode {
	case ScreeningOff:
		return neighborhood.AcceptMask{}
	case ScreeningAggressive:
		if iter%2 == 0 {
			return neighborhood.AcceptMask{}
		}
		return intensive
	case ScreeningSoft:
		return soft
	default: // ScreeningIntensive, ScreeningAutomatic
		return intensive
	}
}

// filterAvailable drops candidates the move's own IsAvailable flag rejects
// plus special (Chain/UserDefined) moves already applied this pass: such a
// move is marked unavailable once it has been applied once in the current
// tabu pass.
func filterAvailable(candidates []*neighborhood.Move, appliedSpecial map[uint64]bool) []*neighborhood.Move {
	out := candidates[:0]
	for _, mv := range candidates {
		if !mv.IsAvailable {
			continue
		}
		if mv.IsSpecial && appliedSpecial[mv.Hash] {
			continue
		}
		out = append(out, mv)
	}
	return out
}

// targetReached reports whether the model's current (committed, quiescent)
// objective already meets opts.TargetObjectiveValue under the model's
// optimization sense.
func targetReached(m *model.Model, opts Options) bool {
	if m.Objective() == nil || opts.TargetObjectiveValue == nil {
		return false
	}
	target := *opts.TargetObjectiveValue
	obj := m.Objective().Value()
	if m.Sense() == model.Max {
		return obj >= target
	}
	return obj <= target
}
