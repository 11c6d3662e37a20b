package solver

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/neighborhood"
	"github.com/katalvlaran/tabumip/presolve"
	"github.com/katalvlaran/tabumip/tabusearch"
)

// Solve is the core's single entrypoint: given a fully-built
// model (CreateVariable/CreateConstraint/SetObjective already called), it
// runs presolve, wires the neighborhood, and drives the penalty-augmented
// tabu-search outer loop until any of the configured stop conditions fires,
// returning the best feasible incumbent found (restored into m), or m's
// final assignment when no feasible one was found.
//
// Solve calls m.Setup itself, before presolve (presolve needs Setup's
// reverse graph), so the order is Setup, initial-value correction,
// presolve.Run, then the search proper — presolve.Run re-evaluates the
// model internally once it is done.
func Solve(m *model.Model, opts Options) (Result, error) {
	runID := uuid.New()
	start := time.Now()

	if err := m.Setup(); err != nil {
		return Result{}, err
	}

	if opts.Preprocess.EnableInitialValueCorrection {
		correctInitialValues(m)
	}

	if opts.Preprocess.EnablePresolve {
		if _, err := presolve.Run(m); err != nil {
			return Result{}, err
		}
	} else if err := m.Update(); err != nil {
		return Result{}, err
	}

	if opts.Preprocess.EnableSATInitialPoint {
		proposal, err := NewSATInitialPoint().Propose(m)
		if err != nil {
			return Result{}, err
		}
		if err := applyInitialPoint(m, proposal); err != nil {
			return Result{}, err
		}
	}

	nb := neighborhood.New(m)
	applyNeighborhoodOptions(nb, opts)
	if err := nb.Setup(); err != nil {
		return Result{}, err
	}

	initializePenalties(m, opts)

	state := tabusearch.NewState(m.NumVariables())
	cs := newControllerState(opts)
	seed := rand.New(rand.NewSource(opts.General.Seed))

	if opts.General.TimeMax == 0 {
		// time_max=0 returns the initial (possibly corrected) assignment
		// without running any pass.
		result := buildResult(m, runID, 0, time.Since(start))
		return result, nil
	}

	iterationsTotal := 0
	var feasibleSnapshots []FeasibleSnapshot
	var acceptTimestamps []int

	for outer := 0; outer < opts.General.IterationMax; outer++ {
		elapsed := time.Since(start)
		if opts.General.TimeMax > 0 && elapsed >= opts.General.TimeMax {
			break
		}
		if reachedTarget(m, opts) {
			break
		}

		tsOpts := opts.TabuSearch
		tsOpts.ScreeningMode = opts.Neighborhood.ScreeningMode
		tsOpts.InnerStagnationThreshold = opts.Penalty.InnerStagnationThreshold
		tsOpts.Workers = opts.Parallel.Workers
		tsOpts.TimeMax = opts.General.TimeMax
		tsOpts.TimeOffset = elapsed
		if opts.General.TargetObjectiveValue != nil {
			tsOpts.TargetObjectiveValue = opts.General.TargetObjectiveValue
			tsOpts.HasTargetObjectiveValue = true
		}

		outcome, err := tabusearch.Run(m, nb, state, tsOpts, rng.Derive(seed, uint64(outer)))
		if err != nil {
			return Result{}, err
		}
		iterationsTotal += outcome.IterationsRun

		if opts.General.EnableStoreFeasibleSolutions && state.FeasibleIncumbent.Found {
			acceptTimestamps = append(acceptTimestamps, iterationsTotal)
			feasibleSnapshots = append(feasibleSnapshots, snapshotFeasible(m, state, iterationsTotal))
		}

		cs.afterPass(m, state, opts, outcome.EndedFeasible)

		if outcome.StoppedByTarget {
			break
		}
	}

	if inc := state.FeasibleIncumbent; inc.Found {
		for i, v := range m.Variables() {
			v.SetValueForce(inc.Values[i])
		}
		if err := m.Update(); err != nil {
			return Result{}, err
		}
		for _, g := range m.Selections() {
			for pos, vi := range g.Members {
				if m.Variable(vi).Value() == 1 {
					g.Select(pos)
				}
			}
		}
	}

	result := buildResult(m, runID, iterationsTotal, time.Since(start))
	result.AcceptTimestamps = acceptTimestamps
	result.FeasibleIncumbents = feasibleSnapshots
	return result, nil
}

// reachedTarget mirrors tabusearch's own target check at the outer-loop
// level, so a target reached between passes (rather than mid-pass) still
// stops promptly.
func reachedTarget(m *model.Model, opts Options) bool {
	if opts.General.TargetObjectiveValue == nil || m.Objective() == nil {
		return false
	}
	target := *opts.General.TargetObjectiveValue
	obj := m.Objective().Value()
	if m.Sense() == model.Max {
		return obj >= target
	}
	return obj <= target
}

// correctInitialValues snaps every variable's initial value into its box
// bounds (preprocess.is_enabled_initial_value_correction), leaving
// already-valid values untouched.
func correctInitialValues(m *model.Model) {
	for _, v := range m.Variables() {
		val := v.Value()
		if val < v.LowerBound() {
			v.SetValueForce(v.LowerBound())
		} else if val > v.UpperBound() {
			v.SetValueForce(v.UpperBound())
		}
	}
}

// applyNeighborhoodOptions wires the per-kind enable flags and chain-move
// buffer configuration onto nb before its one-time Setup call.
func applyNeighborhoodOptions(nb *neighborhood.Neighborhood, opts Options) {
	for k := 0; k < neighborhood.NumMoveKinds; k++ {
		if opts.Neighborhood.Enabled[k] {
			nb.Enable(neighborhood.MoveKind(k))
		} else {
			nb.Disable(neighborhood.MoveKind(k))
		}
	}
	if opts.Neighborhood.SelectionMode == SelectionOff {
		nb.Disable(neighborhood.Selection)
	}
	nb.SetChainOptions(opts.Neighborhood.ChainMoveCapacity, opts.Neighborhood.ChainMoveReduceMode == ReduceByShuffle, opts.Neighborhood.ChainMoveOverlapRateThreshold)
}

// snapshotFeasible captures the feasible incumbent (its values and
// objective) for the optional result history.
func snapshotFeasible(m *model.Model, state *tabusearch.State, iteration int) FeasibleSnapshot {
	values := make(map[string]int64, m.NumVariables())
	for i, v := range m.Variables() {
		values[v.Name] = state.FeasibleIncumbent.Values[i]
	}
	return FeasibleSnapshot{Iteration: iteration, Objective: state.FeasibleIncumbent.Objective, Values: values}
}
