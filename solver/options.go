package solver

import (
	"time"

	"github.com/katalvlaran/tabumip/neighborhood"
	"github.com/katalvlaran/tabumip/tabusearch"
)

// RestartMode selects the outer-stagnation recovery policy.
type RestartMode int

const (
	// RestartSimple reinitializes variable values from the augmented
	// incumbent.
	RestartSimple RestartMode = iota
	// RestartSmart does everything RestartSimple does, plus resets every
	// constraint's local penalty back to its global penalty.
	RestartSmart
)

// ChainMoveReduceMode selects how the chain-move buffer truncates to
// capacity.
type ChainMoveReduceMode int

const (
	// ReduceByOverlapRate sorts chain candidates by descending OverlapRate
	// and keeps the top ChainMoveCapacity.
	ReduceByOverlapRate ChainMoveReduceMode = iota
	// ReduceByShuffle keeps a random sample of ChainMoveCapacity candidates.
	ReduceByShuffle
)

// SelectionMode governs whether and how the Selection move generator
// participates: Off force-disables it regardless of the per-kind Enabled
// bitset (Solve.applyNeighborhoodOptions honors this), while every other
// value is a pass-through to the standard generator — Smaller/Larger/
// Independent/UserDefined name candidate-pool strategies the original
// offered that this generator does not yet distinguish, since it has no
// ordering preference of its own over SelectionGroups.
type SelectionMode int

const (
	SelectionOff SelectionMode = iota
	SelectionDefined
	SelectionSmaller
	SelectionLarger
	SelectionIndependent
	SelectionUserDefined
)

// GeneralOptions is the "general" option group.
type GeneralOptions struct {
	IterationMax              int           // outer pass cap
	TimeMax                   time.Duration // wall-clock cap for the whole Solve call
	TargetObjectiveValue      *float64
	Seed                      int64
	EnableFastEvaluation      bool // skip full revalidation after each move (delta-only)
	EnableStoreFeasibleSolutions bool
}

// PenaltyOptions is the "penalty" option group.
type PenaltyOptions struct {
	InitialPenaltyCoefficient float64

	RelaxingRate    float64 // < 1, applied to every local penalty after a feasible pass
	TighteningRate  float64 // >= 1, applied to violated constraints after an infeasible pass
	UpdatingBalance float64 // 0 = uniform tightening, 1 = proportional to violation share

	RelaxingRateMin         float64
	RelaxingRateMax         float64
	RelaxingRateIncreaseRate float64
	RelaxingRateDecreaseRate float64

	InnerStagnationThreshold int // forwarded to tabusearch.Options.InnerStagnationThreshold
	OuterStagnationThreshold int // outer passes without improvement before a restart

	EnableGroupPenaltyCoefficient bool
	EnableShrinkPenaltyCoefficient bool
}

// ParallelOptions is the "parallel" option group.
type ParallelOptions struct {
	Workers                            int
	EnableThreadCountOptimization      bool
	ThreadCountOptimizationDecayFactor float64
}

// PreprocessOptions is the "preprocess" option group.
type PreprocessOptions struct {
	EnablePresolve               bool
	EnableInitialValueCorrection bool

	// EnableSATInitialPoint asks Solve to resolve every detected
	// SelectionGroup's one-hot requirement through a SAT oracle
	// (NewSATInitialPoint) before the search proper begins, rather than
	// leaving each group at presolve's default member. Off by default: it
	// only helps when a model has SelectionGroups, and it adds a solver
	// dependency a caller may not want pulled in for models that have none.
	EnableSATInitialPoint bool
}

// RestartOptions is the "restart" option group.
type RestartOptions struct {
	Mode RestartMode
}

// NeighborhoodOptions is the "neighborhood" option group: per-kind enable
// flags plus the chain-move and selection-mode/screening-mode knobs.
type NeighborhoodOptions struct {
	Enabled [neighborhood.NumMoveKinds]bool

	ChainMoveCapacity   int
	ChainMoveReduceMode ChainMoveReduceMode
	// ChainMoveOverlapRateThreshold discards a composed chain candidate
	// before it ever reaches the pending buffer when its OverlapRate falls
	// below this cutoff (see neighborhood.Neighborhood.SetChainOptions).
	ChainMoveOverlapRateThreshold float64

	SelectionMode SelectionMode
	ScreeningMode tabusearch.ImprovabilityScreeningMode
}

// Options is the flat record supplied once per Solve
// call; TabuSearch carries every field of the tabu_search option group
// verbatim via package tabusearch's own Options type (ScreeningMode is owned
// by Neighborhood and copied across at pass start).
type Options struct {
	General      GeneralOptions
	Penalty      PenaltyOptions
	Parallel     ParallelOptions
	Preprocess   PreprocessOptions
	Restart      RestartOptions
	Neighborhood NeighborhoodOptions
	TabuSearch   tabusearch.Options
}

// DefaultOptions returns the documented defaults for every option group.
func DefaultOptions() Options {
	nbEnabled := [neighborhood.NumMoveKinds]bool{}
	for k := range nbEnabled {
		nbEnabled[k] = true
	}

	return Options{
		General: GeneralOptions{
			IterationMax: 1000,
			TimeMax:      120 * time.Second,
			Seed:         1,
		},
		Penalty: PenaltyOptions{
			InitialPenaltyCoefficient:      1.0,
			RelaxingRate:                   0.9,
			TighteningRate:                 1.2,
			UpdatingBalance:                0.5,
			RelaxingRateMin:                0.5,
			RelaxingRateMax:                0.999,
			RelaxingRateIncreaseRate:       1.01,
			RelaxingRateDecreaseRate:       0.99,
			InnerStagnationThreshold:       200,
			OuterStagnationThreshold:       20,
			EnableGroupPenaltyCoefficient:  true,
			EnableShrinkPenaltyCoefficient: true,
		},
		Parallel: ParallelOptions{
			Workers:                            1,
			EnableThreadCountOptimization:      false,
			ThreadCountOptimizationDecayFactor: 0.9,
		},
		Preprocess: PreprocessOptions{
			EnablePresolve:               true,
			EnableInitialValueCorrection: true,
		},
		Restart: RestartOptions{Mode: RestartSmart},
		Neighborhood: NeighborhoodOptions{
			Enabled:                       nbEnabled,
			ChainMoveCapacity:             1000,
			ChainMoveReduceMode:           ReduceByOverlapRate,
			ChainMoveOverlapRateThreshold: 0,
			SelectionMode:                 SelectionDefined,
			ScreeningMode:                 tabusearch.ScreeningSoft,
		},
		TabuSearch: tabusearch.DefaultOptions(),
	}
}
