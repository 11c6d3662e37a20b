package tabusearch

import "time"

// TabuMode selects how a move's tabu status is derived from its variables.
type TabuMode int

const (
	// All requires every altered variable to be tabu for the move itself to
	// be tabu (a move is free to apply as long as at least one variable is
	// currently movable).
	All TabuMode = iota
	// Any marks the move tabu if at least one altered variable is tabu.
	Any
)

// ImprovabilityScreeningMode selects which accept mask a pass uses when
// asking the neighborhood for candidates.
type ImprovabilityScreeningMode int

const (
	// ScreeningOff accepts every variable regardless of improvability flags.
	ScreeningOff ImprovabilityScreeningMode = iota
	// ScreeningSoft accepts a variable improvable on either axis
	// (objective or feasibility).
	ScreeningSoft
	// ScreeningAggressive alternates between Off and Intensive every
	// iteration.
	ScreeningAggressive
	// ScreeningIntensive requires both axes improvable.
	ScreeningIntensive
	// ScreeningAutomatic is handled by Run exactly like ScreeningIntensive
	// (both axes required); the mode is not derived from recent progress,
	// which is outer-loop state this package does not retain across Runs.
	ScreeningAutomatic
)

// Options configures one call to Run, matching the tabu_search option
// group exactly (all eighteen+ named fields, no field dropped or merged).
type Options struct {
	IterationMax int // inner iteration cap for this pass

	InitialTabuTenure         int
	TabuTenureRandomizeRate   float64
	TabuMode                  TabuMode
	MovePreserveRate          float64
	FrequencyPenaltyCoefficient   float64
	LagrangianPenaltyCoefficient  float64
	PruningRateThreshold          float64

	EnableShuffle              bool
	EnableMoveCurtail          bool
	EnableAutomaticBreak       bool
	EnableTenureAutoAdjust     bool
	EnableIterationAutoAdjust  bool
	EnableInitialModification  bool

	IntensityIncreaseCountThreshold int
	IntensityDecreaseCountThreshold int
	IterationIncreaseRate          float64
	IterationDecreaseRate          float64

	IgnoreTabuIfGlobalIncumbent bool
	NumberOfInitialModification int

	InnerStagnationThreshold int // break condition 9's "no improving move found for N iterations"

	ScreeningMode ImprovabilityScreeningMode
	TimeMax       time.Duration // wall-clock cap for this pass; zero means unbounded
	TimeOffset    time.Duration // already-elapsed time charged against TimeMax

	TargetObjectiveValue    *float64
	HasTargetObjectiveValue bool

	Workers int
}

// DefaultOptions returns the tabu_search group's documented defaults.
func DefaultOptions() Options {
	return Options{
		IterationMax:                  1000,
		InitialTabuTenure:             10,
		TabuTenureRandomizeRate:       0.5,
		TabuMode:                      Any,
		MovePreserveRate:              1.0,
		FrequencyPenaltyCoefficient:   0.0,
		LagrangianPenaltyCoefficient:  0.0,
		PruningRateThreshold:          0.0,
		EnableShuffle:                 true,
		EnableMoveCurtail:             true,
		EnableAutomaticBreak:          true,
		EnableTenureAutoAdjust:        true,
		EnableIterationAutoAdjust:     true,
		EnableInitialModification:     false,
		IntensityIncreaseCountThreshold: 10,
		IntensityDecreaseCountThreshold: 10,
		IterationIncreaseRate:         1.2,
		IterationDecreaseRate:         0.8,
		IgnoreTabuIfGlobalIncumbent:   true,
		NumberOfInitialModification:   0,
		InnerStagnationThreshold:      200,
		ScreeningMode:                 ScreeningSoft,
		Workers:                       1,
	}
}

// Incumbent snapshots one assignment plus its objective for incumbent
// tracking; Values is a defensive copy, never aliasing the model's live
// variable slice.
type Incumbent struct {
	Objective float64
	Values    []int64
	Found     bool
}

// State carries the short-term memory a tabu pass reads and writes across
// its iterations: per-variable last-move timestamps and frequency counts,
// the current (possibly randomized) tenure, and the two incumbent flavors
// the glossary names: augmented and feasible.
type State struct {
	Iteration int

	LastMove  []int // iteration index a variable was last altered at, -1 if never
	Frequency []int

	Tenure int

	// DualEstimates holds an optional per-constraint advisory value (e.g.
	// from an external Lagrange-dual/PDLP subproblem solver a caller wires
	// in; nil means the lagrangian term in the scoring formula contributes 0.
	DualEstimates []float64

	AugmentedIncumbent Incumbent
	FeasibleIncumbent  Incumbent

	consecutiveImprovements   int
	consecutiveNoImprovements int
}

// NewState allocates a State sized for numVariables, with every variable
// initially free (LastMove = -1).
func NewState(numVariables int) *State {
	s := &State{
		LastMove:  make([]int, numVariables),
		Frequency: make([]int, numVariables),
	}
	for i := range s.LastMove {
		s.LastMove[i] = -1
	}
	return s
}

// Outcome reports what one Run call accomplished, for the penalty
// controller to decide its between-pass policy.
type Outcome struct {
	IterationsRun  int
	AcceptedMoves  int
	EndedFeasible  bool
	StoppedByTime  bool
	StoppedByTarget bool
}
