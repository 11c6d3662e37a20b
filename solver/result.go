package solver

import (
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/tabumip/model"
)

// Result is the record Solve returns: the incumbent objective/feasibility,
// per-variable and per-constraint snapshots, and run totals.
type Result struct {
	// RunID stamps this Solve call for traceable result records (e.g. across
	// a batch of seeded reruns); never consumed by the search itself.
	RunID uuid.UUID

	Objective   float64
	IsFeasible  bool
	TotalViolation float64

	Values             map[string]int64
	ConstraintViolations map[string]float64

	IterationsTotal int
	TimeTotal       time.Duration

	// AcceptTimestamps / FeasibleIncumbents are populated only when
	// EnableStoreFeasibleSolutions is set; both stay nil otherwise so a
	// default Solve call carries no extra memory cost.
	AcceptTimestamps  []int
	FeasibleIncumbents []FeasibleSnapshot
}

// FeasibleSnapshot captures one feasible incumbent discovered mid-search,
// for callers tracking the progression of solutions rather than only the
// final one.
type FeasibleSnapshot struct {
	Iteration int
	Objective float64
	Values    map[string]int64
}

// buildResult snapshots m's current quiescent state into a Result.
func buildResult(m *model.Model, runID uuid.UUID, iterations int, elapsed time.Duration) Result {
	values := make(map[string]int64, m.NumVariables())
	for _, v := range m.Variables() {
		values[v.Name] = v.Value()
	}
	violations := make(map[string]float64, m.NumConstraints())
	for _, c := range m.Constraints() {
		violations[c.Name] = c.Violation()
	}

	var objective float64
	if o := m.Objective(); o != nil {
		objective = o.Value()
	}

	return Result{
		RunID:                runID,
		Objective:            objective,
		IsFeasible:           m.IsFeasible(),
		TotalViolation:       m.TotalViolation(),
		Values:               values,
		ConstraintViolations: violations,
		IterationsTotal:      iterations,
		TimeTotal:            elapsed,
	}
}
