package presolve

// BoundTightenMagnitudeCap bounds the magnitude of any bound derived by
// per-variable tightening, avoiding exploding bounds from near-zero
// coefficients (ground: presolver.h's BOUND_LIMIT = 100000).
const BoundTightenMagnitudeCap = 100000

// Report summarizes one Run call for observability — the distilled
// requirements this package follows do not name a report type, but the
// original's model_summary.h plays exactly this role of surfacing
// aggregate presolve statistics.
type Report struct {
	FixedVariables      int
	RemovedConstraints  int
	TightenedBounds     int
	DetectedSelections  int
	Rounds              int
}
