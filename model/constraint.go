package model

import "math"

// Sense/Expression/Func accessors ----------------------------------------

// IsEnabled reports whether the constraint participates in evaluation
// (presolve may disable redundant constraints).
func (c *Constraint) IsEnabled() bool { return c.enabled }

// SetEnabled flips the enabled flag; used by presolve's redundancy removal.
func (c *Constraint) SetEnabled(enabled bool) { c.enabled = enabled }

// Value returns the cached signed residual (lhs).
func (c *Constraint) Value() float64 { return c.constraintValue }

// Violation returns the cached non-negative infeasibility magnitude.
func (c *Constraint) Violation() float64 { return c.violationValue }

// Classification returns the structural template presolve assigned, or
// Unclassified before categorization has run.
func (c *Constraint) Classification() ConstraintType { return c.classification }

// SetClassification is called once by presolve after categorization.
func (c *Constraint) SetClassification(t ConstraintType) { c.classification = t }

// LocalPenalty / GlobalPenalty return the constraint's two penalty
// coefficients (this outer iteration's, and the best-known).
func (c *Constraint) LocalPenalty() float64  { return c.localPenalty }
func (c *Constraint) GlobalPenalty() float64 { return c.globalPenalty }

// SetLocalPenalty / SetGlobalPenalty are written only between tabu passes by
// the penalty controller, never during evaluation.
func (c *Constraint) SetLocalPenalty(p float64)  { c.localPenalty = p }
func (c *Constraint) SetGlobalPenalty(p float64) { c.globalPenalty = p }

// ResetLocalToGlobal reinitializes local to global, as restart policy
// "Smart" requires.
func (c *Constraint) ResetLocalToGlobal() { c.localPenalty = c.globalPenalty }

// SetBinomialPartners records the two variable indices a two-variable
// equality/inequality pivots on, for the binomial move-generator family.
func (c *Constraint) SetBinomialPartners(a, b int) {
	c.binomialPartners = [2]int{a, b}
	c.hasBinomial = true
}

// BinomialPartners returns the recorded pair and whether one was set.
func (c *Constraint) BinomialPartners() (int, int, bool) {
	return c.binomialPartners[0], c.binomialPartners[1], c.hasBinomial
}

// SetTrinomialPartners records the three variable indices a recognized
// 3-variable template pivots on.
func (c *Constraint) SetTrinomialPartners(a, b, d int) {
	c.trinomialPartners = [3]int{a, b, d}
	c.hasTrinomial = true
}

// TrinomialPartners returns the recorded triple and whether one was set.
func (c *Constraint) TrinomialPartners() (int, int, int, bool) {
	return c.trinomialPartners[0], c.trinomialPartners[1], c.trinomialPartners[2], c.hasTrinomial
}

// SetInvariantCoefficient / InvariantCoefficient store the a/b coefficient
// ratio of a binomial equality, recorded by presolve.Classify. The
// binomial-invariant move generators compute their own ratio from the
// variables' sensitivities and do not read this value.
func (c *Constraint) SetInvariantCoefficient(v float64) { c.invariantCoefficient = v }
func (c *Constraint) InvariantCoefficient() float64     { return c.invariantCoefficient }

// violationFor computes the non-negative infeasibility magnitude for a
// signed residual under this constraint's sense:
//
//	Less:    max(0, lhs)
//	Equal:   |lhs|
//	Greater: max(0, -lhs)
func violationFor(sense ConstraintSense, lhs float64) float64 {
	switch sense {
	case Less:
		return math.Max(0, lhs)
	case Greater:
		return math.Max(0, -lhs)
	default: // Equal
		return math.Abs(lhs)
	}
}

// evaluate recomputes and caches constraintValue/violationValue from
// variables' current committed values.
func (c *Constraint) evaluate(variables []*Variable) {
	var lhs float64
	if c.IsLinear {
		lhs = c.Expression.evaluate(variables)
	} else {
		current := make([]int64, len(variables))
		for i, v := range variables {
			current[i] = v.value
		}
		lhs = c.Func(current, nil)
	}
	c.constraintValue = lhs
	c.violationValue = violationFor(c.Sense, lhs)
}

// evaluateMove returns the (constraintValue, violationValue) this constraint
// would have under alterations, without mutating cached state.
func (c *Constraint) evaluateMove(variables []*Variable, alterations []Alteration) (float64, float64) {
	var lhs float64
	if c.IsLinear {
		lhs = c.Expression.evaluateMove(variables, alterations)
	} else {
		current := make([]int64, len(variables))
		for i, v := range variables {
			current[i] = v.value
		}
		lhs = c.Func(current, alterations)
	}
	return lhs, violationFor(c.Sense, lhs)
}
