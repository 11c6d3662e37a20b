package model

// Value returns the variable's current assignment.
func (v *Variable) Value() int64 { return v.value }

// LowerBound / UpperBound return the variable's box bounds.
func (v *Variable) LowerBound() int64 { return v.lo }
func (v *Variable) UpperBound() int64 { return v.hi }

// IsFixed reports whether the variable is pinned to a single value.
func (v *Variable) IsFixed() bool { return v.fixed }

// Kind reports Binary/Integer/Selection.
func (v *Variable) Kind() VariableKind { return v.kind }

// HasLowerBoundMargin / HasUpperBoundMargin report whether the variable can
// still move toward its lower/upper bound (the bound-margin invariant).
func (v *Variable) HasLowerBoundMargin() bool { return v.hasLowerMargin }
func (v *Variable) HasUpperBoundMargin() bool { return v.hasUpperMargin }

// IsObjectiveImprovable / IsFeasibilityImprovable are per-pass flags set by
// the search and consumed by move filters to short-circuit generation.
func (v *Variable) IsObjectiveImprovable() bool   { return v.isObjectiveImprovable }
func (v *Variable) IsFeasibilityImprovable() bool { return v.isFeasibilityImprovable }

// SetImprovability is called once per pass by the tabu-search core.
func (v *Variable) SetImprovability(objective, feasibility bool) {
	v.isObjectiveImprovable = objective
	v.isFeasibilityImprovable = feasibility
}

// SelectionGroupIndex returns the owning SelectionGroup's index, or -1 if
// the variable does not belong to one.
func (v *Variable) SelectionGroupIndex() int { return v.selectionGroup }

// RelatedConstraints returns the indices of constraints referencing this
// variable, populated by Model.Setup.
func (v *Variable) RelatedConstraints() []int { return v.relatedConstraints }

// RelatedMonicConstraints returns the subset of related constraints that
// presolve classified as one of the "monic" selection-like templates
// (SetPartitioning, SetPacking, SetCovering, Cardinality,
// InvariantKnapsack); populated by Model.RecomputeMonicConstraints, which
// must run after categorization.
func (v *Variable) RelatedMonicConstraints() []int { return v.relatedMonicConstraints }

// ObjectiveSensitivity returns this variable's coefficient in the objective
// (0 if the objective does not reference it, or is unset).
func (v *Variable) ObjectiveSensitivity() float64 { return v.objectiveSensitivity }

// ConstraintSensitivity returns this variable's coefficient within
// constraint index ci (0 if unrelated or the constraint is nonlinear).
func (v *Variable) ConstraintSensitivity(ci int) float64 {
	return v.constraintSensitivity[ci]
}

// updateMargin recomputes the cached bound-margin flags from the current
// value; called on every value mutation.
func (v *Variable) updateMargin() {
	v.hasLowerMargin = v.value > v.lo
	v.hasUpperMargin = v.value < v.hi
}

// SetValueForce assigns a_value unconditionally (used by presolve fixing and
// initial-value correction, which operate before/outside the move-filter
// guarantees the search relies on).
func (v *Variable) SetValueForce(value int64) {
	v.value = value
	v.updateMargin()
}

// SetValue assigns value, honoring the fixed-variable invariant: if fixed
// and value differs from the current (fixed) value, returns
// ErrFixedReassignment. Search code never triggers this path because move
// filters exclude fixed variables before constructing alterations.
func (v *Variable) SetValue(value int64) error {
	if v.fixed && v.value != value {
		return newLocatedError(ErrFixedReassignment, "fixed variable reassignment")
	}
	v.value = value
	v.updateMargin()
	return nil
}

// Fix pins the variable to its current value.
func (v *Variable) Fix() { v.fixed = true }

// FixAt pins the variable to value, overriding the current value.
func (v *Variable) FixAt(value int64) {
	v.value = value
	v.fixed = true
	v.updateMargin()
}

// Unfix releases a fixed variable back to mutable.
func (v *Variable) Unfix() { v.fixed = false }

// SetBound rewrites the variable's box bounds, re-deriving Kind (Binary iff
// {lo,hi} subset {0,1}) and the bound-margin flags. Returns ErrBoundInverted
// if lo > hi.
func (v *Variable) SetBound(lo, hi int64) error {
	if lo > hi {
		return newLocatedError(ErrBoundInverted, "lower bound exceeds upper bound")
	}
	v.lo, v.hi = lo, hi
	v.setupKind()
	v.updateMargin()
	return nil
}

// setupKind derives Binary vs Integer from the current bounds; Selection is
// only ever set by assignToSelectionGroup (presolve), never overridden here.
func (v *Variable) setupKind() {
	if v.kind == Selection {
		return
	}
	if (v.lo == 0 && v.hi == 1) || (v.lo == 0 && v.hi == 0) || (v.lo == 1 && v.hi == 1) {
		v.kind = Binary
	} else {
		v.kind = Integer
	}
}

// assignToSelectionGroup marks the variable as belonging to selection group
// gi; only presolve's DetectSelections calls this.
func (v *Variable) assignToSelectionGroup(gi int) {
	v.selectionGroup = gi
	v.kind = Selection
}

// evaluate returns the variable's value as a plain expression evaluation (a
// variable is its own trivial expression: value = 1*v + 0).
func (v *Variable) evaluate() float64 { return float64(v.value) }

// evaluateMove returns the value v would hold under alterations, without
// mutating v: the first alteration naming v.ID wins, matching the source's
// "first match in the move's alteration list" semantics.
func (v *Variable) evaluateMove(alterations []Alteration) int64 {
	for _, a := range alterations {
		if a.VarIndex == v.ID {
			return a.Target
		}
	}
	return v.value
}
