package model

import "sort"

// Setup builds the reverse dependency graph (for each variable, the set of
// constraints whose expression references it), caches each variable's
// objective sensitivity, and evaluates every expression/constraint once from
// the current variable values. Must be called after all CreateVariable/
// CreateConstraint/SetObjective calls and before any incremental update.
func (m *Model) Setup() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	related := make([][]int, len(m.variables))
	for _, v := range m.variables {
		v.relatedConstraints = nil
		v.constraintSensitivity = make(map[int]float64)
		v.objectiveSensitivity = 0
	}

	for _, c := range m.constraints {
		if c.IsLinear {
			for vi, coef := range c.Expression.Sensitivity {
				if vi < 0 || vi >= len(m.variables) {
					return newLocatedError(ErrUnknownVariable, "constraint references unknown variable")
				}
				related[vi] = append(related[vi], c.ID)
				m.variables[vi].constraintSensitivity[c.ID] = coef
			}
		} else {
			for _, vi := range c.touches {
				if vi < 0 || vi >= len(m.variables) {
					return newLocatedError(ErrUnknownVariable, "nonlinear constraint declares unknown variable")
				}
				related[vi] = append(related[vi], c.ID)
			}
		}
	}

	offsets := make([]int, len(m.variables)+1)
	var neighbors []int
	for vi, v := range m.variables {
		sort.Ints(related[vi])
		related[vi] = dedupeSortedInts(related[vi])
		v.relatedConstraints = related[vi]
		offsets[vi] = len(neighbors)
		neighbors = append(neighbors, related[vi]...)
	}
	offsets[len(m.variables)] = len(neighbors)
	m.constraintOffsets = offsets
	m.constraintNeighbors = neighbors

	if m.objective != nil {
		for vi, coef := range m.objective.Sensitivity {
			if vi < 0 || vi >= len(m.variables) {
				return newLocatedError(ErrUnknownVariable, "objective references unknown variable")
			}
			m.variables[vi].objectiveSensitivity = coef
		}
	}

	m.isSetup = true
	m.update()
	return nil
}

func dedupeSortedInts(s []int) []int {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Update recomputes every expression and constraint cache from the current
// committed variable values. Use after bulk external mutation (e.g.
// presolve fixing); the search's hot path prefers ApplyMove for its
// incremental O(related) cost.
func (m *Model) Update() error {
	m.mu.RLock()
	setup := m.isSetup
	m.mu.RUnlock()
	if !setup {
		return newLocatedError(ErrNotSetup, "Update called before Setup")
	}
	m.update()
	return nil
}

func (m *Model) update() {
	for _, c := range m.constraints {
		c.evaluate(m.variables)
	}
	if m.objective != nil {
		m.objective.evaluate(m.variables)
	}
}

// ApplyMove commits alterations to their variables (honoring the fixed
// invariant) and incrementally refreshes only the caches of constraints the
// move relates to, plus the objective. This is the sole place variable
// values change during search.
func (m *Model) ApplyMove(alterations []Alteration, relatedConstraints []int) error {
	for _, a := range alterations {
		if err := m.variables[a.VarIndex].SetValue(a.Target); err != nil {
			return err
		}
	}
	for _, ci := range relatedConstraints {
		m.constraints[ci].evaluate(m.variables)
	}
	if m.objective != nil {
		m.objective.evaluate(m.variables)
	}
	return nil
}

// EvaluateObjectiveMove returns the objective's value under alterations
// without committing them, by the O(len(alterations)) delta shortcut.
func (m *Model) EvaluateObjectiveMove(alterations []Alteration) float64 {
	if m.objective == nil {
		return 0
	}
	return m.objective.Value() + m.objective.delta(m.variables, alterations)
}

// EvaluateConstraintMove returns (constraintValue, violationValue) for
// constraint ci under alterations, without committing them.
func (m *Model) EvaluateConstraintMove(ci int, alterations []Alteration) (float64, float64) {
	c := m.constraints[ci]
	if c.IsLinear {
		lhs := c.Value() + c.Expression.delta(m.variables, alterations)
		return lhs, violationFor(c.Sense, lhs)
	}
	return c.evaluateMove(m.variables, alterations)
}

// TotalViolation sums every enabled constraint's cached violation.
func (m *Model) TotalViolation() float64 {
	var total float64
	for _, c := range m.constraints {
		if c.enabled {
			total += c.violationValue
		}
	}
	return total
}

// IsFeasible reports whether every enabled constraint has zero violation.
func (m *Model) IsFeasible() bool {
	for _, c := range m.constraints {
		if c.enabled && c.violationValue > 0 {
			return false
		}
	}
	return true
}

// ConstraintOffsets/ConstraintNeighbors expose the CSR reverse graph for
// packages (e.g. presolve) that need to walk it directly.
func (m *Model) ConstraintOffsets() []int   { return m.constraintOffsets }
func (m *Model) ConstraintNeighbors() []int { return m.constraintNeighbors }

// RelatedConstraintsOf returns the constraint indices touching variable vi,
// read directly off the CSR graph.
func (m *Model) RelatedConstraintsOf(vi int) []int {
	return m.constraintNeighbors[m.constraintOffsets[vi]:m.constraintOffsets[vi+1]]
}

// RecomputeMonicConstraints refreshes every variable's
// RelatedMonicConstraints from its RelatedConstraints and each constraint's
// current Classification. Must be called after presolve's categorization
// pass; calling it before classification is harmless but yields empty sets.
func (m *Model) RecomputeMonicConstraints() {
	isMonic := func(t ConstraintType) bool {
		switch t {
		case SetPartitioningType, SetPackingType, SetCoveringType, CardinalityType, InvariantKnapsackType:
			return true
		default:
			return false
		}
	}
	for _, v := range m.variables {
		v.relatedMonicConstraints = v.relatedMonicConstraints[:0]
		for _, ci := range v.relatedConstraints {
			if isMonic(m.constraints[ci].classification) {
				v.relatedMonicConstraints = append(v.relatedMonicConstraints, ci)
			}
		}
	}
}

// UnionRelatedConstraints returns the sorted, deduplicated union of related
// constraints across every variable in varIndices — the "related
// constraints of a move" used for incremental evaluation.
func (m *Model) UnionRelatedConstraints(varIndices []int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, vi := range varIndices {
		for _, ci := range m.RelatedConstraintsOf(vi) {
			if _, ok := seen[ci]; !ok {
				seen[ci] = struct{}{}
				out = append(out, ci)
			}
		}
	}
	sort.Ints(out)
	return out
}
