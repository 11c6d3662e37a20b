package model

// AddSelectionGroup registers a new SelectionGroup over members (variable
// indices), marks each member's Kind as Selection, and records the group's
// related constraints (the union of its members' related constraints).
// Returns the new group's index. Only presolve's DetectSelections calls
// this: selection groups are a derived structural fact, not something a
// model builder declares directly.
func (m *Model) AddSelectionGroup(members []int) int {
	gi := len(m.selections)
	g := &SelectionGroup{ID: gi, Members: append([]int(nil), members...), SelectedVar: -1}
	for i, vi := range members {
		m.variables[vi].assignToSelectionGroup(gi)
		if m.variables[vi].value == 1 {
			g.SelectedVar = i
		}
	}
	g.RelatedConstraints = m.UnionRelatedConstraints(members)
	m.selections = append(m.selections, g)
	return gi
}

// Select switches the group's selected member to memberPos (an index into
// g.Members), updating the pointer only — callers are responsible for
// applying the corresponding variable value changes via ApplyMove so that
// the invariant "exactly one member has value 1" holds once the move
// commits.
func (g *SelectionGroup) Select(memberPos int) {
	g.SelectedVar = memberPos
}

// SelectedVariable returns the variable index of the currently selected
// member, or -1 if none is set yet.
func (g *SelectionGroup) SelectedVariable() int {
	if g.SelectedVar < 0 {
		return -1
	}
	return g.Members[g.SelectedVar]
}
