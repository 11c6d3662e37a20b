package solver

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/katalvlaran/tabumip/model"
)

// InitialPointProvider is an "external solver delegation" interface,
// narrowed to the one subproblem a SAT oracle can solve exactly without
// contradicting the core's "not an exact method" non-goal: given every
// SelectionGroup's one-hot requirement, find some assignment that satisfies
// all of them simultaneously. It never touches non-Selection variables or
// any non-selection constraint; the tabu-search core treats its output as
// advisory starting state, same as any other external collaborator a caller
// may wire in ahead of Solve.
type InitialPointProvider interface {
	// Propose returns, for each SelectionGroup (by index into
	// model.Model.Selections()), the position within Members that should be
	// selected. A missing entry means the provider could not find a
	// consistent assignment for that group (e.g. the SAT instance as a whole
	// is unsatisfiable) and the caller should leave that group's current
	// selection untouched.
	Propose(m *model.Model) (map[int]int, error)
}

// ginitInitialPoint implements InitialPointProvider with a one-hot-per-group
// CNF encoding solved by github.com/go-air/gini, grounded on
// operator-framework-operator-lifecycle-manager's solver/lit_mapping.go
// pattern of mapping domain entities to SAT literals and reading back
// gini.Gini's Value() once Solve() reports satisfiable.
type ginitInitialPoint struct{}

// NewSATInitialPoint returns the gini-backed InitialPointProvider.
func NewSATInitialPoint() InitialPointProvider { return ginitInitialPoint{} }

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Propose builds one SAT variable per selection-group member, asserts an
// exactly-one clause set per group (pairwise at-most-one plus a single
// at-least-one clause), and solves the conjunction of every group's
// encoding at once so groups that share no variables never interfere and
// groups that do (through a future cross-group constraint a caller layers
// on top) are still solved consistently.
func (ginitInitialPoint) Propose(m *model.Model) (map[int]int, error) {
	groups := m.Selections()
	if len(groups) == 0 {
		return map[int]int{}, nil
	}

	g := gini.New()
	// dimacsID maps a (group index, member position) pair to a 1-based SAT
	// variable id; ids must be distinct across the whole instance, so they
	// are assigned by a running counter rather than per group.
	dimacsID := make([][]int, len(groups))
	next := 1
	for gi, grp := range groups {
		dimacsID[gi] = make([]int, len(grp.Members))
		for pos := range grp.Members {
			dimacsID[gi][pos] = next
			next++
		}
	}

	for gi, grp := range groups {
		lits := make([]z.Lit, len(grp.Members))
		for pos := range grp.Members {
			lits[pos] = z.Dimacs2Lit(dimacsID[gi][pos])
		}

		// At-least-one.
		for _, lit := range lits {
			g.Add(lit)
		}
		g.Add(z.LitNull)

		// Pairwise at-most-one.
		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				g.Add(lits[i].Not())
				g.Add(lits[j].Not())
				g.Add(z.LitNull)
			}
		}
	}

	if g.Solve() != satisfiable {
		return map[int]int{}, nil
	}

	selected := make(map[int]int, len(groups))
	for gi, grp := range groups {
		for pos := range grp.Members {
			if g.Value(z.Dimacs2Lit(dimacsID[gi][pos])) {
				selected[gi] = pos
				break
			}
		}
	}
	return selected, nil
}

// applyInitialPoint commits a Propose result onto m: for each proposed
// group, it moves the selected bit to 1 and every other member to 0 via
// model.ApplyMove (not SetValueForce), so the model's caches stay
// consistent with the full ApplyMove contract rather than needing a
// separate re-evaluation pass.
func applyInitialPoint(m *model.Model, proposal map[int]int) error {
	for gi, pos := range proposal {
		g := m.Selection(gi)
		var alterations []model.Alteration
		for i, vi := range g.Members {
			target := int64(0)
			if i == pos {
				target = 1
			}
			if m.Variable(vi).Value() != target {
				alterations = append(alterations, model.Alteration{VarIndex: vi, Target: target})
			}
		}
		if len(alterations) == 0 {
			g.Select(pos)
			continue
		}
		related := m.UnionRelatedConstraints(varIndicesOf(alterations))
		if err := m.ApplyMove(alterations, related); err != nil {
			return err
		}
		g.Select(pos)
	}
	return nil
}

func varIndicesOf(alterations []model.Alteration) []int {
	out := make([]int, len(alterations))
	for i, a := range alterations {
		out[i] = a.VarIndex
	}
	return out
}
