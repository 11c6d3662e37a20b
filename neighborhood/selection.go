package neighborhood

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// selectionGenerator moves the "on" bit within a SelectionGroup from the
// currently selected member to each other member (a one-hot reassignment),
// so the search explores a group's alternatives without ever visiting an
// infeasible all-zero or multi-one state.
type selectionGenerator struct {
	m      *model.Model
	groups []*model.SelectionGroup
}

func (g *selectionGenerator) Setup(m *model.Model) error {
	g.m = m
	g.groups = g.groups[:0]
	for _, grp := range m.Selections() {
		if grp != nil {
			g.groups = append(g.groups, grp)
		}
	}
	return nil
}

func (g *selectionGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
	order := make([]int, len(g.groups))
	for i := range order {
		order[i] = i
	}
	if shuffle {
		rng.ShuffleInts(order, r)
	}

	var moves []*Move
	for _, gi := range order {
		grp := g.groups[gi]
		from := grp.SelectedVariable()
		if from < 0 {
			continue
		}
		fromVar := g.m.Variable(from)
		if !mask.accepts(fromVar) {
			continue
		}
		for _, to := range grp.Members {
			if to == from {
				continue
			}
			toVar := g.m.Variable(to)
			if toVar.IsFixed() || fromVar.IsFixed() {
				continue
			}
			mv := newMove(g.m, Selection, []model.Alteration{
				{VarIndex: from, Target: 0},
				{VarIndex: to, Target: 1},
			})
			mv.IsSelection = true
			moves = append(moves, mv)
		}
	}
	return moves
}
