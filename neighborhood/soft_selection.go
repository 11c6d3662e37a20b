package neighborhood

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// softSelectionGenerator flips a single member of a SelectionGroup without
// compensating any other member, unlike selectionGenerator's paired swap.
// It exists for SetPacking/SetCovering-derived groups, whose constraint
// (<=1 or >=1) tolerates states other than exactly one selected member, so a
// lone flip can be a legitimate, separately tabu-tracked move.
type softSelectionGenerator struct {
	m      *model.Model
	groups []*model.SelectionGroup
}

func (g *softSelectionGenerator) Setup(m *model.Model) error {
	g.m = m
	g.groups = g.groups[:0]
	for _, grp := range m.Selections() {
		if grp != nil {
			g.groups = append(g.groups, grp)
		}
	}
	return nil
}

func (g *softSelectionGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
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
		members := grp.Members
		if shuffle {
			members = append([]int(nil), members...)
			rng.ShuffleInts(members, r)
		}
		for _, vi := range members {
			v := g.m.Variable(vi)
			if v.IsFixed() || !mask.accepts(v) {
				continue
			}
			mv := newMove(g.m, SoftSelection, []model.Alteration{{VarIndex: vi, Target: 1 - v.Value()}})
			mv.IsSelection = true
			moves = append(moves, mv)
		}
	}
	return moves
}
