package neighborhood

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// trinomialExclusiveNorGenerator flips all three variables of a recognized
// 3-binary-variable constraint simultaneously, preserving whatever parity
// relation among them the constraint enforces (the trinomial analogue of
// exclusiveGenerator's pairwise XNOR flip).
type trinomialExclusiveNorGenerator struct {
	m       *model.Model
	triples [][3]int
}

func (g *trinomialExclusiveNorGenerator) Setup(m *model.Model) error {
	g.m = m
	g.triples = g.triples[:0]
	for _, c := range m.Constraints() {
		if !c.IsEnabled() || !c.IsLinear {
			continue
		}
		a, b, d, ok := c.TrinomialPartners()
		if !ok {
			continue
		}
		if m.Variable(a).Kind() != model.Binary || m.Variable(b).Kind() != model.Binary || m.Variable(d).Kind() != model.Binary {
			continue
		}
		g.triples = append(g.triples, [3]int{a, b, d})
	}
	return nil
}

func (g *trinomialExclusiveNorGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
	order := make([]int, len(g.triples))
	for i := range order {
		order[i] = i
	}
	if shuffle {
		rng.ShuffleInts(order, r)
	}

	var moves []*Move
	for _, idx := range order {
		t := g.triples[idx]
		vars := [3]*model.Variable{g.m.Variable(t[0]), g.m.Variable(t[1]), g.m.Variable(t[2])}
		anyFixed := false
		anyAccepted := false
		for _, v := range vars {
			if v.IsFixed() {
				anyFixed = true
			}
			if mask.accepts(v) {
				anyAccepted = true
			}
		}
		if anyFixed || !anyAccepted {
			continue
		}
		mv := newMove(g.m, TrinomialExclusiveNor, []model.Alteration{
			{VarIndex: t[0], Target: 1 - vars[0].Value()},
			{VarIndex: t[1], Target: 1 - vars[1].Value()},
			{VarIndex: t[2], Target: 1 - vars[2].Value()},
		})
		moves = append(moves, mv)
	}
	return moves
}
