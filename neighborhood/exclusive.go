package neighborhood

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// exclusivePair records a binary variable pair recognized from an Aggregation
// constraint (a binomial equality) as either an XOR relation (x+y=1) or an
// XNOR relation (x=y), by its two variable indices only.
type exclusivePair struct {
	a, b int
}

// exclusiveGenerator covers both ExclusiveOr and ExclusiveNor: negate
// selects which algebraic pattern this instance recognizes and which
// simultaneous flip it produces.
type exclusiveGenerator struct {
	m      *model.Model
	negate bool // true: XOR (x+y=1); false: XNOR (x=y)
	pairs  []exclusivePair
}

func (g *exclusiveGenerator) Setup(m *model.Model) error {
	g.m = m
	g.pairs = g.pairs[:0]
	for _, c := range m.Constraints() {
		if !c.IsEnabled() || !c.IsLinear || c.Sense != model.Equal {
			continue
		}
		a, b, ok := c.BinomialPartners()
		if !ok {
			continue
		}
		va, vb := m.Variable(a), m.Variable(b)
		if va.Kind() != model.Binary || vb.Kind() != model.Binary {
			continue
		}
		coefA, coefB := va.ConstraintSensitivity(c.ID), vb.ConstraintSensitivity(c.ID)
		isXor := coefA > 0 && coefB > 0 && c.Expression.Constant == -1
		isXnor := (coefA > 0) != (coefB > 0) && c.Expression.Constant == 0
		if g.negate && isXor {
			g.pairs = append(g.pairs, exclusivePair{a, b})
		}
		if !g.negate && isXnor {
			g.pairs = append(g.pairs, exclusivePair{a, b})
		}
	}
	return nil
}

func (g *exclusiveGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
	order := make([]int, len(g.pairs))
	for i := range order {
		order[i] = i
	}
	if shuffle {
		rng.ShuffleInts(order, r)
	}

	kind := ExclusiveNor
	if g.negate {
		kind = ExclusiveOr
	}

	var moves []*Move
	for _, idx := range order {
		p := g.pairs[idx]
		va, vb := g.m.Variable(p.a), g.m.Variable(p.b)
		if va.IsFixed() || vb.IsFixed() {
			continue
		}
		if !mask.accepts(va) && !mask.accepts(vb) {
			continue
		}
		mv := newMove(g.m, kind, []model.Alteration{
			{VarIndex: p.a, Target: 1 - va.Value()},
			{VarIndex: p.b, Target: 1 - vb.Value()},
		})
		moves = append(moves, mv)
	}
	return moves
}
