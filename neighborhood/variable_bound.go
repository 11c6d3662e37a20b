package neighborhood

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// variableBoundGenerator perturbs the two variables of a constraint presolve
// classified VariableBoundType (a two-variable inequality that is not a
// precedence pair, e.g. x <= c*y). Like precedenceGenerator it proposes
// single-variable nudges and lets the tabu-search score filter out bad
// candidates rather than trying to stay feasible itself.
type variableBoundGenerator struct {
	m     *model.Model
	pairs []exclusivePair
}

func (g *variableBoundGenerator) Setup(m *model.Model) error {
	g.m = m
	g.pairs = g.pairs[:0]
	for _, c := range m.Constraints() {
		if !c.IsEnabled() || c.Classification() != model.VariableBoundType {
			continue
		}
		a, b, ok := c.BinomialPartners()
		if ok {
			g.pairs = append(g.pairs, exclusivePair{a, b})
		}
	}
	return nil
}

func (g *variableBoundGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
	order := make([]int, len(g.pairs))
	for i := range order {
		order[i] = i
	}
	if shuffle {
		rng.ShuffleInts(order, r)
	}

	var moves []*Move
	for _, idx := range order {
		p := g.pairs[idx]
		for _, vi := range [2]int{p.a, p.b} {
			v := g.m.Variable(vi)
			if v.IsFixed() || !mask.accepts(v) {
				continue
			}
			if v.Kind() == model.Binary {
				moves = append(moves, newMove(g.m, VariableBound, []model.Alteration{{VarIndex: vi, Target: 1 - v.Value()}}))
				continue
			}
			if v.HasUpperBoundMargin() {
				moves = append(moves, newMove(g.m, VariableBound, []model.Alteration{{VarIndex: vi, Target: v.Value() + 1}}))
			}
			if v.HasLowerBoundMargin() {
				moves = append(moves, newMove(g.m, VariableBound, []model.Alteration{{VarIndex: vi, Target: v.Value() - 1}}))
			}
		}
	}
	return moves
}
