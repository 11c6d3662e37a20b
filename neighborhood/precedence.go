package neighborhood

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// precedenceGenerator perturbs the two endpoints of a constraint presolve
// classified PrecedenceType (a*x - a*y <= k, a two-variable ordering
// constraint such as a task-start-time gap) one variable at a time, letting
// the penalty-augmented score — not the generator — decide whether a
// resulting violation is worth accepting.
type precedenceGenerator struct {
	m     *model.Model
	pairs []exclusivePair
}

func (g *precedenceGenerator) Setup(m *model.Model) error {
	g.m = m
	g.pairs = g.pairs[:0]
	for _, c := range m.Constraints() {
		if !c.IsEnabled() || c.Classification() != model.PrecedenceType {
			continue
		}
		a, b, ok := c.BinomialPartners()
		if ok {
			g.pairs = append(g.pairs, exclusivePair{a, b})
		}
	}
	return nil
}

func (g *precedenceGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
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
			if v.HasUpperBoundMargin() {
				moves = append(moves, newMove(g.m, Precedence, []model.Alteration{{VarIndex: vi, Target: v.Value() + 1}}))
			}
			if v.HasLowerBoundMargin() {
				moves = append(moves, newMove(g.m, Precedence, []model.Alteration{{VarIndex: vi, Target: v.Value() - 1}}))
			}
		}
	}
	return moves
}
