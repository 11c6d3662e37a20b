package neighborhood

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// twoFlipCandidatesPerVar bounds how many partner variables each binary
// variable is paired against, keeping the generator's output near-linear in
// the variable count instead of the full O(n^2) pairing.
const twoFlipCandidatesPerVar = 4

// twoFlipGenerator flips two independent binary variables simultaneously,
// unconstrained by any shared structural template — a generic
// diversification move that lets the search escape plateaus Binary's
// single-flip neighborhood cannot reach in one step.
type twoFlipGenerator struct {
	m    *model.Model
	vars []int
}

func (g *twoFlipGenerator) Setup(m *model.Model) error {
	g.m = m
	g.vars = g.vars[:0]
	for _, v := range m.Variables() {
		if v.Kind() == model.Binary && !v.IsFixed() {
			g.vars = append(g.vars, v.ID)
		}
	}
	return nil
}

func (g *twoFlipGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
	if len(g.vars) < 2 {
		return nil
	}
	order := g.vars
	if shuffle {
		order = append([]int(nil), g.vars...)
		rng.ShuffleInts(order, r)
	}

	var moves []*Move
	n := len(order)
	for i, vi := range order {
		v := g.m.Variable(vi)
		if !mask.accepts(v) {
			continue
		}
		for k := 1; k <= twoFlipCandidatesPerVar && k < n; k++ {
			j := (i + k) % n
			wi := order[j]
			if wi == vi {
				continue
			}
			w := g.m.Variable(wi)
			mv := newMove(g.m, TwoFlip, []model.Alteration{
				{VarIndex: vi, Target: 1 - v.Value()},
				{VarIndex: wi, Target: 1 - w.Value()},
			})
			moves = append(moves, mv)
		}
	}
	return moves
}
