package neighborhood

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// binaryGenerator flips one binary variable at a time (0<->1). It is the
// workhorse generator: almost every MIP has binary decision variables, and
// several other generators build on top of the same single-flip primitive.
type binaryGenerator struct {
	m    *model.Model
	vars []int // indices of mutable, non-Selection binary variables
}

func (g *binaryGenerator) Setup(m *model.Model) error {
	g.m = m
	g.vars = g.vars[:0]
	for _, v := range m.Variables() {
		if v.Kind() == model.Binary && !v.IsFixed() {
			g.vars = append(g.vars, v.ID)
		}
	}
	return nil
}

func (g *binaryGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
	order := g.vars
	if shuffle {
		order = append([]int(nil), g.vars...)
		rng.ShuffleInts(order, r)
	}

	moves := make([]*Move, 0, len(order))
	for _, vi := range order {
		v := g.m.Variable(vi)
		if !mask.accepts(v) {
			continue
		}
		target := int64(1) - v.Value()
		mv := newMove(g.m, Binary, []model.Alteration{{VarIndex: vi, Target: target}})
		moves = append(moves, mv)
	}
	return moves
}
