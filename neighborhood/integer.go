package neighborhood

import (
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// integerDeltaCap bounds how far a single integer move can shift a variable
// from its current value in one step (ground: integer_move_generator.h's
// DELTA_MAX = 10000), so a variable with a huge box range still produces a
// local, not a jump-to-bound, neighborhood.
const integerDeltaCap = 10000

// integerGenerator perturbs one general-integer variable at a time by +-1
// and by a halfway-to-bound shift (capped at integerDeltaCap) toward each
// bound when margin allows.
type integerGenerator struct {
	m    *model.Model
	vars []int
}

func (g *integerGenerator) Setup(m *model.Model) error {
	g.m = m
	g.vars = g.vars[:0]
	for _, v := range m.Variables() {
		if v.Kind() == model.Integer && !v.IsFixed() {
			g.vars = append(g.vars, v.ID)
		}
	}
	return nil
}

func (g *integerGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
	order := g.vars
	if shuffle {
		order = append([]int(nil), g.vars...)
		rng.ShuffleInts(order, r)
	}

	moves := make([]*Move, 0, 4*len(order))
	for _, vi := range order {
		v := g.m.Variable(vi)
		if !mask.accepts(v) {
			continue
		}
		value, lower, upper := v.Value(), v.LowerBound(), v.UpperBound()

		if v.HasUpperBoundMargin() {
			moves = append(moves, g.unitStep(vi, value+1))
		}
		if v.HasLowerBoundMargin() {
			moves = append(moves, g.unitStep(vi, value-1))
		}
		if value < upper-4 && upper != model.DefaultUpperBound {
			delta := (upper - value) / 2
			if delta > integerDeltaCap {
				delta = integerDeltaCap
			}
			moves = append(moves, g.unitStep(vi, value+delta))
		}
		if value > lower+4 && lower != model.DefaultLowerBound {
			delta := (lower - value) / 2
			if delta < -integerDeltaCap {
				delta = -integerDeltaCap
			}
			moves = append(moves, g.unitStep(vi, value+delta))
		}
	}
	return moves
}

// unitStep builds a move that sets vi to target, matching the original
// generator's four-alteration shift ({+1, -1, halfway-to-upper,
// halfway-to-lower}): the caller has already computed and bound-clamped
// target, so no further adjustment happens here.
func (g *integerGenerator) unitStep(vi int, target int64) *Move {
	return newMove(g.m, Integer, []model.Alteration{{VarIndex: vi, Target: target}})
}
