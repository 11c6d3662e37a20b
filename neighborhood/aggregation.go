package neighborhood

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// aggregationGenerator is the general two-variable substitution move: for
// any constraint presolve classified AggregationType (a*x + b*y + k = 0),
// perturb x by one step and solve the equation exactly for y's new value,
// skipping the step when no integer y keeps the pair feasible. Unlike
// binomialInvariantGenerator's specialized variants, this generator makes no
// assumption about the coefficients' shape, so it is the fallback that
// covers every Aggregation pair the more specific generators miss.
type aggregationLink struct {
	exclusivePair
	constraintID int
}

type aggregationGenerator struct {
	m     *model.Model
	pairs []aggregationLink
}

func (g *aggregationGenerator) Setup(m *model.Model) error {
	g.m = m
	g.pairs = g.pairs[:0]
	for _, c := range m.Constraints() {
		if !c.IsEnabled() || c.Classification() != model.AggregationType {
			continue
		}
		a, b, ok := c.BinomialPartners()
		if !ok {
			continue
		}
		g.pairs = append(g.pairs, aggregationLink{exclusivePair{a, b}, c.ID})
	}
	return nil
}

func (g *aggregationGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
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
		va, vb := g.m.Variable(p.a), g.m.Variable(p.b)
		if va.IsFixed() || vb.IsFixed() {
			continue
		}
		if !mask.accepts(va) && !mask.accepts(vb) {
			continue
		}
		moves = append(moves, g.candidateFor(p, va, vb, 1)...)
		moves = append(moves, g.candidateFor(p, va, vb, -1)...)
	}
	return moves
}

func (g *aggregationGenerator) candidateFor(p aggregationLink, va, vb *model.Variable, delta int64) []*Move {
	target := va.Value() + delta
	if target < va.LowerBound() || target > va.UpperBound() {
		return nil
	}
	coefA := va.ConstraintSensitivity(p.constraintID)
	coefB := vb.ConstraintSensitivity(p.constraintID)
	if math.Abs(coefB) < epsilonInvariant {
		return nil
	}
	c := g.m.Constraint(p.constraintID)
	newB := -(coefA*float64(target) + c.Expression.Constant) / coefB
	rounded := int64(math.Round(newB))
	if math.Abs(newB-float64(rounded)) > 1e-6 {
		return nil // no integer solution preserves the equality exactly
	}
	if rounded < vb.LowerBound() || rounded > vb.UpperBound() {
		return nil
	}
	return []*Move{newMove(g.m, Aggregation, []model.Alteration{
		{VarIndex: p.a, Target: target},
		{VarIndex: p.b, Target: rounded},
	})}
}
