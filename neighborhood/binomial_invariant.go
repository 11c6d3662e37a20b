package neighborhood

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/tabumip/internal/rng"
	"github.com/katalvlaran/tabumip/model"
)

// invariantVariant selects which algebraic relation a binomialInvariantGenerator
// preserves when it perturbs a pair of general-integer variables linked by a
// two-variable equality (a*x + b*y + k = 0, recorded as BinomialPartners
// by presolve.Classify; Setup derives the ratio a/b from the sensitivities).
// A move shifts x by +-1 and y by -(a/b) times that shift, and is generated
// only when that partner shift is an integer, so every move keeps the
// equality's left-hand side unchanged.
type invariantVariant int

const (
	// invertedVariant covers a*x + b*y = -k with a,b same sign: increasing x
	// by d forces y to decrease, preserving the weighted sum.
	invertedVariant invariantVariant = iota
	// balancedVariant covers a*x - b*y = -k with |a| == |b|: x and y move by
	// the same magnitude in the same direction (x - y stays constant).
	balancedVariant
	// constantSumVariant covers the unit case x + y = k: x and y move by
	// equal and opposite amounts.
	constantSumVariant
	// constantDifferenceVariant covers the unit case x - y = k: x and y move
	// together, preserving x - y.
	constantDifferenceVariant
	// constantRatioVariant covers a/b = r for an integer r other than +-1:
	// x moves by d and y by -r*d, preserving a*x + b*y.
	constantRatioVariant
)

type binomialInvariantGenerator struct {
	m       *model.Model
	variant invariantVariant
	pairs   []exclusivePair
	ratio   map[int]float64 // keyed by pair index into pairs: a/b
}

func (g *binomialInvariantGenerator) Setup(m *model.Model) error {
	g.m = m
	g.pairs = g.pairs[:0]
	g.ratio = make(map[int]float64)

	for _, c := range m.Constraints() {
		if !c.IsEnabled() || !c.IsLinear || c.Sense != model.Equal {
			continue
		}
		a, b, ok := c.BinomialPartners()
		if !ok {
			continue
		}
		va, vb := m.Variable(a), m.Variable(b)
		if va.Kind() == model.Binary || vb.Kind() == model.Binary {
			continue // the binary cases belong to ExclusiveOr/ExclusiveNor
		}
		coefA, coefB := va.ConstraintSensitivity(c.ID), vb.ConstraintSensitivity(c.ID)
		if math.Abs(coefB) < epsilonInvariant {
			continue
		}
		ratio := coefA / coefB

		matches := false
		switch g.variant {
		case constantSumVariant:
			matches = approxOne(coefA) && approxOne(coefB)
		case constantDifferenceVariant:
			matches = approxOne(coefA) && approxOne(-coefB)
		case balancedVariant:
			matches = math.Abs(math.Abs(coefA)-math.Abs(coefB)) < epsilonInvariant && !approxOne(coefA) && (coefA > 0) != (coefB > 0)
		case constantRatioVariant:
			matches = !approxOne(math.Abs(ratio)) && math.Abs(ratio-math.Round(ratio)) < epsilonInvariant
		case invertedVariant:
			matches = (coefA > 0) == (coefB > 0) && !approxOne(coefA) && !approxOne(coefB)
		}
		if !matches {
			continue
		}

		idx := len(g.pairs)
		g.pairs = append(g.pairs, exclusivePair{a, b})
		g.ratio[idx] = ratio
	}
	return nil
}

const epsilonInvariant = 1e-9

func approxOne(v float64) bool { return math.Abs(v-1) < epsilonInvariant }

func (g *binomialInvariantGenerator) kind() MoveKind {
	switch g.variant {
	case invertedVariant:
		return InvertedIntegers
	case balancedVariant:
		return BalancedIntegers
	case constantSumVariant:
		return ConstantSumIntegers
	case constantDifferenceVariant:
		return ConstantDifferenceIntegers
	default:
		return ConstantRatioIntegers
	}
}

func (g *binomialInvariantGenerator) UpdateMoves(mask AcceptMask, shuffle bool, r *rand.Rand, _ int) []*Move {
	order := make([]int, len(g.pairs))
	for i := range order {
		order[i] = i
	}
	if shuffle {
		rng.ShuffleInts(order, r)
	}

	kind := g.kind()
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
		ratio := g.ratio[idx]

		for _, delta := range [2]int64{1, -1} {
			aTarget := va.Value() + delta
			shift := -ratio * float64(delta)
			if math.Abs(shift-math.Round(shift)) > epsilonInvariant {
				continue
			}
			bDelta := int64(math.Round(shift))
			bTarget := vb.Value() + bDelta
			if aTarget < va.LowerBound() || aTarget > va.UpperBound() {
				continue
			}
			if bTarget < vb.LowerBound() || bTarget > vb.UpperBound() {
				continue
			}
			mv := newMove(g.m, kind, []model.Alteration{
				{VarIndex: p.a, Target: aTarget},
				{VarIndex: p.b, Target: bTarget},
			})
			moves = append(moves, mv)
		}
	}
	return moves
}
