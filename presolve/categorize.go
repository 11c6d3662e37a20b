package presolve

import (
	"math"

	"github.com/katalvlaran/tabumip/model"
)

const epsilon = 1e-9

// Classify assigns c's structural template following the fixed precedence
// this package defines. Nonlinear constraints are never classified (they
// remain model.Unclassified): categorization only applies to the linear
// case. It also records BinomialPartners/TrinomialPartners on c for the
// neighborhood package's structural move generators.
func Classify(m *model.Model, c *model.Constraint) model.ConstraintType {
	if !c.IsLinear {
		return model.Unclassified
	}

	sens := c.Expression.Sensitivity
	n := len(sens)

	switch {
	case n == 1:
		return model.SingletonType

	case n == 2:
		vars, coefs := pairOf(sens)
		c.SetBinomialPartners(vars[0], vars[1])
		if math.Abs(coefs[1]) > epsilon {
			c.SetInvariantCoefficient(coefs[0] / coefs[1])
		}
		switch c.Sense {
		case model.Equal:
			return model.AggregationType
		default: // Less or Greater
			if isOppositeEqualMagnitude(coefs[0], coefs[1]) {
				return model.PrecedenceType
			}
			return model.VariableBoundType
		}

	case n == 3 && isTrinomialCandidate(m, sens):
		vars := varsOf(sens)
		c.SetTrinomialPartners(vars[0], vars[1], vars[2])
	}

	allUnitBinary := isAllUnitCoefficientOverBinaries(m, sens)
	if allUnitBinary {
		k := -c.Expression.Constant // sum(x) <sense> k
		switch c.Sense {
		case model.Equal:
			if approxEqual(k, 1) {
				return model.SetPartitioningType
			}
			if k >= 2-epsilon {
				return model.CardinalityType
			}
		case model.Less:
			if approxEqual(k, 1) {
				return model.SetPackingType
			}
			if k >= 2-epsilon {
				return model.InvariantKnapsackType
			}
		case model.Greater:
			if approxEqual(k, 1) {
				return model.SetCoveringType
			}
		}
	}

	if c.Sense == model.Equal && isAllBinary(m, sens) {
		return model.EquationKnapsackType
	}

	if c.Sense == model.Less {
		if bp, ok := binPackingShape(m, sens); ok {
			_ = bp
			return model.BinPackingType
		}
		if isAllBinary(m, sens) {
			return model.KnapsackType
		}
		return model.IntegerKnapsackType
	}

	return model.GeneralLinearType
}

// pairOf returns the two (variable index, coefficient) entries of a
// two-term sensitivity map in deterministic ascending-index order, since Go
// map iteration order is unspecified and categorization must be
// deterministic regardless of map iteration order.
func pairOf(sens map[int]float64) ([2]int, [2]float64) {
	keys := varsOf(sens)
	return [2]int{keys[0], keys[1]}, [2]float64{sens[keys[0]], sens[keys[1]]}
}

func varsOf(sens map[int]float64) []int {
	out := make([]int, 0, len(sens))
	for vi := range sens {
		out = append(out, vi)
	}
	sortInts(out)
	return out
}

func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

func isOppositeEqualMagnitude(a, b float64) bool {
	return math.Abs(a+b) < epsilon && math.Abs(a) > epsilon
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// isAllBinary reports whether every variable referenced by sens is a
// Binary-kind variable, regardless of coefficient magnitude — the guard
// the ground truth's has_only_binary_variables check applies before
// classifying a fallthrough Equal/Less row as a knapsack variant.
func isAllBinary(m *model.Model, sens map[int]float64) bool {
	for vi := range sens {
		if m.Variable(vi).Kind() != model.Binary {
			return false
		}
	}
	return true
}

func isAllUnitCoefficientOverBinaries(m *model.Model, sens map[int]float64) bool {
	for vi, coef := range sens {
		if math.Abs(coef-1) > epsilon {
			return false
		}
		if m.Variable(vi).Kind() != model.Binary {
			return false
		}
	}
	return true
}

// isTrinomialCandidate recognizes a 3-variable constraint whose variables
// are all binary as a candidate for the SoftSelection/TrinomialExclusiveNor
// structural move generators; the generator itself re-validates the exact
// algebraic pattern it needs.
func isTrinomialCandidate(m *model.Model, sens map[int]float64) bool {
	for vi := range sens {
		if m.Variable(vi).Kind() != model.Binary {
			return false
		}
	}
	return true
}

// binPackingShape recognizes the classic linear bin-packing capacity row
// sum_i w_i*x_i - C*y <= 0: every coefficient positive except exactly one,
// which is negative and attached to a binary "bin indicator" variable, with
// a zero constant term.
func binPackingShape(m *model.Model, sens map[int]float64) (negVar int, ok bool) {
	if len(sens) < 3 {
		return 0, false
	}
	negVar = -1
	for vi, coef := range sens {
		if coef < -epsilon {
			if negVar != -1 {
				return 0, false // more than one negative coefficient
			}
			negVar = vi
		} else if coef <= epsilon {
			return 0, false // zero coefficient, not a valid weight
		}
	}
	if negVar == -1 {
		return 0, false
	}
	if m.Variable(negVar).Kind() != model.Binary {
		return 0, false
	}
	return negVar, true
}
