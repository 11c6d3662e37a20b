package presolve

import (
	"math"

	"github.com/katalvlaran/tabumip/model"
)

// coefEpsilon guards the "division by near-zero" numerical case:
// a coefficient smaller in magnitude than this is treated as degenerate and
// the bound derivation is skipped rather than risking an exploding bound.
const coefEpsilon = 1e-9

// Run classifies every linear constraint, repeats the three-step
// presolve fixed point (independent-variable fixing, redundancy removal
// with bound tightening, implicit fixing) until nothing changes, detects
// one-hot selection groups (a group with no member at 1 gets its first
// non-fixed member set to 1 as its default selection), re-evaluates the
// model, and finally asks m to recompute each variable's
// related-monic-constraint set so the neighborhood package's selection/chain
// heuristics see accurate data. m.Setup() must have already been called.
func Run(m *model.Model) (Report, error) {
	for _, c := range m.Constraints() {
		c.SetClassification(Classify(m, c))
	}

	var report Report
	for {
		report.Rounds++
		changed := false

		if fixIndependentVariables(m, &report) {
			changed = true
		}
		if tightenAndRemoveRedundant(m, &report) {
			changed = true
		}
		if fixImplicitlyFixed(m, &report) {
			changed = true
		}

		if !changed {
			break
		}
	}

	groups := DetectSelections(m)
	for _, g := range groups {
		if g.SelectedVar >= 0 {
			continue
		}
		for pos, vi := range g.Members {
			if v := m.Variable(vi); !v.IsFixed() {
				v.SetValueForce(1)
				g.Select(pos)
				break
			}
		}
	}
	report.DetectedSelections = len(groups)

	if err := m.Update(); err != nil {
		return report, err
	}
	m.RecomputeMonicConstraints()

	return report, nil
}

// fixIndependentVariables fixes any variable with no related constraints:
// to 0 if it is also absent from the objective, otherwise to whichever
// bound optimizes the objective given its sense and sign.
func fixIndependentVariables(m *model.Model, report *Report) bool {
	changed := false
	for _, v := range m.Variables() {
		if v.IsFixed() || len(v.RelatedConstraints()) > 0 {
			continue
		}
		coef := v.ObjectiveSensitivity()
		if coef == 0 {
			v.FixAt(0)
			report.FixedVariables++
			changed = true
			continue
		}
		wantLower := coef > 0 // minimize: positive coef wants the smallest value
		if m.Sense() == model.Max {
			wantLower = !wantLower
		}
		if wantLower {
			v.FixAt(v.LowerBound())
		} else {
			v.FixAt(v.UpperBound())
		}
		report.FixedVariables++
		changed = true
	}
	return changed
}

// intervalOf returns [lo, hi] for coef*v given v's box bounds, i.e. the
// achievable range of one affine term.
func intervalOf(coef float64, v *model.Variable) (lo, hi float64) {
	a := coef * float64(v.LowerBound())
	b := coef * float64(v.UpperBound())
	if a <= b {
		return a, b
	}
	return b, a
}

// tightenAndRemoveRedundant walks every enabled linear constraint: disables
// it if its free-subexpression interval already implies the sense
// everywhere, otherwise derives a tighter bound for each of its variables
// (singleton constraints fix or bound the lone variable directly).
func tightenAndRemoveRedundant(m *model.Model, report *Report) bool {
	changed := false
	for _, c := range m.Constraints() {
		if !c.IsEnabled() || !c.IsLinear {
			continue
		}
		sens := c.Expression.Sensitivity
		constant := c.Expression.Constant

		totalLo, totalHi := constant, constant
		for vi, coef := range sens {
			l, h := intervalOf(coef, m.Variable(vi))
			totalLo += l
			totalHi += h
		}

		if isImpliedEverywhere(c.Sense, totalLo, totalHi) {
			if c.IsEnabled() {
				c.SetEnabled(false)
				report.RemovedConstraints++
				changed = true
			}
			continue
		}

		if len(sens) == 1 {
			if tightenSingleton(m, c, report) {
				changed = true
			}
			continue
		}

		for vi, coef := range sens {
			if math.Abs(coef) < coefEpsilon {
				continue // degenerate coefficient: skip, leave constraint as-is
			}
			otherLo, otherHi := constant, constant
			for vj, cj := range sens {
				if vj == vi {
					continue
				}
				l, h := intervalOf(cj, m.Variable(vj))
				otherLo += l
				otherHi += h
			}
			if tightenOneVariable(m.Variable(vi), coef, otherLo, otherHi, c.Sense, report) {
				changed = true
			}
		}
	}
	return changed
}

func isImpliedEverywhere(sense model.ConstraintSense, lo, hi float64) bool {
	switch sense {
	case model.Less:
		return hi <= 0
	case model.Greater:
		return lo >= 0
	default: // Equal: only implied if the expression is a degenerate constant zero everywhere
		return lo == 0 && hi == 0
	}
}

// tightenSingleton fixes or bound-tightens the sole variable of a
// one-variable constraint coef*v + constant <sense> 0.
func tightenSingleton(m *model.Model, c *model.Constraint, report *Report) bool {
	var vi int
	var coef float64
	for k, v := range c.Expression.Sensitivity {
		vi, coef = k, v
	}
	if math.Abs(coef) < coefEpsilon {
		return false
	}
	v := m.Variable(vi)
	rhs := -c.Expression.Constant / coef
	changed := false
	switch c.Sense {
	case model.Equal:
		target := int64(math.Round(rhs))
		if !v.IsFixed() && (v.LowerBound() != target || v.UpperBound() != target) {
			if target >= v.LowerBound() && target <= v.UpperBound() {
				_ = v.SetBound(target, target)
				report.TightenedBounds++
				changed = true
			}
		}
	case model.Less:
		changed = tightenOneVariable(v, coef, 0, 0, model.Less, report) || changed
	case model.Greater:
		changed = tightenOneVariable(v, coef, 0, 0, model.Greater, report) || changed
	}
	return changed
}

// tightenOneVariable derives a new bound for v from
// coef*v + [otherLo, otherHi] + handled-separately <sense> 0 and applies it
// if it is strictly tighter than v's current bound and within the magnitude
// cap (the configured BoundTightenMagnitudeCap).
func tightenOneVariable(v *model.Variable, coef, otherLo, otherHi float64, sense model.ConstraintSense, report *Report) bool {
	if math.Abs(coef) < coefEpsilon {
		return false
	}
	changed := false
	switch sense {
	case model.Less:
		// coef*v + other <= 0 must hold for the actual (unknown) value of
		// other; the loosest necessary bound on v uses other's minimum.
		bound := -otherLo / coef
		if coef > 0 {
			newHi := int64(math.Floor(bound))
			if withinCap(newHi) && newHi < v.UpperBound() {
				if setUpperBound(v, newHi) {
					report.TightenedBounds++
					changed = true
				}
			}
		} else {
			newLo := int64(math.Ceil(bound))
			if withinCap(newLo) && newLo > v.LowerBound() {
				if setLowerBound(v, newLo) {
					report.TightenedBounds++
					changed = true
				}
			}
		}
	case model.Greater:
		bound := -otherHi / coef
		if coef > 0 {
			newLo := int64(math.Ceil(bound))
			if withinCap(newLo) && newLo > v.LowerBound() {
				if setLowerBound(v, newLo) {
					report.TightenedBounds++
					changed = true
				}
			}
		} else {
			newHi := int64(math.Floor(bound))
			if withinCap(newHi) && newHi < v.UpperBound() {
				if setUpperBound(v, newHi) {
					report.TightenedBounds++
					changed = true
				}
			}
		}
	case model.Equal:
		changed = tightenOneVariable(v, coef, otherLo, otherHi, model.Less, report) || changed
		changed = tightenOneVariable(v, coef, otherLo, otherHi, model.Greater, report) || changed
	}
	return changed
}

func withinCap(bound int64) bool {
	return bound <= BoundTightenMagnitudeCap && bound >= -BoundTightenMagnitudeCap
}

func setUpperBound(v *model.Variable, newHi int64) bool {
	if newHi < v.LowerBound() {
		return false
	}
	return v.SetBound(v.LowerBound(), newHi) == nil
}

func setLowerBound(v *model.Variable, newLo int64) bool {
	if newLo > v.UpperBound() {
		return false
	}
	return v.SetBound(newLo, v.UpperBound()) == nil
}

// fixImplicitlyFixed promotes any variable whose tightened lo==hi to fixed.
func fixImplicitlyFixed(m *model.Model, report *Report) bool {
	changed := false
	for _, v := range m.Variables() {
		if !v.IsFixed() && v.LowerBound() == v.UpperBound() {
			v.FixAt(v.LowerBound())
			report.FixedVariables++
			changed = true
		}
	}
	return changed
}
