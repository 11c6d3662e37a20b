package model

// NewExpression builds a sparse affine form: sensitivity maps a variable
// index to its coefficient; constant is the additive term. The returned
// Expression has not yet been evaluated (Value() is 0 until the owning
// Model's Update or ApplyMove evaluates it).
func NewExpression(sensitivity map[int]float64, constant float64) *Expression {
	cp := make(map[int]float64, len(sensitivity))
	for k, v := range sensitivity {
		if v != 0 {
			cp[k] = v
		}
	}
	return &Expression{Sensitivity: cp, Constant: constant}
}

// Value returns the last-cached evaluation (updated by the owning Model's
// Update and ApplyMove; move evaluation never writes it).
func (e *Expression) Value() float64 { return e.value }

// evaluate recomputes and caches the expression's value against the given
// variable vector: value = sum(coef*var) + constant.
func (e *Expression) evaluate(variables []*Variable) float64 {
	total := e.Constant
	for vi, coef := range e.Sensitivity {
		total += coef * float64(variables[vi].value)
	}
	e.value = total
	return total
}

// evaluateMove computes the expression's value as it would be under
// alterations, WITHOUT mutating e.value — incremental evaluation matching
// 4.2's O(related) contract: only variables with a nonzero sensitivity that
// also appear in alterations change the sum, so callers should prefer delta
// computation (delta) in hot paths; evaluateMove recomputes the full sum
// for correctness where a delta shortcut is not worth the bookkeeping.
func (e *Expression) evaluateMove(variables []*Variable, alterations []Alteration) float64 {
	total := e.Constant
	for vi, coef := range e.Sensitivity {
		v := variables[vi]
		total += coef * float64(v.evaluateMove(alterations))
	}
	return total
}

// delta returns the change in the expression's value caused by alterations,
// computed in O(len(alterations)) by summing coef*(new-old) only for
// variables the move actually touches and that have a nonzero sensitivity.
func (e *Expression) delta(variables []*Variable, alterations []Alteration) float64 {
	var d float64
	for _, a := range alterations {
		coef, ok := e.Sensitivity[a.VarIndex]
		if !ok || coef == 0 {
			continue
		}
		d += coef * float64(a.Target-variables[a.VarIndex].value)
	}
	return d
}
