package model

// CreateVariable appends a new integer variable with box bounds [lo, hi] and
// returns its dense index. index is an optional multi-dimensional tag (e.g.
// the coordinates a marray.Proxy addressed it by); it is stored for display
// purposes only. The initial value is 0 when 0 lies in [lo, hi], otherwise
// the bound nearest to 0. Must be called before any Expression/Constraint
// references the returned index.
//
// Returns ErrBoundInverted if lo > hi.
func (m *Model) CreateVariable(name string, index []int, lo, hi int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lo > hi {
		return 0, newLocatedError(ErrBoundInverted, "lower bound exceeds upper bound")
	}
	v := &Variable{
		ID:                    len(m.variables),
		Name:                  name,
		Index:                 index,
		lo:                    lo,
		hi:                    hi,
		selectionGroup:        -1,
		constraintSensitivity: make(map[int]float64),
	}
	if lo > 0 {
		v.value = lo
	} else if hi < 0 {
		v.value = hi
	}
	v.setupKind()
	v.updateMargin()
	m.variables = append(m.variables, v)
	m.isSetup = false
	return v.ID, nil
}

// CreateExpression stores expr and returns its index (expressions are
// tracked mainly so callers can later look them up by id; constraints and
// the objective hold their own Expression pointer directly).
func (m *Model) CreateExpression(sensitivity map[int]float64, constant float64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := NewExpression(sensitivity, constant)
	m.expressions = append(m.expressions, e)
	return len(m.expressions) - 1
}

// CreateConstraint appends a new linear constraint expr <sense> 0 and
// returns its index. Cross-links are established by Setup, not here: call
// Setup once after all CreateConstraint calls.
func (m *Model) CreateConstraint(name string, expr *Expression, sense ConstraintSense) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := &Constraint{
		ID:         len(m.constraints),
		Name:       name,
		Sense:      sense,
		IsLinear:   true,
		Expression: expr,
		enabled:    true,
	}
	m.constraints = append(m.constraints, c)
	m.isSetup = false
	return c.ID
}

// CreateNonlinearConstraint appends a constraint evaluated by an opaque
// function rather than a linear Expression. fn must be pure and
// side-effect free; it is invoked with the full current assignment plus the
// pending move's alterations (nil alterations means "evaluate as-is").
// touches declares the variable indices fn actually depends on, so Setup can
// build the reverse dependency graph without assuming the function touches
// every variable in the model.
func (m *Model) CreateNonlinearConstraint(name string, fn NonlinearFunc, sense ConstraintSense, touches []int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := &Constraint{
		ID:      len(m.constraints),
		Name:    name,
		Sense:   sense,
		Func:    fn,
		touches: append([]int(nil), touches...),
		enabled: true,
	}
	m.constraints = append(m.constraints, c)
	m.isSetup = false
	return c.ID
}

// SetObjective installs the objective expression.
func (m *Model) SetObjective(expr *Expression) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objective = expr
}
