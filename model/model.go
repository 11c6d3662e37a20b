package model

import "sync"

// Model owns dense, index-addressed vectors of variables, expressions, and
// constraints, plus a single objective expression and optimization sense.
//
// Structural mutation (CreateVariable, CreateExpression, CreateConstraint,
// SetObjective) is guarded by mu, matching core.Graph's split between a
// vertex lock and an edge/adjacency lock — here a single lock suffices
// because construction always precedes search. The hot evaluation path
// (Update, ApplyMove) intentionally takes no lock: per the concurrency
// model, the search is single-writer and evaluation never runs concurrently
// with structural mutation.
type Model struct {
	mu sync.RWMutex

	variables   []*Variable
	expressions []*Expression
	constraints []*Constraint
	selections  []*SelectionGroup

	objective *Expression
	sense     Sense

	isSetup bool

	// constraintOffsets/constraintNeighbors is the CSR-style reverse
	// dependency graph: for variable i, the constraints referencing it are
	// constraintNeighbors[constraintOffsets[i]:constraintOffsets[i+1]].
	constraintOffsets  []int
	constraintNeighbors []int
}

// New creates an empty Model with the given optimization sense.
func New(sense Sense) *Model {
	return &Model{sense: sense}
}

// Sense returns the model's optimization direction.
func (m *Model) Sense() Sense {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sense
}

// SetSense overrides the optimization direction.
func (m *Model) SetSense(sense Sense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sense = sense
}

// NumVariables returns the number of variables created so far.
func (m *Model) NumVariables() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.variables)
}

// NumConstraints returns the number of constraints created so far.
func (m *Model) NumConstraints() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.constraints)
}

// Variable returns the variable at index i. Panics if i is out of range;
// callers within this module always index from a value Setup/CreateX handed
// back, so this is an internal-contract panic, not a user-facing error path.
func (m *Model) Variable(i int) *Variable { return m.variables[i] }

// Constraint returns the constraint at index i.
func (m *Model) Constraint(i int) *Constraint { return m.constraints[i] }

// Selection returns the selection group at index i.
func (m *Model) Selection(i int) *SelectionGroup { return m.selections[i] }

// Variables exposes the backing slice for read-only iteration. Callers must
// not retain it across a structural mutation.
func (m *Model) Variables() []*Variable { return m.variables }

// Constraints exposes the backing slice for read-only iteration.
func (m *Model) Constraints() []*Constraint { return m.constraints }

// Selections exposes the backing slice for read-only iteration.
func (m *Model) Selections() []*SelectionGroup { return m.selections }

// Objective returns the model's objective expression, or nil if unset.
func (m *Model) Objective() *Expression { return m.objective }
