package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tabumip/model"
)

func buildS1(t *testing.T) (*model.Model, int, int) {
	t.Helper()
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", nil, 0, 1)
	require.NoError(t, err)

	expr := model.NewExpression(map[int]float64{x: 1, y: 1}, -1)
	m.CreateConstraint("x+y<=1", expr, model.Less)
	m.SetObjective(model.NewExpression(map[int]float64{x: -1, y: -1}, 0))
	require.NoError(t, m.Setup())
	return m, x, y
}

func TestVariableBoundInvariant(t *testing.T) {
	m, x, _ := buildS1(t)
	v := m.Variable(x)
	require.True(t, v.LowerBound() <= v.Value())
	require.True(t, v.Value() <= v.UpperBound())
	require.Equal(t, v.Value() > v.LowerBound(), v.HasLowerBoundMargin())
}

func TestExpressionCachedValue(t *testing.T) {
	m, x, y := buildS1(t)
	require.NoError(t, m.ApplyMove([]model.Alteration{{VarIndex: x, Target: 1}}, m.UnionRelatedConstraints([]int{x})))
	obj := m.Objective()
	require.InDelta(t, -1, obj.Value(), 1e-9)

	require.NoError(t, m.ApplyMove([]model.Alteration{{VarIndex: y, Target: 1}}, m.UnionRelatedConstraints([]int{y})))
	require.InDelta(t, -2, obj.Value(), 1e-9)
}

func TestConstraintViolationFormula(t *testing.T) {
	m, x, y := buildS1(t)
	require.NoError(t, m.ApplyMove(
		[]model.Alteration{{VarIndex: x, Target: 1}, {VarIndex: y, Target: 1}},
		m.UnionRelatedConstraints([]int{x, y}),
	))
	c := m.Constraint(0)
	require.InDelta(t, 1, c.Value(), 1e-9) // x+y-1 = 1
	require.InDelta(t, 1, c.Violation(), 1e-9)
	require.False(t, m.IsFeasible())
}

func TestFixedVariableRejectsReassignment(t *testing.T) {
	m, x, _ := buildS1(t)
	m.Variable(x).FixAt(0)
	err := m.Variable(x).SetValue(1)
	require.ErrorIs(t, err, model.ErrFixedReassignment)
	// Reassigning to the same fixed value is a no-op, not an error.
	require.NoError(t, m.Variable(x).SetValue(0))
}

func TestSetBoundRejectsInversion(t *testing.T) {
	m, x, _ := buildS1(t)
	err := m.Variable(x).SetBound(5, 2)
	require.ErrorIs(t, err, model.ErrBoundInverted)
}

func TestApplyMoveMatchesFullUpdate(t *testing.T) {
	m, x, y := buildS1(t)
	alts := []model.Alteration{{VarIndex: x, Target: 1}}
	related := m.UnionRelatedConstraints([]int{x})
	require.NoError(t, m.ApplyMove(alts, related))

	wantObjValue := m.Objective().Value()
	wantConstraintValue := m.Constraint(0).Value()

	// A full Update() from the same committed state must reproduce the
	// incremental result exactly (the incremental-evaluation invariant).
	require.NoError(t, m.Update())
	require.InDelta(t, wantObjValue, m.Objective().Value(), 1e-12)
	require.InDelta(t, wantConstraintValue, m.Constraint(0).Value(), 1e-12)
	_ = y
}

func TestEvaluateMoveDoesNotCommit(t *testing.T) {
	m, x, _ := buildS1(t)
	before := m.Objective().Value()
	got := m.EvaluateObjectiveMove([]model.Alteration{{VarIndex: x, Target: 1}})
	require.InDelta(t, -1, got, 1e-9)
	require.InDelta(t, before, m.Objective().Value(), 1e-9)
	require.Equal(t, int64(0), m.Variable(x).Value())
}

func TestSelectionGroupInvariant(t *testing.T) {
	m := model.New(model.Min)
	vars := make([]int, 3)
	for i := range vars {
		vi, err := m.CreateVariable("s", []int{i}, 0, 1)
		require.NoError(t, err)
		vars[i] = vi
	}
	expr := model.NewExpression(map[int]float64{vars[0]: 1, vars[1]: 1, vars[2]: 1}, -1)
	m.CreateConstraint("onehot", expr, model.Equal)
	require.NoError(t, m.Setup())

	m.Variable(vars[1]).SetValueForce(1)
	gi := m.AddSelectionGroup(vars)
	g := m.Selection(gi)
	require.Equal(t, vars[1], g.SelectedVariable())
}
