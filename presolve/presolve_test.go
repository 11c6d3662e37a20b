package presolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/presolve"
)

func TestClassifySetPartitioning(t *testing.T) {
	m := model.New(model.Min)
	vars := make([]int, 3)
	for i := range vars {
		vi, err := m.CreateVariable("x", []int{i}, 0, 1)
		require.NoError(t, err)
		vars[i] = vi
	}
	expr := model.NewExpression(map[int]float64{vars[0]: 1, vars[1]: 1, vars[2]: 1}, -1)
	ci := m.CreateConstraint("onehot", expr, model.Equal)
	m.SetObjective(model.NewExpression(map[int]float64{vars[0]: 3, vars[1]: 2, vars[2]: 1}, 0))
	require.NoError(t, m.Setup())

	require.Equal(t, model.SetPartitioningType, presolve.Classify(m, m.Constraint(ci)))
}

func TestClassifyPrecedenceAndVariableBound(t *testing.T) {
	m := model.New(model.Min)
	x, _ := m.CreateVariable("x", nil, 0, 10)
	y, _ := m.CreateVariable("y", nil, 0, 10)
	require.NoError(t, m.Setup())

	prec := m.CreateConstraint("prec", model.NewExpression(map[int]float64{x: 1, y: -1}, -3), model.Greater)
	vb := m.CreateConstraint("vb", model.NewExpression(map[int]float64{x: 1, y: -2}, -3), model.Greater)

	require.Equal(t, model.PrecedenceType, presolve.Classify(m, m.Constraint(prec)))
	require.Equal(t, model.VariableBoundType, presolve.Classify(m, m.Constraint(vb)))
}

func TestClassifyAggregation(t *testing.T) {
	m := model.New(model.Min)
	x, _ := m.CreateVariable("x", nil, 0, 10)
	y, _ := m.CreateVariable("y", nil, 0, 10)
	require.NoError(t, m.Setup())
	ci := m.CreateConstraint("agg", model.NewExpression(map[int]float64{x: 1, y: 1}, -5), model.Equal)
	require.Equal(t, model.AggregationType, presolve.Classify(m, m.Constraint(ci)))
}

// A non-binary equality row (2x+3y+z=7 over integer variables) must not be
// classified EquationKnapsackType: that category requires every variable to
// be binary, per the ground truth's has_only_binary_variables guard. Falls
// through to GeneralLinearType instead.
func TestClassifyEqualityFallsThroughWhenNotAllBinary(t *testing.T) {
	m := model.New(model.Min)
	x, _ := m.CreateVariable("x", nil, 0, 10)
	y, _ := m.CreateVariable("y", nil, 0, 10)
	z, _ := m.CreateVariable("z", nil, 0, 10)
	require.NoError(t, m.Setup())
	ci := m.CreateConstraint("eq", model.NewExpression(map[int]float64{x: 2, y: 3, z: 1}, -7), model.Equal)

	require.Equal(t, model.GeneralLinearType, presolve.Classify(m, m.Constraint(ci)))
}

func TestClassifySingleton(t *testing.T) {
	m := model.New(model.Min)
	x, _ := m.CreateVariable("x", nil, 0, 10)
	require.NoError(t, m.Setup())
	ci := m.CreateConstraint("single", model.NewExpression(map[int]float64{x: 1}, -7), model.Equal)
	require.Equal(t, model.SingletonType, presolve.Classify(m, m.Constraint(ci)))
}

// S6: a variable with lo=hi on a free integer variable is fixed by presolve.
func TestPresolveFixesEqualBounds(t *testing.T) {
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 7, 7)
	require.NoError(t, err)
	m.SetObjective(model.NewExpression(map[int]float64{x: 1}, 0))
	require.NoError(t, m.Setup())

	report, err := presolve.Run(m)
	require.NoError(t, err)
	require.GreaterOrEqual(t, report.FixedVariables, 1)
	require.True(t, m.Variable(x).IsFixed())
	require.Equal(t, int64(7), m.Variable(x).Value())
}

// S2: a SetPartitioning constraint yields a detected selection group.
func TestPresolveDetectsSelectionGroup(t *testing.T) {
	m := model.New(model.Min)
	vars := make([]int, 3)
	for i := range vars {
		vi, err := m.CreateVariable("z", []int{i}, 0, 1)
		require.NoError(t, err)
		vars[i] = vi
	}
	expr := model.NewExpression(map[int]float64{vars[0]: 1, vars[1]: 1, vars[2]: 1}, -1)
	m.CreateConstraint("onehot", expr, model.Equal)
	m.SetObjective(model.NewExpression(map[int]float64{vars[0]: 3, vars[1]: 2, vars[2]: 1}, 0))
	require.NoError(t, m.Setup())

	report, err := presolve.Run(m)
	require.NoError(t, err)
	require.Equal(t, 1, report.DetectedSelections)
	require.Equal(t, model.Selection, m.Variable(vars[0]).Kind())
}

func TestPresolveFixesIndependentVariable(t *testing.T) {
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, -5, 5)
	require.NoError(t, err)
	m.SetObjective(model.NewExpression(map[int]float64{x: 3}, 0))
	require.NoError(t, m.Setup())

	_, err = presolve.Run(m)
	require.NoError(t, err)
	require.True(t, m.Variable(x).IsFixed())
	// Minimizing 3x with no constraints: push to the lower bound.
	require.Equal(t, int64(-5), m.Variable(x).Value())
}

func TestPresolveDisablesRedundantConstraint(t *testing.T) {
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 0, 3)
	require.NoError(t, err)
	m.SetObjective(model.NewExpression(map[int]float64{x: 1}, 0))
	require.NoError(t, m.Setup())
	// x <= 10 is always true given x in [0,3]; presolve should disable it.
	ci := m.CreateConstraint("redundant", model.NewExpression(map[int]float64{x: 1}, -10), model.Less)
	require.NoError(t, m.Setup())

	report, err := presolve.Run(m)
	require.NoError(t, err)
	require.Equal(t, 1, report.RemovedConstraints)
	require.False(t, m.Constraint(ci).IsEnabled())
}
