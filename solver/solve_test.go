package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/solver"
)

// TestSolveS1TwoBinaryCapacity reproduces scenario (S1): two binaries
// x,y, objective min -x-y, constraint x+y<=1.
func TestSolveS1TwoBinaryCapacity(t *testing.T) {
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", nil, 0, 1)
	require.NoError(t, err)
	m.CreateConstraint("cap", model.NewExpression(map[int]float64{x: 1, y: 1}, -1), model.Less)
	m.SetObjective(model.NewExpression(map[int]float64{x: -1, y: -1}, 0))

	opts := solver.DefaultOptions()
	opts.General.IterationMax = 30

	result, err := solver.Solve(m, opts)
	require.NoError(t, err)
	require.True(t, result.IsFeasible)
	require.Equal(t, -1.0, result.Objective)
	require.Equal(t, int64(1), result.Values["x"]+result.Values["y"])
}

// TestSolveS2SetPartitioning reproduces scenario (S2): three binaries
// with x+y+z=1, objective min 3x+2y+z.
func TestSolveS2SetPartitioning(t *testing.T) {
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", nil, 0, 1)
	require.NoError(t, err)
	z, err := m.CreateVariable("z", nil, 0, 1)
	require.NoError(t, err)
	m.CreateConstraint("partition", model.NewExpression(map[int]float64{x: 1, y: 1, z: 1}, -1), model.Equal)
	m.SetObjective(model.NewExpression(map[int]float64{x: 3, y: 2, z: 1}, 0))

	opts := solver.DefaultOptions()
	opts.General.IterationMax = 60

	result, err := solver.Solve(m, opts)
	require.NoError(t, err)
	require.True(t, result.IsFeasible)
	require.Equal(t, 1.0, result.Objective)
	require.Equal(t, int64(1), result.Values["z"])
}

// TestSolveS3BoxedIntegers reproduces scenario (S3): integer x,y in
// [0,10], constraints x+y<=7 and x-y>=-3, objective min -x-2y.
func TestSolveS3BoxedIntegers(t *testing.T) {
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 0, 10)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", nil, 0, 10)
	require.NoError(t, err)
	m.CreateConstraint("cap", model.NewExpression(map[int]float64{x: 1, y: 1}, -7), model.Less)
	m.CreateConstraint("spread", model.NewExpression(map[int]float64{x: 1, y: -1}, 3), model.Greater)
	m.SetObjective(model.NewExpression(map[int]float64{x: -1, y: -2}, 0))

	opts := solver.DefaultOptions()
	opts.General.IterationMax = 300

	result, err := solver.Solve(m, opts)
	require.NoError(t, err)
	require.True(t, result.IsFeasible)
	require.Equal(t, -12.0, result.Objective)
}

// TestSolveS4Knapsack reproduces scenario (S4): a 0/1 knapsack with 5
// items, capacity 10, weights [2,3,4,5,9], values [3,4,5,6,10].
func TestSolveS4Knapsack(t *testing.T) {
	weights := []float64{2, 3, 4, 5, 9}
	values := []float64{3, 4, 5, 6, 10}

	m := model.New(model.Max)
	vars := make([]int, len(weights))
	for i := range weights {
		vi, err := m.CreateVariable("item", nil, 0, 1)
		require.NoError(t, err)
		vars[i] = vi
	}
	weightSens := make(map[int]float64, len(vars))
	objSens := make(map[int]float64, len(vars))
	for i, vi := range vars {
		weightSens[vi] = weights[i]
		objSens[vi] = values[i]
	}
	m.CreateConstraint("capacity", model.NewExpression(weightSens, -10), model.Less)
	m.SetObjective(model.NewExpression(objSens, 0))

	opts := solver.DefaultOptions()
	opts.General.IterationMax = 300

	result, err := solver.Solve(m, opts)
	require.NoError(t, err)
	require.True(t, result.IsFeasible)
	require.Equal(t, 13.0, result.Objective)
}

// TestSolveS5OneHotSelection reproduces scenario (S5): one-hot over 5
// binaries with the identity objective.
func TestSolveS5OneHotSelection(t *testing.T) {
	m := model.New(model.Min)
	vars := make([]int, 5)
	sens := make(map[int]float64, 5)
	for i := range vars {
		vi, err := m.CreateVariable("b", nil, 0, 1)
		require.NoError(t, err)
		vars[i] = vi
		sens[vi] = 1
	}
	m.CreateConstraint("onehot", model.NewExpression(sens, -1), model.Equal)
	m.SetObjective(model.NewExpression(map[int]float64{vars[0]: 1}, 0))

	opts := solver.DefaultOptions()
	opts.General.IterationMax = 60

	result, err := solver.Solve(m, opts)
	require.NoError(t, err)
	require.True(t, result.IsFeasible)

	// Values is keyed by name and every selection variable here shares the
	// name "b", so assert one-hot directly off the model instead.
	selected := 0
	for _, v := range m.Variables() {
		if v.Value() == 1 {
			selected++
		}
	}
	require.Equal(t, 1, selected)
}

// TestSolveS6FixedBoundsOnePass reproduces scenario (S6): lo=hi=7 on a
// free integer variable; presolve fixes it, so a single pass finds no move
// and the result reports value 7.
func TestSolveS6FixedBoundsOnePass(t *testing.T) {
	m := model.New(model.Min)
	v, err := m.CreateVariable("v", nil, 7, 7)
	require.NoError(t, err)
	m.SetObjective(model.NewExpression(map[int]float64{v: 1}, 0))

	opts := solver.DefaultOptions()
	opts.General.IterationMax = 1

	result, err := solver.Solve(m, opts)
	require.NoError(t, err)
	require.True(t, result.IsFeasible)
	require.Equal(t, int64(7), result.Values["v"])
	require.Equal(t, 7.0, result.Objective)
}

// TestSolveTimeMaxZeroReturnsInitialAssignment covers the zero-time-budget boundary: a
// zero TimeMax returns the (possibly presolve/initial-value-corrected)
// starting assignment without running any tabu pass.
func TestSolveTimeMaxZeroReturnsInitialAssignment(t *testing.T) {
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 0, 1)
	require.NoError(t, err)
	m.SetObjective(model.NewExpression(map[int]float64{x: 1}, 0))

	opts := solver.DefaultOptions()
	opts.General.TimeMax = 0

	result, err := solver.Solve(m, opts)
	require.NoError(t, err)
	require.Equal(t, 0, result.IterationsTotal)
}
