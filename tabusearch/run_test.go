package tabusearch_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/neighborhood"
	"github.com/katalvlaran/tabumip/presolve"
	"github.com/katalvlaran/tabumip/tabusearch"
)

// buildS1 reproduces scenario S1: two binaries x,y; objective
// min -x-y; constraint x+y<=1.
func buildS1(t *testing.T) *model.Model {
	t.Helper()
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", nil, 0, 1)
	require.NoError(t, err)
	m.CreateConstraint("cap", model.NewExpression(map[int]float64{x: 1, y: 1}, -1), model.Less)
	m.SetObjective(model.NewExpression(map[int]float64{x: -1, y: -1}, 0))
	require.NoError(t, m.Setup())
	_, err = presolve.Run(m)
	require.NoError(t, err)
	return m
}

func newNeighborhood(t *testing.T, m *model.Model) *neighborhood.Neighborhood {
	t.Helper()
	nb := neighborhood.New(m)
	require.NoError(t, nb.Setup())
	return nb
}

func TestRunFindsFeasibleOptimumOnS1(t *testing.T) {
	m := buildS1(t)
	nb := newNeighborhood(t, m)
	for _, c := range m.Constraints() {
		c.SetLocalPenalty(10)
		c.SetGlobalPenalty(10)
	}

	state := tabusearch.NewState(m.NumVariables())
	opts := tabusearch.DefaultOptions()
	opts.IterationMax = 50

	outcome, err := tabusearch.Run(m, nb, state, opts, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.True(t, outcome.EndedFeasible)
	require.True(t, state.FeasibleIncumbent.Found)
	require.Equal(t, -1.0, state.FeasibleIncumbent.Objective)
}

func TestRunStopsWhenTimeBudgetExhausted(t *testing.T) {
	m := buildS1(t)
	nb := newNeighborhood(t, m)

	state := tabusearch.NewState(m.NumVariables())
	opts := tabusearch.DefaultOptions()
	opts.IterationMax = 1
	opts.TimeMax = 1
	opts.TimeOffset = 1 // already at/after the deadline: the very first check breaks

	outcome, err := tabusearch.Run(m, nb, state, opts, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	require.True(t, outcome.StoppedByTime)
	require.Equal(t, 0, outcome.AcceptedMoves)
}

func TestRunDeterministicForFixedSeed(t *testing.T) {
	opts := tabusearch.DefaultOptions()
	opts.IterationMax = 30

	runOnce := func(seed int64) ([]int64, float64) {
		m := buildS1(t)
		nb := newNeighborhood(t, m)
		for _, c := range m.Constraints() {
			c.SetLocalPenalty(10)
			c.SetGlobalPenalty(10)
		}
		state := tabusearch.NewState(m.NumVariables())
		_, err := tabusearch.Run(m, nb, state, opts, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		return state.AugmentedIncumbent.Values, state.AugmentedIncumbent.Objective
	}

	values1, obj1 := runOnce(7)
	values2, obj2 := runOnce(7)
	require.Equal(t, values1, values2)
	require.Equal(t, obj1, obj2)
}
