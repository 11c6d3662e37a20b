package neighborhood_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tabumip/model"
	"github.com/katalvlaran/tabumip/neighborhood"
	"github.com/katalvlaran/tabumip/presolve"
)

func buildBinaryModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New(model.Min)
	vars := make([]int, 3)
	for i := range vars {
		vi, err := m.CreateVariable("x", []int{i}, 0, 1)
		require.NoError(t, err)
		vars[i] = vi
	}
	expr := model.NewExpression(map[int]float64{vars[0]: 1, vars[1]: 1, vars[2]: 1}, -1)
	m.CreateConstraint("onehot", expr, model.Equal)
	m.SetObjective(model.NewExpression(map[int]float64{vars[0]: 3, vars[1]: 2, vars[2]: 1}, 0))
	require.NoError(t, m.Setup())
	_, err := presolve.Run(m)
	require.NoError(t, err)
	return m
}

func TestBinaryGeneratorFlipsBit(t *testing.T) {
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 0, 1)
	require.NoError(t, err)
	m.SetObjective(model.NewExpression(map[int]float64{x: 1}, 0))
	require.NoError(t, m.Setup())

	nb := neighborhood.New(m)
	require.NoError(t, nb.Setup())
	moves := nb.UpdateMoves(neighborhood.AcceptMask{}, false, rand.New(rand.NewSource(1)), 1)

	found := false
	for _, mv := range moves {
		if mv.Kind == neighborhood.Binary {
			require.Len(t, mv.Alterations, 1)
			require.Equal(t, x, mv.Alterations[0].VarIndex)
			require.Equal(t, int64(1), mv.Alterations[0].Target)
			found = true
		}
	}
	require.True(t, found)
}

func TestSelectionGeneratorSwapsWithinGroup(t *testing.T) {
	m := buildBinaryModel(t)
	require.Equal(t, 1, m.NumConstraints())
	require.Len(t, m.Selections(), 1)

	nb := neighborhood.New(m)
	require.NoError(t, nb.Setup())
	moves := nb.UpdateMoves(neighborhood.AcceptMask{}, false, rand.New(rand.NewSource(2)), 1)

	sawSelection := false
	for _, mv := range moves {
		if mv.Kind == neighborhood.Selection {
			require.Len(t, mv.Alterations, 2)
			sawSelection = true
		}
	}
	require.True(t, sawSelection)
}

func TestIntegerGeneratorRespectsBounds(t *testing.T) {
	m := model.New(model.Min)
	x, err := m.CreateVariable("x", nil, 5, 5)
	require.NoError(t, err)
	m.SetObjective(model.NewExpression(map[int]float64{x: 1}, 0))
	require.NoError(t, m.Setup())

	nb := neighborhood.New(m)
	require.NoError(t, nb.Setup())
	moves := nb.UpdateMoves(neighborhood.AcceptMask{}, false, rand.New(rand.NewSource(3)), 1)

	for _, mv := range moves {
		require.NotEqual(t, neighborhood.Integer, mv.Kind, "a bound-fixed variable has no margin to move in")
	}
}

// TestChainHashIsOrderIndependent composes the same two elementary moves in
// both orders and checks the resulting Chain move's Hash matches either
// way, per the composite-move hashing rule (XOR of variable identities, not
// a sequential fold over alterations in list order).
func TestChainHashIsOrderIndependent(t *testing.T) {
	m := model.New(model.Min)
	a, err := m.CreateVariable("a", nil, 0, 1)
	require.NoError(t, err)
	b, err := m.CreateVariable("b", nil, 0, 1)
	require.NoError(t, err)
	require.NoError(t, m.Setup())

	moveA := &neighborhood.Move{
		Alterations:        []model.Alteration{{VarIndex: a, Target: 1}},
		RelatedConstraints: m.UnionRelatedConstraints([]int{a}),
		Kind:               neighborhood.Binary,
		IsAvailable:        true,
	}
	moveB := &neighborhood.Move{
		Alterations:        []model.Alteration{{VarIndex: b, Target: 1}},
		RelatedConstraints: m.UnionRelatedConstraints([]int{b}),
		Kind:               neighborhood.Binary,
		IsAvailable:        true,
	}

	forward := neighborhood.New(m)
	require.NoError(t, forward.Setup())
	forward.RegisterAcceptedMove(moveA, rand.New(rand.NewSource(5)))
	forward.RegisterAcceptedMove(moveB, rand.New(rand.NewSource(5)))
	forwardChains := chainHashes(forward.UpdateMoves(neighborhood.AcceptMask{}, false, rand.New(rand.NewSource(5)), 1))

	reverse := neighborhood.New(m)
	require.NoError(t, reverse.Setup())
	reverse.RegisterAcceptedMove(moveB, rand.New(rand.NewSource(5)))
	reverse.RegisterAcceptedMove(moveA, rand.New(rand.NewSource(5)))
	reverseChains := chainHashes(reverse.UpdateMoves(neighborhood.AcceptMask{}, false, rand.New(rand.NewSource(5)), 1))

	require.NotEmpty(t, forwardChains)
	require.Equal(t, forwardChains, reverseChains)
}

func chainHashes(moves []*neighborhood.Move) []uint64 {
	var out []uint64
	for _, mv := range moves {
		if mv.Kind == neighborhood.Chain {
			out = append(out, mv.Hash)
		}
	}
	return out
}
