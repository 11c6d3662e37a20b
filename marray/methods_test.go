package marray_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tabumip/marray"
)

func TestProxyFlatUnflatRoundTrip(t *testing.T) {
	p := marray.NewProxy[int](marray.Shape{3, 4})
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			flat, err := p.Flat(i, j)
			require.NoError(t, err)
			idx, err := p.Unflat(flat)
			require.NoError(t, err)
			require.Equal(t, []int{i, j}, idx)
		}
	}
}

func TestProxyAtSet(t *testing.T) {
	p := marray.NewProxy[int](marray.Shape{2, 2})
	require.NoError(t, p.Set(7, 1, 1))
	v, err := p.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	v, err = p.At(0, 0)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestProxyShapeMismatch(t *testing.T) {
	p := marray.NewProxy[int](marray.Shape{2, 2})
	_, err := p.Flat(1)
	require.ErrorIs(t, err, marray.ErrShapeMismatch)
	_, err = p.Flat(1, 1, 1)
	require.ErrorIs(t, err, marray.ErrShapeMismatch)
}

func TestProxyIndexOutOfRange(t *testing.T) {
	p := marray.NewProxy[int](marray.Shape{2, 2})
	_, err := p.Flat(2, 0)
	require.ErrorIs(t, err, marray.ErrIndexOutOfRange)
}

func TestProxySingleton(t *testing.T) {
	p := marray.NewProxy[int](nil)
	require.Equal(t, 0, p.Rank())
	require.NoError(t, p.SetValue(42))
	v, err := p.Value()
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestProxySingletonMisuseOnMultiCell(t *testing.T) {
	p := marray.NewProxy[int](marray.Shape{3})
	_, err := p.Value()
	require.ErrorIs(t, err, marray.ErrSingletonMisuse)
	require.ErrorIs(t, p.SetValue(1), marray.ErrSingletonMisuse)
}

func TestProxyFill(t *testing.T) {
	p := marray.NewProxy[int](marray.Shape{5})
	p.Fill(9)
	for _, v := range p.All() {
		require.Equal(t, 9, v)
	}
}

func TestProxyNames(t *testing.T) {
	p := marray.NewProxy[int](marray.Shape{2})
	require.NoError(t, p.SetName("x[0]", 0))
	name, err := p.Name(0)
	require.NoError(t, err)
	require.Equal(t, "x[0]", name)
}
