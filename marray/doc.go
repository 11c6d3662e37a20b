// Package marray provides N-dimensional indexing over a flat contiguous
// vector: a Proxy stores a shape, precomputed row-major strides, and two
// parallel slices of values and display names.
//
// This is pure modeling convenience used to expose model.Variable,
// model.Expression, and model.Constraint as user-indexed arrays while the
// model itself stores them contiguously by dense integer id; there is no
// search-path hot code here.
//
//	shape := marray.Shape{3, 4}
//	p := marray.NewProxy[int](shape)
//	_ = p.Set(7, 1, 2)
//	v, _ := p.At(1, 2)
package marray
