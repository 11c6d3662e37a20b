// Package model implements the algebraic model: variables, sparse linear
// expressions, constraints, the objective, and the reverse dependency graph
// that lets move evaluation touch only the constraints a move actually
// alters (the objective and constraint system it alters).
//
// Variables, expressions, constraints, and selection groups are addressed by
// dense integer id into Model's own slices, not by pointer, following the
// arena-of-indices approach recommended for a Go rewrite of the source's
// pointer-heavy object graph: lifetimes are trivial (the Model arena outlives
// the solve) and the reverse graph is a CSR-like offsets+neighbors structure,
// which keeps parallel evaluation cache-friendly.
//
//	m := model.New(model.Min)
//	x, _ := m.CreateVariable("x", nil, 0, 1)
//	y, _ := m.CreateVariable("y", nil, 0, 1)
//	expr := model.NewExpression(map[int]float64{x: 1, y: 1}, -1)
//	m.CreateConstraint("x+y<=1", expr, model.Less)
//	m.SetObjective(model.NewExpression(map[int]float64{x: -1, y: -1}, 0))
//	require.NoError(t, m.Setup())
package model
