// Package presolve classifies each linear constraint into one of a closed
// set of structural templates, then repeatedly tightens the
// model to a fixed point: fixing independent variables, removing redundant
// constraints while tightening bounds, and promoting implicitly-fixed
// variables, before also detecting one-hot selection groups.
//
// Classification follows a fixed precedence — the first matching template in
// the order below wins, resolving the original source's ambiguity (one
// listing omits EquationKnapsack; the field-level reference does not) by
// including every category this package declares:
//
//	Singleton, Aggregation, Precedence, VariableBound, SetPartitioning,
//	SetPacking, SetCovering, Cardinality, InvariantKnapsack,
//	EquationKnapsack, BinPacking, Knapsack, IntegerKnapsack, GeneralLinear.
//
// Ground: original_source/printemps/model/constraint_type_reference.h (the
// category list) and presolver.h (the fixed-point loop and its BOUND_LIMIT
// constant, exposed here as BoundTightenMagnitudeCap).
package presolve
