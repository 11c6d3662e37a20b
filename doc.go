// Package tabumip is a mixed-integer program solver built around
// penalty-augmented tabu search.
//
// 🚀 What is tabumip?
//
//	A dependency-light library that brings together:
//
//	  • An algebraic model: box-bounded integer/binary/selection variables,
//	    linear and nonlinear constraints, an incrementally-evaluated
//	    objective
//	  • A presolve pass: structural classification, independent-variable
//	    fixing, redundancy removal, one-hot selection-group detection
//	  • A neighborhood of eighteen move-generator families, from single
//	    variable flips to multi-variable chain moves
//	  • A tabu-search core with adaptive tenure, frequency memory, and
//	    improvability screening
//	  • A penalty controller driving the outer loop between relaxing and
//	    tightening passes, with stagnation-triggered restarts
//
// ✨ Why choose tabumip?
//
//   - Deterministic   — every random draw flows through one seeded
//     derivation tree, so a fixed seed reproduces a fixed trajectory
//   - Incremental     — moves are scored and applied through delta-only
//     evaluation, never a full model re-walk per candidate
//   - Extensible      — a caller-installable UserDefined move generator and
//     an optional SAT-backed initial-point provider
//
// Under the hood, everything is organized under six packages:
//
//	model/       — variables, constraints, the algebraic model itself
//	presolve/    — structural classification and fixed-point tightening
//	neighborhood/ — move generation across eighteen structural templates
//	tabusearch/  — the tabu-search pass: score, filter, select, apply
//	solver/      — the penalty controller and the Solve entrypoint
//	marray/      — the generic multi-array value proxy (standalone; model does not import it)
//
// See solver.Solve for the single entrypoint, and solver's ExampleSolve_*
// functions for runnable usage.
package tabumip
