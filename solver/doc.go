// Package solver implements the penalty controller and outer loop, and
// exposes the single entrypoint, Solve, that wires the algebraic model
// (package model), presolve (package presolve), the move neighborhood
// (package neighborhood), and the tabu-search core (package tabusearch)
// into an end-to-end search.
//
// Solve owns the between-pass policy: penalty relaxing and tightening,
// selection-group penalty tying, outer-stagnation restarts, and the outer
// stop conditions (iteration_max, time_max, target_objective_value).
// Everything upstream of it (model construction, tabu-search passes, move
// generation) is an external collaborator invoked through its own package
// API; Solve never reaches into their internals.
package solver
