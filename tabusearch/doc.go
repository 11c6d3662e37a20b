// Package tabusearch implements the penalty-augmented short-term-memory
// search loop: move filtering, scoring, selection, application, the tabu
// list, frequency memory, adaptive tenure, and the pass break conditions.
// A single Run call executes one tabu pass; the outer penalty controller
// (package solver) invokes Run repeatedly between penalty updates.
package tabusearch
