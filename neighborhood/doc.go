// Package neighborhood generates candidate moves over a model.Model: for
// every enabled move kind, a Generator walks the model once per tabu-search
// iteration and produces the Moves that kind's structural template allows.
//
// Each move kind lives in its own file (binary.go, integer.go, ...),
// mirroring the original solver's one-file-per-generator layout. Generators
// never mutate the model; the tabu-search core decides which candidate to
// commit via model.Model.ApplyMove.
package neighborhood
