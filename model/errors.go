package model

import (
	"errors"
	"fmt"
	"runtime"
)

// Sentinel errors for model construction and mutation. Do not wrap with
// fmt.Errorf where a sentinel suffices; callers needing a source location
// should consult LocatedError below.
var (
	// ErrBoundInverted is returned by SetBound when lo > hi.
	ErrBoundInverted = errors.New("model: lower bound exceeds upper bound")

	// ErrFixedReassignment is returned when a fixed variable is assigned a
	// value other than its fixed value. Search code never triggers this
	// because move filters exclude fixed variables upstream.
	ErrFixedReassignment = errors.New("model: attempted to reassign a fixed variable")

	// ErrUnknownVariable is returned when a variable index is out of range
	// for the owning Model.
	ErrUnknownVariable = errors.New("model: unknown variable index")

	// ErrUnknownConstraint names an out-of-range constraint index. No
	// function in this package returns it: Constraint(i) indexes directly.
	ErrUnknownConstraint = errors.New("model: unknown constraint index")

	// ErrNoObjective names a model without an objective. No function in this
	// package returns it: move evaluation reports 0 for a nil objective.
	ErrNoObjective = errors.New("model: objective has not been set")

	// ErrNotSetup is returned by operations that require Setup to have run
	// (the reverse dependency graph must exist before incremental updates).
	ErrNotSetup = errors.New("model: Setup has not been called")

	// ErrNonlinearConstraint names a request for the linear Expression of a
	// constraint built from an opaque function. No function in this package
	// returns it: such a constraint's Expression field is nil.
	ErrNonlinearConstraint = errors.New("model: constraint is not linear")
)

// LocatedError carries a source location for unrecoverable construction
// errors, per the diagnosis requirement that every such error names
// (file, line, function, message).
type LocatedError struct {
	File     string
	Line     int
	Function string
	Message  string
	Err      error
}

func (e *LocatedError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Function, e.Message)
}

func (e *LocatedError) Unwrap() error { return e.Err }

// newLocatedError captures the caller's (file, line, function) via
// runtime.Caller and wraps err/message into a LocatedError. skip=2 points at
// the caller of the function that invoked newLocatedError.
func newLocatedError(err error, message string) *LocatedError {
	pc, file, line, ok := runtime.Caller(2)
	fn := "unknown"
	if ok {
		if f := runtime.FuncForPC(pc); f != nil {
			fn = f.Name()
		}
	}
	return &LocatedError{File: file, Line: line, Function: fn, Message: message, Err: err}
}
