package pbsl

import "fmt"

// Package-level sentinel errors. None of these ever cross the public API as
// a return value — per the failure semantics of this library, ill-formed
// input is a programmer error and is reported by panicking with one of
// these, not by returning an error. They exist as named values (rather than
// ad-hoc panic(fmt.Sprintf(...))) so a recover()-ing caller can
// errors.Is(r, ErrEmptyKeys) against the recovered value.
var (
	// ErrEmptyKeys is raised when FromOrderedKeys or InsertOrdered is given
	// an empty key sequence.
	ErrEmptyKeys = fmt.Errorf("pbsl: key sequence must not be empty")

	// ErrUnsortedKeys is raised when a key sequence is not strictly
	// increasing.
	ErrUnsortedKeys = fmt.Errorf("pbsl: key sequence must be strictly increasing")

	// ErrReservedKey is raised when a caller supplies MinKey or MaxKey as a
	// user key; those values are reserved for the sentinels.
	ErrReservedKey = fmt.Errorf("pbsl: key collides with a reserved sentinel value")

	// ErrDuplicateKey is raised when a key sequence repeats a key. Overlap
	// between an InsertOrdered batch and the keys already in the set is not
	// checked.
	ErrDuplicateKey = fmt.Errorf("pbsl: batch key already present in the set")

	// ErrMerging is raised when a public operation is invoked on a skip
	// list that is currently MERGING (see the state machine in §4.5).
	ErrMerging = fmt.Errorf("pbsl: operation invoked while a merge is in progress")
)

// assertf panics with a formatted message wrapping base if cond is false.
// This is the Go stand-in for util.hpp's Debug/Assert macro pair: Go has no
// separate debug build by default, so the check always runs. Internal
// invariant violations (things that should be impossible given correct
// phase sequencing) panic with a plain string rather than a sentinel error,
// since a caller has no meaningful way to recover from them.
func assertf(cond bool, base error, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...)))
	}
}

func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("pbsl: internal invariant violated: "+format, args...))
	}
}
