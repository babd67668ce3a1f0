// Package workflow holds the exit-approval state machine shared by
// visitor and student entry records. It is pure: no storage, no
// transport, just state derivation and transition preconditions.
package workflow

import "errors"

// Transition errors. Each names the exact precondition that failed so
// callers can report it without inspecting record flags themselves.
var (
	ErrAlreadyRequested = errors.New("exit already requested")
	ErrNotRequested     = errors.New("exit has not been requested")
	ErrAlreadyApproved  = errors.New("exit already approved")
	ErrNotApproved      = errors.New("exit has not been approved")
	ErrAlreadyExited    = errors.New("record has already exited")
)

// State is the derived position of a record in the exit workflow.
type State string

const (
	StateInside    State = "inside"
	StateRequested State = "requested"
	StateApproved  State = "approved"
	StateExited    State = "exited"
)

// StateOf derives the workflow state from the three stored flags.
// The flags are monotonic, so the first set flag from the terminal end
// wins.
func StateOf(exitRequested, exitApproved, hasExited bool) State {
	switch {
	case hasExited:
		return StateExited
	case exitApproved:
		return StateApproved
	case exitRequested:
		return StateRequested
	default:
		return StateInside
	}
}

// CheckRequest validates the inside → requested transition.
// Re-requesting is rejected rather than treated as idempotent: a
// duplicate request is a client bug worth surfacing.
func CheckRequest(s State) error {
	switch s {
	case StateInside:
		return nil
	case StateRequested:
		return ErrAlreadyRequested
	case StateApproved:
		return ErrAlreadyApproved
	default:
		return ErrAlreadyExited
	}
}

// CheckApprove validates the requested → approved transition.
func CheckApprove(s State) error {
	switch s {
	case StateInside:
		return ErrNotRequested
	case StateRequested:
		return nil
	case StateApproved:
		return ErrAlreadyApproved
	default:
		return ErrAlreadyExited
	}
}

// CheckConfirm validates the approved → exited transition.
func CheckConfirm(s State) error {
	switch s {
	case StateInside, StateRequested:
		return ErrNotApproved
	case StateApproved:
		return nil
	default:
		return ErrAlreadyExited
	}
}
