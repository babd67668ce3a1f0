package workflow

import (
	"errors"
	"testing"
)

func TestStateOf(t *testing.T) {
	cases := []struct {
		name                         string
		requested, approved, exited  bool
		want                         State
	}{
		{"fresh entry", false, false, false, StateInside},
		{"requested", true, false, false, StateRequested},
		{"approved", true, true, false, StateApproved},
		{"exited", true, true, true, StateExited},
		// approved implies requested in valid data, but derivation must
		// not depend on it
		{"approved without requested flag", false, true, false, StateApproved},
		{"exited wins over everything", false, false, true, StateExited},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StateOf(tc.requested, tc.approved, tc.exited)
			if got != tc.want {
				t.Errorf("StateOf(%v, %v, %v) = %s, want %s",
					tc.requested, tc.approved, tc.exited, got, tc.want)
			}
		})
	}
}

func TestCheckRequest(t *testing.T) {
	cases := []struct {
		state State
		want  error
	}{
		{StateInside, nil},
		{StateRequested, ErrAlreadyRequested},
		{StateApproved, ErrAlreadyApproved},
		{StateExited, ErrAlreadyExited},
	}

	for _, tc := range cases {
		if err := CheckRequest(tc.state); !errors.Is(err, tc.want) {
			t.Errorf("CheckRequest(%s) = %v, want %v", tc.state, err, tc.want)
		}
	}
}

func TestCheckApprove(t *testing.T) {
	cases := []struct {
		state State
		want  error
	}{
		{StateInside, ErrNotRequested},
		{StateRequested, nil},
		{StateApproved, ErrAlreadyApproved},
		{StateExited, ErrAlreadyExited},
	}

	for _, tc := range cases {
		if err := CheckApprove(tc.state); !errors.Is(err, tc.want) {
			t.Errorf("CheckApprove(%s) = %v, want %v", tc.state, err, tc.want)
		}
	}
}

func TestCheckConfirm(t *testing.T) {
	cases := []struct {
		state State
		want  error
	}{
		{StateInside, ErrNotApproved},
		{StateRequested, ErrNotApproved},
		{StateApproved, nil},
		{StateExited, ErrAlreadyExited},
	}

	for _, tc := range cases {
		if err := CheckConfirm(tc.state); !errors.Is(err, tc.want) {
			t.Errorf("CheckConfirm(%s) = %v, want %v", tc.state, err, tc.want)
		}
	}
}

// No transition check ever permits leaving a terminal state.
func TestExitedIsTerminal(t *testing.T) {
	for name, check := range map[string]func(State) error{
		"request": CheckRequest,
		"approve": CheckApprove,
		"confirm": CheckConfirm,
	} {
		if err := check(StateExited); !errors.Is(err, ErrAlreadyExited) {
			t.Errorf("%s on exited record = %v, want ErrAlreadyExited", name, err)
		}
	}
}
