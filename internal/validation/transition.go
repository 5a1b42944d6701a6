package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MuhsinADA/ese-backend/internal/model"
)

// transitions is the task status state machine. Self-loops are legal
// everywhere, so setting status to its current value always succeeds.
// The table is deliberately asymmetric: a done task restarts through
// todo (done -> in_progress is illegal) and a todo task must pass
// through in_progress before it can be done.
var transitions = map[string]map[string]bool{
	model.StatusTodo:       {model.StatusTodo: true, model.StatusInProgress: true},
	model.StatusInProgress: {model.StatusInProgress: true, model.StatusDone: true, model.StatusTodo: true},
	model.StatusDone:       {model.StatusDone: true, model.StatusTodo: true},
}

// AllowedTransitions returns the sorted set of statuses reachable from
// current. Unknown statuses have no successors.
func AllowedTransitions(current string) []string {
	targets := transitions[current]
	out := make([]string, 0, len(targets))
	for s := range targets {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// StatusTransition checks requested against the transition table. The
// error message names the current state, the requested state, and the
// full allowed set so clients can recover without consulting docs.
func StatusTransition(current, requested string) *FieldError {
	if transitions[current][requested] {
		return nil
	}
	return &FieldError{
		Field: "status",
		Message: fmt.Sprintf("invalid transition from '%s' to '%s'; allowed: %s",
			current, requested, strings.Join(AllowedTransitions(current), ", ")),
	}
}
