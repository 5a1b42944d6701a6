package validation

import (
	"strings"
	"testing"

	"github.com/MuhsinADA/ese-backend/internal/model"
)

func TestStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{model.StatusTodo, model.StatusTodo, true},
		{model.StatusTodo, model.StatusInProgress, true},
		{model.StatusTodo, model.StatusDone, false},
		{model.StatusInProgress, model.StatusTodo, true},
		{model.StatusInProgress, model.StatusInProgress, true},
		{model.StatusInProgress, model.StatusDone, true},
		{model.StatusDone, model.StatusTodo, true},
		{model.StatusDone, model.StatusInProgress, false},
		{model.StatusDone, model.StatusDone, true},
	}
	for _, c := range cases {
		err := StatusTransition(c.from, c.to)
		if c.ok && err != nil {
			t.Errorf("%s -> %s: unexpected rejection: %v", c.from, c.to, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s -> %s: expected rejection", c.from, c.to)
		}
	}
}

func TestStatusTransitionErrorNamesAllowedSet(t *testing.T) {
	err := StatusTransition(model.StatusDone, model.StatusInProgress)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if err.Field != "status" {
		t.Fatalf("field = %q, want status", err.Field)
	}
	for _, want := range []string{"'done'", "'in_progress'", "todo"} {
		if !strings.Contains(err.Message, want) {
			t.Errorf("message %q missing %q", err.Message, want)
		}
	}
}

func TestAllowedTransitionsSorted(t *testing.T) {
	got := AllowedTransitions(model.StatusInProgress)
	want := []string{"done", "in_progress", "todo"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAllowedTransitionsUnknownStatus(t *testing.T) {
	if got := AllowedTransitions("archived"); len(got) != 0 {
		t.Fatalf("unknown status reached %v", got)
	}
}
