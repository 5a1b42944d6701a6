package repository

import (
	"strings"
	"testing"

	"github.com/MuhsinADA/ese-backend/internal/model"
)

const testToday = "2026-08-31"

func TestBuildTaskWhereOwnerOnly(t *testing.T) {
	cond, args := buildTaskWhere("u1", TaskFilter{}, testToday)
	if cond != "t.user_id = ?" {
		t.Fatalf("cond = %q", cond)
	}
	if len(args) != 1 || args[0] != "u1" {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildTaskWhereMembership(t *testing.T) {
	f := TaskFilter{
		Status:   []string{"todo", "in_progress"},
		Priority: []string{"high"},
	}
	cond, args := buildTaskWhere("u1", f, testToday)
	if !strings.Contains(cond, "t.status IN (?,?)") {
		t.Fatalf("missing status clause: %q", cond)
	}
	if !strings.Contains(cond, "t.priority IN (?)") {
		t.Fatalf("missing priority clause: %q", cond)
	}
	want := []any{"u1", "todo", "in_progress", "high"}
	if len(args) != len(want) {
		t.Fatalf("args = %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestBuildTaskWhereOverdueComplement(t *testing.T) {
	tr, fa := true, false

	cond, args := buildTaskWhere("u1", TaskFilter{Overdue: &tr}, testToday)
	if !strings.Contains(cond, overdueCond) || strings.Contains(cond, "NOT "+overdueCond) {
		t.Fatalf("overdue=true cond = %q", cond)
	}
	// The day is a bound parameter, never the database server's clock,
	// so the predicate and the derived is_overdue flag share one day.
	if strings.Contains(cond, "CURDATE") {
		t.Fatalf("overdue cond uses the server clock: %q", cond)
	}
	if len(args) != 2 || args[1] != testToday {
		t.Fatalf("args = %v, want owner then today", args)
	}

	// overdue=false must negate the whole conjunction: it matches tasks
	// with no due date, future due dates, and done tasks alike.
	cond, args = buildTaskWhere("u1", TaskFilter{Overdue: &fa}, testToday)
	if !strings.Contains(cond, "NOT "+overdueCond) {
		t.Fatalf("overdue=false cond = %q", cond)
	}
	if len(args) != 2 || args[1] != testToday {
		t.Fatalf("args = %v, want owner then today", args)
	}
}

func TestBuildTaskWhereSearchAndDates(t *testing.T) {
	f := TaskFilter{Search: "RePort", DueDateMin: "2026-01-01", DueDateMax: "2026-12-31"}
	cond, args := buildTaskWhere("u1", f, testToday)
	if !strings.Contains(cond, "t.due_date >= ?") || !strings.Contains(cond, "t.due_date <= ?") {
		t.Fatalf("missing date bounds: %q", cond)
	}
	if !strings.Contains(cond, "LOWER(t.title) LIKE ?") {
		t.Fatalf("missing search clause: %q", cond)
	}
	// search needle is lowercased and wrapped, once per column
	var needles int
	for _, a := range args {
		if a == "%report%" {
			needles++
		}
	}
	if needles != 2 {
		t.Fatalf("needle count = %d, args = %v", needles, args)
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"report":   "report",
		"50%":      `50\%`,
		"a_b":      `a\_b`,
		`c:\tmp`:   `c:\\tmp`,
		"100%_\\x": `100\%\_\\x`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildTaskWhereSearchEscapesWildcards(t *testing.T) {
	cond, args := buildTaskWhere("u1", TaskFilter{Search: "50%"}, testToday)
	if !strings.Contains(cond, "LIKE ?") {
		t.Fatalf("missing search clause: %q", cond)
	}
	var needles int
	for _, a := range args {
		if a == `%50\%%` {
			needles++
		}
	}
	if needles != 2 {
		t.Fatalf("escaped needle missing, args = %v", args)
	}
}

func TestBuildOrderClause(t *testing.T) {
	cases := map[string]string{
		"due_date":   "t.due_date ASC, t.id ASC",
		"-due_date":  "t.due_date DESC, t.id ASC",
		"title":      "t.title ASC, t.id ASC",
		"-priority":  "t.priority DESC, t.id ASC",
		"":           "t.created_at DESC, t.id ASC",
		"id; DROP":   "t.created_at DESC, t.id ASC",
		"-unknown":   "t.created_at DESC, t.id ASC",
		"updated_at": "t.updated_at ASC, t.id ASC",
	}
	for in, want := range cases {
		if got := buildOrderClause(in); got != want {
			t.Errorf("buildOrderClause(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(1); got != "?" {
		t.Fatalf("placeholders(1) = %q", got)
	}
	if got := placeholders(3); got != "?,?,?" {
		t.Fatalf("placeholders(3) = %q", got)
	}
}

func TestAggregateStatsZeroFill(t *testing.T) {
	stats := aggregateStats(nil)
	if stats.Total != 0 || stats.Overdue != 0 {
		t.Fatalf("empty set counted: %+v", stats)
	}
	for _, s := range model.Statuses {
		if v, ok := stats.ByStatus[s]; !ok || v != 0 {
			t.Errorf("by_status[%s] = %d, %v", s, v, ok)
		}
	}
	for _, p := range model.Priorities {
		if v, ok := stats.ByPriority[p]; !ok || v != 0 {
			t.Errorf("by_priority[%s] = %d, %v", p, v, ok)
		}
	}
}

func TestAggregateStats(t *testing.T) {
	rows := []statRow{
		{status: "todo", priority: "high", overdue: true},
		{status: "todo", priority: "low", overdue: false},
		{status: "in_progress", priority: "high", overdue: true},
		{status: "done", priority: "medium", overdue: false},
	}
	stats := aggregateStats(rows)
	if stats.Total != 4 {
		t.Fatalf("total = %d", stats.Total)
	}
	if stats.Overdue != 2 {
		t.Fatalf("overdue = %d", stats.Overdue)
	}
	if stats.ByStatus["todo"] != 2 || stats.ByStatus["in_progress"] != 1 || stats.ByStatus["done"] != 1 {
		t.Fatalf("by_status = %v", stats.ByStatus)
	}
	if stats.ByPriority["high"] != 2 || stats.ByPriority["medium"] != 1 || stats.ByPriority["low"] != 1 || stats.ByPriority["urgent"] != 0 {
		t.Fatalf("by_priority = %v", stats.ByPriority)
	}
}
