package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func filterCtx(t *testing.T, query string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/tasks?"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParseTaskFilterDefaults(t *testing.T) {
	f, ferr := parseTaskFilter(filterCtx(t, ""))
	if ferr != nil {
		t.Fatalf("unexpected error: %v", ferr)
	}
	if f.Page != 1 {
		t.Fatalf("page = %d", f.Page)
	}
	if f.Overdue != nil || len(f.Status) != 0 || len(f.Priority) != 0 {
		t.Fatalf("zero filter not empty: %+v", f)
	}
}

func TestParseTaskFilterCSVAndPage(t *testing.T) {
	f, ferr := parseTaskFilter(filterCtx(t, "status=todo,in_progress&priority=high&page=3"))
	if ferr != nil {
		t.Fatalf("unexpected error: %v", ferr)
	}
	if len(f.Status) != 2 || f.Status[0] != "todo" || f.Status[1] != "in_progress" {
		t.Fatalf("status = %v", f.Status)
	}
	if len(f.Priority) != 1 || f.Priority[0] != "high" {
		t.Fatalf("priority = %v", f.Priority)
	}
	if f.Page != 3 {
		t.Fatalf("page = %d", f.Page)
	}
}

func TestParseTaskFilterBadPageFallsBack(t *testing.T) {
	for _, q := range []string{"page=0", "page=-2", "page=abc"} {
		f, ferr := parseTaskFilter(filterCtx(t, q))
		if ferr != nil {
			t.Fatalf("%s: unexpected error: %v", q, ferr)
		}
		if f.Page != 1 {
			t.Fatalf("%s: page = %d", q, f.Page)
		}
	}
}

func TestParseTaskFilterOverdue(t *testing.T) {
	f, ferr := parseTaskFilter(filterCtx(t, "overdue=true"))
	if ferr != nil || f.Overdue == nil || !*f.Overdue {
		t.Fatalf("overdue=true parsed as %v, err %v", f.Overdue, ferr)
	}
	f, ferr = parseTaskFilter(filterCtx(t, "overdue=false"))
	if ferr != nil || f.Overdue == nil || *f.Overdue {
		t.Fatalf("overdue=false parsed as %v, err %v", f.Overdue, ferr)
	}
	if _, ferr = parseTaskFilter(filterCtx(t, "overdue=maybe")); ferr == nil {
		t.Fatal("accepted overdue=maybe")
	}
}

func TestParseTaskFilterDateBounds(t *testing.T) {
	f, ferr := parseTaskFilter(filterCtx(t, "due_date_min=2026-01-01&due_date_max=2026-12-31"))
	if ferr != nil {
		t.Fatalf("unexpected error: %v", ferr)
	}
	if f.DueDateMin != "2026-01-01" || f.DueDateMax != "2026-12-31" {
		t.Fatalf("bounds = %q..%q", f.DueDateMin, f.DueDateMax)
	}
	if _, ferr = parseTaskFilter(filterCtx(t, "due_date_min=01-01-2026")); ferr == nil {
		t.Fatal("accepted malformed due_date_min")
	}
	if _, ferr = parseTaskFilter(filterCtx(t, "due_date_max=soon")); ferr == nil {
		t.Fatal("accepted malformed due_date_max")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a, b ,,c ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if out := splitCSV(""); out != nil {
		t.Fatalf("empty input produced %v", out)
	}
}
