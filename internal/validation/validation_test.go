package validation

import (
	"strings"
	"testing"

	"github.com/MuhsinADA/ese-backend/internal/model"
)

func TestColour(t *testing.T) {
	valid := []string{"#6366f1", "#FFFFFF", "#000000", "#AbCdEf"}
	for _, v := range valid {
		if err := Colour(v); err != nil {
			t.Errorf("Colour(%q) rejected: %v", v, err)
		}
	}
	invalid := []string{"", "6366f1", "#6366f", "#6366f11", "#6366g1", "red", "#fff"}
	for _, v := range invalid {
		if err := Colour(v); err == nil {
			t.Errorf("Colour(%q) accepted", v)
		}
	}
}

func TestCategoryName(t *testing.T) {
	if err := CategoryName("Work"); err != nil {
		t.Fatalf("rejected valid name: %v", err)
	}
	if err := CategoryName("   "); err == nil {
		t.Fatal("accepted blank name")
	}
	if err := CategoryName(strings.Repeat("a", 101)); err == nil {
		t.Fatal("accepted over-long name")
	}
	if err := CategoryName(strings.Repeat("a", 100)); err != nil {
		t.Fatalf("rejected 100-char name: %v", err)
	}
	// Limits count characters, not bytes.
	if err := CategoryName(strings.Repeat("ü", 100)); err != nil {
		t.Fatalf("rejected 100-rune multibyte name: %v", err)
	}
	if err := CategoryName(strings.Repeat("ü", 101)); err == nil {
		t.Fatal("accepted 101-rune multibyte name")
	}
}

func TestTaskTitle(t *testing.T) {
	if err := TaskTitle("write report"); err != nil {
		t.Fatalf("rejected valid title: %v", err)
	}
	if err := TaskTitle(""); err == nil {
		t.Fatal("accepted empty title")
	}
	if err := TaskTitle(strings.Repeat("x", 201)); err == nil {
		t.Fatal("accepted over-long title")
	}
	if err := TaskTitle(strings.Repeat("文", 200)); err != nil {
		t.Fatalf("rejected 200-rune multibyte title: %v", err)
	}
	if err := TaskTitle(strings.Repeat("文", 201)); err == nil {
		t.Fatal("accepted 201-rune multibyte title")
	}
}

func TestDueDate(t *testing.T) {
	today := "2026-08-31"
	if err := DueDate("2026-09-01", true, today); err != nil {
		t.Fatalf("rejected future date on create: %v", err)
	}
	if err := DueDate(today, true, today); err != nil {
		t.Fatalf("rejected today on create: %v", err)
	}
	if err := DueDate("2026-08-30", true, today); err == nil {
		t.Fatal("accepted past date on create")
	}
	// Updates may set past dates so overdue tasks stay editable.
	if err := DueDate("2026-08-30", false, today); err != nil {
		t.Fatalf("rejected past date on update: %v", err)
	}
	for _, bad := range []string{"31-08-2026", "2026/08/31", "not-a-date", ""} {
		if err := DueDate(bad, false, today); err == nil {
			t.Errorf("accepted malformed date %q", bad)
		}
	}
}

func TestStatusAndPriority(t *testing.T) {
	for _, s := range model.Statuses {
		if err := Status(s); err != nil {
			t.Errorf("Status(%q) rejected: %v", s, err)
		}
	}
	if err := Status("archived"); err == nil {
		t.Fatal("accepted unknown status")
	}
	for _, p := range model.Priorities {
		if err := Priority(p); err != nil {
			t.Errorf("Priority(%q) rejected: %v", p, err)
		}
	}
	if err := Priority("critical"); err == nil {
		t.Fatal("accepted unknown priority")
	}
}

func TestPassword(t *testing.T) {
	if err := Password("password", "short"); err == nil {
		t.Fatal("accepted 5-char password")
	}
	if err := Password("new_password", "longenough"); err != nil {
		t.Fatalf("rejected valid password: %v", err)
	}
	if err := Password("new_password", "1234567"); err == nil {
		t.Fatal("accepted 7-char password")
	} else if err.Field != "new_password" {
		t.Fatalf("field = %q, want new_password", err.Field)
	}
}

func TestBio(t *testing.T) {
	if err := Bio(strings.Repeat("b", 500)); err != nil {
		t.Fatalf("rejected 500-char bio: %v", err)
	}
	if err := Bio(strings.Repeat("b", 501)); err == nil {
		t.Fatal("accepted over-long bio")
	}
	if err := Bio(strings.Repeat("é", 500)); err != nil {
		t.Fatalf("rejected 500-rune multibyte bio: %v", err)
	}
}

func TestCategoryOwner(t *testing.T) {
	cat := &model.Category{ID: "c1", UserID: "u1"}
	if err := CategoryOwner(cat, "u1"); err != nil {
		t.Fatalf("rejected own category: %v", err)
	}
	if err := CategoryOwner(cat, "u2"); err == nil {
		t.Fatal("accepted foreign category")
	} else if err.Field != "category" {
		t.Fatalf("field = %q, want category", err.Field)
	}
	if err := CategoryOwner(nil, "u1"); err != nil {
		t.Fatalf("nil category rejected: %v", err)
	}
}
