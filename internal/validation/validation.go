// Package validation holds the pure field- and object-level rules for
// categories and tasks. Every function is a function of its inputs
// only; repositories and handlers compose them into an ordered
// pipeline (field-level rules first, object-level rules after) and map
// failures to field-keyed HTTP responses.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MuhsinADA/ese-backend/internal/model"
)

// DateLayout aliases the model date format for callers of this package.
const DateLayout = model.DateLayout

// FieldError is a rejection tagged with the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Colour accepts exactly `#` followed by six hex digits.
func Colour(code string) *FieldError {
	if !colourPattern.MatchString(code) {
		return &FieldError{Field: "colour", Message: "colour must be a valid hex code, e.g. #6366f1"}
	}
	return nil
}

// CategoryName bounds the name length; uniqueness per owner is checked
// against the store by the repository.
func CategoryName(name string) *FieldError {
	name = strings.TrimSpace(name)
	if name == "" {
		return &FieldError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) > 100 {
		return &FieldError{Field: "name", Message: "name must be 100 characters or fewer"}
	}
	return nil
}

// TaskTitle requires a non-empty title of at most 200 characters.
func TaskTitle(title string) *FieldError {
	title = strings.TrimSpace(title)
	if title == "" {
		return &FieldError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > 200 {
		return &FieldError{Field: "title", Message: "title must be 200 characters or fewer"}
	}
	return nil
}

// DueDate parses value as YYYY-MM-DD and, on creation only, rejects
// dates before today. Updates are unrestricted so an already overdue
// task stays editable. today must be in the same layout.
func DueDate(value string, isCreate bool, today string) *FieldError {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return &FieldError{Field: "due_date", Message: "due_date must be a date in YYYY-MM-DD format"}
	}
	if isCreate && value < today {
		return &FieldError{Field: "due_date", Message: "due date cannot be in the past"}
	}
	return nil
}

// Status accepts one of the known task statuses.
func Status(s string) *FieldError {
	for _, v := range model.Statuses {
		if s == v {
			return nil
		}
	}
	return &FieldError{Field: "status", Message: fmt.Sprintf("status must be one of: %s", strings.Join(model.Statuses, ", "))}
}

// Priority accepts one of the known task priorities.
func Priority(p string) *FieldError {
	for _, v := range model.Priorities {
		if p == v {
			return nil
		}
	}
	return &FieldError{Field: "priority", Message: fmt.Sprintf("priority must be one of: %s", strings.Join(model.Priorities, ", "))}
}

// Bio bounds the profile blurb length.
func Bio(bio string) *FieldError {
	if utf8.RuneCountInString(bio) > 500 {
		return &FieldError{Field: "bio", Message: "bio must be 500 characters or fewer"}
	}
	return nil
}

// Password enforces the minimum credential length.
func Password(field, plain string) *FieldError {
	if utf8.RuneCountInString(plain) < 8 {
		return &FieldError{Field: field, Message: "password must be at least 8 characters"}
	}
	return nil
}

// CategoryOwner rejects assigning a category that belongs to a
// different user. The caller resolves the category first; a row not
// owned by the requester is reported here, not as a lookup miss, so
// the message names the field rather than leaking existence semantics.
func CategoryOwner(category *model.Category, ownerID string) *FieldError {
	if category != nil && category.UserID != ownerID {
		return &FieldError{Field: "category", Message: "you can only assign your own categories"}
	}
	return nil
}
