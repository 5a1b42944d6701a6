package model

import "time"

// DateLayout is the wire and comparison format for due dates.
const DateLayout = "2006-01-02"

// Task status values. New tasks always start in StatusTodo.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Statuses and Priorities list the enum values in declaration order.
// Stats responses zero-fill every entry so the keys are always present.
var (
	Statuses   = []string{StatusTodo, StatusInProgress, StatusDone}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
)

// Task mirrors a row of the `tasks` table plus two derived fields.
// DueDate is carried as a `YYYY-MM-DD` string (the column is a DATE;
// repositories select it through DATE_FORMAT), which keeps date-only
// semantics out of time.Time and makes lexicographic comparison valid.
type Task struct {
	ID           string    `json:"id"`            // tasks.id (UUID)
	Title        string    `json:"title"`         // tasks.title
	Description  string    `json:"description"`   // tasks.description
	Status       string    `json:"status"`        // tasks.status
	Priority     string    `json:"priority"`      // tasks.priority
	DueDate      *string   `json:"due_date"`      // tasks.due_date, nil when unset
	CategoryID   *string   `json:"category"`      // tasks.category_id, nil when unset
	CategoryName *string   `json:"category_name"` // derived: joined categories.name
	UserID       string    `json:"-"`             // tasks.user_id
	IsOverdue    bool      `json:"is_overdue"`    // derived, see Overdue
	CreatedAt    time.Time `json:"created_at"`    // tasks.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // tasks.updated_at
}

// Overdue reports whether the task is past due on the given day:
// a due date is set, it is strictly before today, and the task is not
// done. today must be a `YYYY-MM-DD` string; with that format a plain
// string comparison orders dates correctly.
func (t *Task) Overdue(today string) bool {
	return t.DueDate != nil && *t.DueDate < today && t.Status != StatusDone
}

// TaskStats aggregates the owner's task set for the dashboard.
type TaskStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByPriority map[string]int64 `json:"by_priority"`
	Overdue    int64            `json:"overdue"`
}
