package model

import "time"

// DefaultCategoryColour is applied when a category is created without
// an explicit colour.
const DefaultCategoryColour = "#6366f1"

// Category is a user-defined grouping for tasks. The (owner, name)
// pair is unique case-insensitively among the owner's categories.
// Deleting a category does not delete its tasks; their category
// reference is nulled instead.
type Category struct {
	ID        string    `json:"id"`         // categories.id (UUID)
	Name      string    `json:"name"`       // categories.name
	Colour    string    `json:"colour"`     // categories.colour (#rrggbb)
	UserID    string    `json:"-"`          // categories.user_id
	TaskCount int64     `json:"task_count"` // derived: COUNT of tasks in this category
	CreatedAt time.Time `json:"created_at"` // categories.created_at
}
