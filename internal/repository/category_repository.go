package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/MuhsinADA/ese-backend/internal/model"
)

type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// Create inserts a category for the owner. The UNIQUE (user_id, name)
// index runs under a case-insensitive collation, so "Work" and "work"
// collide; 1062 maps to ErrDuplicateName.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	c.ID = uuid.NewString()
	if c.Colour == "" {
		c.Colour = model.DefaultCategoryColour
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO categories (id, name, colour, user_id) VALUES (?,?,?,?)",
		c.ID, c.Name, c.Colour, c.UserID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateName
		}
		return err
	}
	created, err := r.GetByIDAndOwner(ctx, c.ID, c.UserID)
	if err != nil {
		return err
	}
	*c = created
	return nil
}

// ListByOwner returns the owner's categories ordered by name, each
// annotated with its task count.
func (r *CategoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.name, c.colour, c.user_id, COUNT(t.id) AS task_count, c.created_at
		FROM categories c
		LEFT JOIN tasks t ON t.category_id = c.id
		WHERE c.user_id = ?
		GROUP BY c.id, c.name, c.colour, c.user_id, c.created_at
		ORDER BY c.name ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Colour, &c.UserID, &c.TaskCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByIDAndOwner fetches one category scoped to the owner. A row
// owned by someone else is reported as ErrNotFound.
func (r *CategoryRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (model.Category, error) {
	var c model.Category
	err := r.DB.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.colour, c.user_id,
		       (SELECT COUNT(*) FROM tasks t WHERE t.category_id = c.id) AS task_count,
		       c.created_at
		FROM categories c
		WHERE c.id = ? AND c.user_id = ?
		LIMIT 1`, id, ownerID).
		Scan(&c.ID, &c.Name, &c.Colour, &c.UserID, &c.TaskCount, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// GetByID fetches a category regardless of owner. Used for the
// ownership check on task category assignment, where a cross-owner
// reference must produce a field error rather than a 404.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (model.Category, error) {
	var c model.Category
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, colour, user_id, created_at FROM categories WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.Colour, &c.UserID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// NameExists reports whether the owner already has a category with
// this name (case-insensitive), excluding excludeID so updates do not
// collide with themselves.
func (r *CategoryRepo) NameExists(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE user_id=? AND LOWER(name)=LOWER(?) AND id<>?",
		ownerID, name, excludeID).Scan(&n)
	return n > 0, err
}

// Update renames or recolours the owner's category.
func (r *CategoryRepo) Update(ctx context.Context, id, ownerID, name, colour string) (model.Category, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE categories SET name=?, colour=? WHERE id=? AND user_id=?",
		name, colour, id, ownerID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Category{}, ErrDuplicateName
		}
		return model.Category{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either missing/cross-owner or a no-op update; disambiguate.
		if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
			return model.Category{}, err
		}
	}
	return r.GetByIDAndOwner(ctx, id, ownerID)
}

// Delete removes the owner's category. Tasks keep existing with their
// category reference nulled by the fk_tasks_category constraint.
func (r *CategoryRepo) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM categories WHERE id=? AND user_id=?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
