package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MuhsinADA/ese-backend/internal/model"
)

// PageSize is the fixed number of tasks per list page.
const PageSize = 10

type TaskRepo struct{ DB *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{DB: db} }

// TaskFilter carries the parsed list-endpoint query parameters. Zero
// values mean "no constraint"; all present constraints are ANDed.
type TaskFilter struct {
	Status     []string // set membership on status
	Priority   []string // set membership on priority
	CategoryID string   // exact category id
	Overdue    *bool    // true: overdue set, false: its exact complement
	DueDateMin string   // inclusive YYYY-MM-DD lower bound
	DueDateMax string   // inclusive YYYY-MM-DD upper bound
	Search     string   // case-insensitive substring on title/description
	Ordering   string   // column key, "-" prefix for descending
	Page       int      // 1-based page number
}

// overdueCond is the single definition of "overdue" used by the
// filter, its negation, and the stats query. The day is bound as a
// parameter rather than taken from CURDATE(): the server timezone is
// not ours to control, and the same todayUTC() value must feed the
// predicate and the derived is_overdue flag or the two can disagree
// around midnight.
const overdueCond = "(t.due_date IS NOT NULL AND t.due_date < ? AND t.status <> 'done')"

// buildTaskWhere composes the WHERE clause for an owner-scoped task
// query. The owner predicate is always first; everything else follows
// from the filter. today is the YYYY-MM-DD day the overdue predicate
// compares against.
func buildTaskWhere(ownerID string, f TaskFilter, today string) (string, []any) {
	where := []string{"t.user_id = ?"}
	args := []any{ownerID}

	if len(f.Status) > 0 {
		where = append(where, "t.status IN ("+placeholders(len(f.Status))+")")
		for _, s := range f.Status {
			args = append(args, s)
		}
	}
	if len(f.Priority) > 0 {
		where = append(where, "t.priority IN ("+placeholders(len(f.Priority))+")")
		for _, p := range f.Priority {
			args = append(args, p)
		}
	}
	if f.CategoryID != "" {
		where = append(where, "t.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Overdue != nil {
		if *f.Overdue {
			where = append(where, overdueCond)
		} else {
			// The complement of the whole conjunction, not of each clause.
			where = append(where, "NOT "+overdueCond)
		}
		args = append(args, today)
	}
	if f.DueDateMin != "" {
		where = append(where, "t.due_date >= ?")
		args = append(args, f.DueDateMin)
	}
	if f.DueDateMax != "" {
		where = append(where, "t.due_date <= ?")
		args = append(args, f.DueDateMax)
	}
	if f.Search != "" {
		where = append(where, "(LOWER(t.title) LIKE ? OR LOWER(t.description) LIKE ?)")
		needle := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		args = append(args, needle, needle)
	}
	return strings.Join(where, " AND "), args
}

// escapeLike neutralises LIKE metacharacters so a search for "50%"
// matches the literal text instead of "50" followed by anything.
// Backslash is MySQL's default LIKE escape character.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// orderableColumns whitelists the ordering keys accepted from clients.
var orderableColumns = map[string]string{
	"title":      "t.title",
	"status":     "t.status",
	"priority":   "t.priority",
	"due_date":   "t.due_date",
	"created_at": "t.created_at",
	"updated_at": "t.updated_at",
}

// buildOrderClause maps an ordering key ("-due_date", "title", ...)
// onto a safe ORDER BY. Unknown keys fall back to the default,
// most-recently-created first. A secondary id sort keeps pagination
// stable across equal keys.
func buildOrderClause(ordering string) string {
	dir := "ASC"
	key := ordering
	if strings.HasPrefix(ordering, "-") {
		dir = "DESC"
		key = ordering[1:]
	}
	col, ok := orderableColumns[key]
	if !ok {
		return "t.created_at DESC, t.id ASC"
	}
	return col + " " + dir + ", t.id ASC"
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

const taskColumns = `t.id, t.title, t.description, t.status, t.priority,
		DATE_FORMAT(t.due_date, '%Y-%m-%d') AS due_date,
		t.category_id, c.name AS category_name,
		t.user_id, t.created_at, t.updated_at`

func scanTask(scan func(...any) error, today string) (model.Task, error) {
	var (
		t       model.Task
		dueDate sql.NullString
		catID   sql.NullString
		catName sql.NullString
	)
	if err := scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&dueDate, &catID, &catName, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return t, err
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.String
	}
	if catID.Valid {
		t.CategoryID = &catID.String
	}
	if catName.Valid {
		t.CategoryName = &catName.String
	}
	t.IsOverdue = t.Overdue(today)
	return t, nil
}

func todayUTC() string { return time.Now().UTC().Format(model.DateLayout) }

// Search returns one page of the owner's tasks matching the filter,
// plus the total match count for the pagination envelope.
func (r *TaskRepo) Search(ctx context.Context, ownerID string, f TaskFilter) ([]model.Task, int64, error) {
	// One day value for the whole query, so the overdue filter and the
	// is_overdue flags on the returned rows always agree.
	today := todayUTC()
	cond, args := buildTaskWhere(ownerID, f, today)

	var total int64
	countSQL := "SELECT COUNT(*) FROM tasks t WHERE " + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	dataSQL := "SELECT " + taskColumns + `
		FROM tasks t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE ` + cond + `
		ORDER BY ` + buildOrderClause(f.Ordering) + `
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), PageSize, offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Task, 0, PageSize)
	for rows.Next() {
		t, err := scanTask(rows.Scan, today)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// Create inserts a task for the owner and returns the stored row.
// Status always starts at todo regardless of input.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	t.ID = uuid.NewString()
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, due_date, category_id, user_id)
		VALUES (?,?,?,?,?,?,?,?)`,
		t.ID, t.Title, t.Description, model.StatusTodo, t.Priority,
		nullable(t.DueDate), nullable(t.CategoryID), t.UserID)
	if err != nil {
		return err
	}
	created, err := r.GetByIDAndOwner(ctx, t.ID, t.UserID)
	if err != nil {
		return err
	}
	*t = created
	return nil
}

// GetByIDAndOwner fetches one task scoped to the owner; cross-owner
// ids surface as ErrNotFound.
func (r *TaskRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (model.Task, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+taskColumns+`
		FROM tasks t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = ? AND t.user_id = ?
		LIMIT 1`, id, ownerID)
	t, err := scanTask(row.Scan, todayUTC())
	if err == sql.ErrNoRows {
		return t, ErrNotFound
	}
	return t, err
}

// TaskPatch lists the columns a partial update touches. Pointer
// fields distinguish "absent" from "set"; Clear* flags carry an
// explicit JSON null for the two nullable columns.
type TaskPatch struct {
	Title         *string
	Description   *string
	Status        *string
	Priority      *string
	DueDate       *string
	ClearDueDate  bool
	CategoryID    *string
	ClearCategory bool
}

// Update applies a partial update to the owner's task. updated_at is
// refreshed on every mutation through the column's ON UPDATE clause;
// the explicit assignment below also covers no-op patches.
func (r *TaskRepo) Update(ctx context.Context, id, ownerID string, p TaskPatch) (model.Task, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if p.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *p.Status)
	}
	if p.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, *p.Priority)
	}
	if p.ClearDueDate {
		set = append(set, "due_date = NULL")
	} else if p.DueDate != nil {
		set = append(set, "due_date = ?")
		args = append(args, *p.DueDate)
	}
	if p.ClearCategory {
		set = append(set, "category_id = NULL")
	} else if p.CategoryID != nil {
		set = append(set, "category_id = ?")
		args = append(args, *p.CategoryID)
	}

	args = append(args, id, ownerID)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(set, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return model.Task{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
			return model.Task{}, err
		}
	}
	return r.GetByIDAndOwner(ctx, id, ownerID)
}

// Delete removes the owner's task.
func (r *TaskRepo) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type statRow struct {
	status   string
	priority string
	overdue  bool
}

// aggregateStats folds one scan of (status, priority, overdue) rows
// into the stats shape, zero-filling every enum key.
func aggregateStats(rows []statRow) model.TaskStats {
	stats := model.TaskStats{
		ByStatus:   make(map[string]int64, len(model.Statuses)),
		ByPriority: make(map[string]int64, len(model.Priorities)),
	}
	for _, s := range model.Statuses {
		stats.ByStatus[s] = 0
	}
	for _, p := range model.Priorities {
		stats.ByPriority[p] = 0
	}
	for _, r := range rows {
		stats.Total++
		stats.ByStatus[r.status]++
		stats.ByPriority[r.priority]++
		if r.overdue {
			stats.Overdue++
		}
	}
	return stats
}

// Stats aggregates the owner's tasks. A single SELECT feeds all four
// numbers, so total, the per-status and per-priority breakdowns and
// the overdue count always describe the same snapshot.
func (r *TaskRepo) Stats(ctx context.Context, ownerID string) (model.TaskStats, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT t.status, t.priority, "+overdueCond+" FROM tasks t WHERE t.user_id = ?",
		todayUTC(), ownerID)
	if err != nil {
		return model.TaskStats{}, err
	}
	defer rows.Close()

	var collected []statRow
	for rows.Next() {
		var (
			s  statRow
			ov int
		)
		if err := rows.Scan(&s.status, &s.priority, &ov); err != nil {
			return model.TaskStats{}, err
		}
		s.overdue = ov == 1
		collected = append(collected, s)
	}
	if err := rows.Err(); err != nil {
		return model.TaskStats{}, err
	}
	return aggregateStats(collected), nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
