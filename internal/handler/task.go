package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/MuhsinADA/ese-backend/internal/model"
	"github.com/MuhsinADA/ese-backend/internal/repository"
	"github.com/MuhsinADA/ese-backend/internal/validation"
)

// TaskHandler exposes CRUD, filtering and aggregation over user-owned
// tasks.
type TaskHandler struct {
	Tasks      *repository.TaskRepo
	Categories *repository.CategoryRepo
}

func NewTaskHandler(t *repository.TaskRepo, cat *repository.CategoryRepo) *TaskHandler {
	return &TaskHandler{Tasks: t, Categories: cat}
}

// parseTaskFilter reads the list query parameters. Malformed values
// for typed parameters (overdue, date bounds) are rejected; free-form
// ones (search, ordering, status/priority membership) pass through
// and simply match nothing when nonsensical.
func parseTaskFilter(c echo.Context) (repository.TaskFilter, *validation.FieldError) {
	f := repository.TaskFilter{
		CategoryID: strings.TrimSpace(c.QueryParam("category")),
		Search:     strings.TrimSpace(c.QueryParam("search")),
		Ordering:   strings.TrimSpace(c.QueryParam("ordering")),
	}
	f.Status = splitCSV(c.QueryParam("status"))
	f.Priority = splitCSV(c.QueryParam("priority"))

	if v := strings.TrimSpace(c.QueryParam("overdue")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, &validation.FieldError{Field: "overdue", Message: "overdue must be true or false"}
		}
		f.Overdue = &b
	}
	if v := strings.TrimSpace(c.QueryParam("due_date_min")); v != "" {
		if _, err := time.Parse(model.DateLayout, v); err != nil {
			return f, &validation.FieldError{Field: "due_date_min", Message: "due_date_min must be a date in YYYY-MM-DD format"}
		}
		f.DueDateMin = v
	}
	if v := strings.TrimSpace(c.QueryParam("due_date_max")); v != "" {
		if _, err := time.Parse(model.DateLayout, v); err != nil {
			return f, &validation.FieldError{Field: "due_date_max", Message: "due_date_max must be a date in YYYY-MM-DD format"}
		}
		f.DueDateMax = v
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		f.Page = page
	} else {
		f.Page = 1
	}
	return f, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// resolveCategory checks a category assignment: the id must exist and
// belong to the owner. Both failures are field-tagged validation
// errors, not lookup misses.
func (h *TaskHandler) resolveCategory(ctx context.Context, id, ownerID string) (*validation.FieldError, error) {
	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return &validation.FieldError{Field: "category", Message: "category does not exist"}, nil
		}
		return nil, err
	}
	return validation.CategoryOwner(&cat, ownerID), nil
}

// ListTasks handles GET /v1/tasks with filtering, search, ordering
// and fixed-size pagination.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	f, ferr := parseTaskFilter(c)
	if ferr != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, total, err := h.Tasks.Search(ctx, ownerID, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     items,
		"total":     total,
		"page":      f.Page,
		"page_size": repository.PageSize,
	})
}

// CreateTask handles POST /v1/tasks. A client-supplied status is
// ignored: every task starts its lifecycle at todo.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var body struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Priority    string  `json:"priority"`
		DueDate     *string `json:"due_date"`
		Category    *string `json:"category"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	title := strings.TrimSpace(body.Title)
	today := time.Now().UTC().Format(model.DateLayout)

	// Field-level rules first.
	if ferr := validation.TaskTitle(title); ferr != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
	}
	if body.Priority != "" {
		if ferr := validation.Priority(body.Priority); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
	}
	if body.DueDate != nil {
		if ferr := validation.DueDate(*body.DueDate, true, today); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Object-level rule: the category must be the owner's.
	if body.Category != nil && *body.Category != "" {
		ferr, err := h.resolveCategory(ctx, *body.Category, ownerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
	} else {
		body.Category = nil
	}

	task := &model.Task{
		Title:       title,
		Description: body.Description,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
		CategoryID:  body.Category,
		UserID:      ownerID,
	}
	if err := h.Tasks.Create(ctx, task); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create task"})
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /v1/tasks/:id.
func (h *TaskHandler) GetTask(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	task, err := h.Tasks.GetByIDAndOwner(ctx, c.Param("id"), ownerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles PATCH /v1/tasks/:id. The body is decoded through
// a raw-message map so absent keys, explicit nulls and real values
// stay distinguishable for the two nullable columns. The transition
// engine is consulted only when the patch carries a status.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	existing, err := h.Tasks.GetByIDAndOwner(ctx, c.Param("id"), ownerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var patch repository.TaskPatch
	today := time.Now().UTC().Format(model.DateLayout)

	// Field-level rules.
	if msg, ok := raw["title"]; ok {
		var v string
		if err := json.Unmarshal(msg, &v); err != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "title", Message: "title must be a string"}))
		}
		v = strings.TrimSpace(v)
		if ferr := validation.TaskTitle(v); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
		patch.Title = &v
	}
	if msg, ok := raw["description"]; ok {
		var v string
		if err := json.Unmarshal(msg, &v); err != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "description", Message: "description must be a string"}))
		}
		patch.Description = &v
	}
	if msg, ok := raw["priority"]; ok {
		var v string
		if err := json.Unmarshal(msg, &v); err != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "priority", Message: "priority must be a string"}))
		}
		if ferr := validation.Priority(v); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
		patch.Priority = &v
	}
	var requestedStatus *string
	if msg, ok := raw["status"]; ok {
		var v string
		if err := json.Unmarshal(msg, &v); err != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "status", Message: "status must be a string"}))
		}
		if ferr := validation.Status(v); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
		requestedStatus = &v
	}
	if msg, ok := raw["due_date"]; ok {
		if string(msg) == "null" {
			patch.ClearDueDate = true
		} else {
			var v string
			if err := json.Unmarshal(msg, &v); err != nil {
				return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "due_date", Message: "due_date must be a date string or null"}))
			}
			// Past dates stay legal on update so overdue tasks remain editable.
			if ferr := validation.DueDate(v, false, today); ferr != nil {
				return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
			}
			patch.DueDate = &v
		}
	}
	var requestedCategory *string
	if msg, ok := raw["category"]; ok {
		if string(msg) == "null" {
			patch.ClearCategory = true
		} else {
			var v string
			if err := json.Unmarshal(msg, &v); err != nil {
				return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "category", Message: "category must be an id string or null"}))
			}
			requestedCategory = &v
		}
	}

	// Object-level rules after every field rule has passed.
	if requestedStatus != nil {
		if ferr := validation.StatusTransition(existing.Status, *requestedStatus); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
		patch.Status = requestedStatus
	}
	if requestedCategory != nil {
		ferr, err := h.resolveCategory(ctx, *requestedCategory, ownerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
		patch.CategoryID = requestedCategory
	}

	updated, err := h.Tasks.Update(ctx, existing.ID, ownerID, patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteTask handles DELETE /v1/tasks/:id.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Tasks.Delete(ctx, c.Param("id"), ownerID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// TaskStats handles GET /v1/tasks/stats: total, per-status and
// per-priority counts (zero-filled) and the overdue count, all from
// one snapshot of the owner's tasks.
func (h *TaskHandler) TaskStats(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	stats, err := h.Tasks.Stats(ctx, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, stats)
}
