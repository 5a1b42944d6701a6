package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MuhsinADA/ese-backend/internal/model"
	"github.com/MuhsinADA/ese-backend/internal/repository"
	"github.com/MuhsinADA/ese-backend/internal/validation"
)

// CategoryHandler exposes CRUD over user-owned categories. Every
// operation is scoped to the authenticated owner; ids belonging to
// other users behave exactly like missing ids.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(r *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: r}
}

// ListCategories handles GET /v1/categories.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Categories.ListByOwner(ctx, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateCategory handles POST /v1/categories. Field rules (name
// bounds, colour format) run before the uniqueness check.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var body struct {
		Name   string `json:"name"`
		Colour string `json:"colour"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(body.Name)

	if ferr := validation.CategoryName(name); ferr != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
	}
	if body.Colour != "" {
		if ferr := validation.Colour(body.Colour); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	exists, err := h.Categories.NameExists(ctx, ownerID, name, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if exists {
		return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "name", Message: "you already have a category with this name"}))
	}

	cat := &model.Category{Name: name, Colour: body.Colour, UserID: ownerID}
	if err := h.Categories.Create(ctx, cat); err != nil {
		if err == repository.ErrDuplicateName {
			// Lost the race against a concurrent insert; same outcome
			// as the pre-check, different status.
			return c.JSON(http.StatusConflict, fieldErrors(&validation.FieldError{Field: "name", Message: "you already have a category with this name"}))
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create category"})
	}
	return c.JSON(http.StatusCreated, cat)
}

// GetCategory handles GET /v1/categories/:id.
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := h.Categories.GetByIDAndOwner(ctx, c.Param("id"), ownerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, cat)
}

// UpdateCategory handles PATCH /v1/categories/:id. Partial update:
// absent fields keep their stored values.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var body struct {
		Name   *string `json:"name"`
		Colour *string `json:"colour"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	existing, err := h.Categories.GetByIDAndOwner(ctx, c.Param("id"), ownerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	name, colour := existing.Name, existing.Colour
	if body.Name != nil {
		name = strings.TrimSpace(*body.Name)
		if ferr := validation.CategoryName(name); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
	}
	if body.Colour != nil {
		colour = *body.Colour
		if ferr := validation.Colour(colour); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
	}
	if body.Name != nil {
		exists, err := h.Categories.NameExists(ctx, ownerID, name, existing.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if exists {
			return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "name", Message: "you already have a category with this name"}))
		}
	}

	updated, err := h.Categories.Update(ctx, existing.ID, ownerID, name, colour)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		case repository.ErrDuplicateName:
			return c.JSON(http.StatusConflict, fieldErrors(&validation.FieldError{Field: "name", Message: "you already have a category with this name"}))
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteCategory handles DELETE /v1/categories/:id. Tasks in the
// category survive with their category reference cleared.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Categories.Delete(ctx, c.Param("id"), ownerID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
