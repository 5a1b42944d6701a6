package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MuhsinADA/ese-backend/internal/service"
	"github.com/MuhsinADA/ese-backend/internal/utils"
	"github.com/MuhsinADA/ese-backend/internal/validation"
)

// Profile returns the authenticated user's profile.
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// UpdateProfile applies a partial profile update. Username and email
// are immutable; bio is the only writable field here.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req struct {
		Bio *string `json:"bio"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if req.Bio != nil {
		if ferr := validation.Bio(*req.Bio); ferr != nil {
			return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
		}
		if err := h.Users.UpdateBio(ctx, uid, *req.Bio); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// ChangePassword requires the current password before setting a new one.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req struct {
		OldPassword        string `json:"old_password"`
		NewPassword        string `json:"new_password"`
		NewPasswordConfirm string `json:"new_password_confirm"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if ferr := validation.Password("new_password", req.NewPassword); ferr != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
	}
	if req.NewPassword != req.NewPasswordConfirm {
		return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "new_password_confirm", Message: "new passwords do not match"}))
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.OldPassword) {
		return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "old_password", Message: "current password is incorrect"}))
	}
	if err := h.Users.UpdatePassword(ctx, uid, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": "password changed successfully"})
}

// UploadImage accepts a multipart image, uploads it to the image host
// and stores the resulting URL on the profile. Validation problems
// are the caller's fault (400); delivery problems are retryable (502).
func (h *AuthHandler) UploadImage(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no image file provided"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read image file"})
	}
	defer src.Close()

	// The upload talks to an external host and may legitimately take
	// longer than a database call; the uploader's client enforces its
	// own timeout.
	url, err := h.Uploader.Upload(c.Request().Context(), src, fh.Header.Get("Content-Type"), fh.Size, uid)
	if err != nil {
		var verr *service.ImageValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "image", Message: verr.Reason}))
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "image upload failed, please try again later"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Users.UpdateProfileImage(ctx, uid, url); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"profile_image": url,
		"detail":        "profile image uploaded successfully",
	})
}
