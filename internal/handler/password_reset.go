package handler

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MuhsinADA/ese-backend/internal/queue"
	"github.com/MuhsinADA/ese-backend/internal/repository"
	"github.com/MuhsinADA/ese-backend/internal/service"
	"github.com/MuhsinADA/ese-backend/internal/utils"
	"github.com/MuhsinADA/ese-backend/internal/validation"
)

// resetRequestedMsg is returned whether or not the email exists, so
// the endpoint cannot be used to discover accounts.
const resetRequestedMsg = "if an account with that email exists, a reset link has been sent"

// PasswordResetRequest issues a one-time reset token and queues the
// reset email. The response is identical for known and unknown
// addresses.
func (h *AuthHandler) PasswordResetRequest(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "email", Message: "email is required"}))
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Every early exit below still answers 200 with the same body.
	h.startPasswordReset(ctx, email)
	return c.JSON(http.StatusOK, echo.Map{"detail": resetRequestedMsg})
}

func (h *AuthHandler) startPasswordReset(ctx context.Context, email string) {
	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil || !u.IsActive {
		return
	}
	if h.Resets == nil {
		log.Printf("password-reset: token store unavailable, dropping request for %s", u.ID)
		return
	}
	raw, err := utils.RandomHex(32)
	if err != nil {
		return
	}
	if err := h.Resets.Store(ctx, u.ID, utils.HashTokenRaw(raw)); err != nil {
		log.Printf("password-reset: store token failed: %v", err)
		return
	}

	resetURL := h.Cfg.FrontendBaseURL + "/password-reset/confirm?token=" + raw
	subject, html := service.PasswordResetEmail(u.Username, resetURL)
	go func(to string) {
		_ = service.PublishEmail(context.Background(), queue.OutboundEmailEvent{
			Kind: queue.EmailKindPasswordReset, To: to, Subject: subject, HTML: html,
		})
	}(u.Email)
}

// PasswordResetConfirm redeems a reset token and sets the new
// password. The token is single-use; all refresh tokens of the user
// are revoked so stolen sessions die with the old password.
func (h *AuthHandler) PasswordResetConfirm(c echo.Context) error {
	var req struct {
		Token              string `json:"token"`
		NewPassword        string `json:"new_password"`
		NewPasswordConfirm string `json:"new_password_confirm"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}
	if ferr := validation.Password("new_password", req.NewPassword); ferr != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
	}
	if req.NewPassword != req.NewPasswordConfirm {
		return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "new_password_confirm", Message: "passwords do not match"}))
	}
	if h.Resets == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reset link has expired or already been used"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	userID, err := h.Resets.Consume(ctx, utils.HashTokenRaw(strings.TrimSpace(req.Token)))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reset link has expired or already been used"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
	}

	if err := h.Users.UpdatePassword(ctx, userID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
	}
	_ = h.Tokens.RevokeAllForUser(ctx, userID)

	return c.JSON(http.StatusOK, echo.Map{"detail": "password has been reset successfully"})
}
