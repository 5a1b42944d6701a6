package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/MuhsinADA/ese-backend/internal/config"
	"github.com/MuhsinADA/ese-backend/internal/model"
	"github.com/MuhsinADA/ese-backend/internal/queue"
	"github.com/MuhsinADA/ese-backend/internal/repository"
	"github.com/MuhsinADA/ese-backend/internal/service"
	"github.com/MuhsinADA/ese-backend/internal/utils"
	"github.com/MuhsinADA/ese-backend/internal/validation"
)

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Tokens   *repository.TokenRepo
	Resets   *repository.ResetRepo // nil when Redis is unavailable
	Uploader *service.ImageUploader
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo,
	r *repository.ResetRepo, up *service.ImageUploader) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Resets: r, Uploader: up}
}

// ----- DTOs -----

type registerReq struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImageURL,
		CreatedAt:    u.CreatedAt,
	}
}

// issuePair mints an access/refresh pair and stores the refresh hash.
func (h *AuthHandler) issuePair(ctx context.Context, u model.User) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashTokenRaw(refresh.Raw), refresh.Exp); err != nil {
		return authResp{}, err
	}
	return authResp{
		User:    toUserPart(u),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// Register creates an account, queues a best-effort welcome email and
// returns a token pair so the user is logged in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Username == "" {
		return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "username", Message: "username is required"}))
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "email", Message: "a valid email is required"}))
	}
	if ferr := validation.Password("password", req.Password); ferr != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(ferr))
	}
	if req.Password != req.PasswordConfirm {
		return c.JSON(http.StatusBadRequest, fieldErrors(&validation.FieldError{Field: "password_confirm", Message: "passwords do not match"}))
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, fieldErrors(&validation.FieldError{Field: "email", Message: "a user with this email already exists"}))
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusConflict, fieldErrors(&validation.FieldError{Field: "username", Message: "a user with this username already exists"}))
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	// Welcome email is fire and forget; registration succeeds either way.
	subject, html := service.WelcomeEmail(u.Username, h.Cfg.FrontendBaseURL)
	go func(to string) {
		_ = service.PublishEmail(context.Background(), queue.OutboundEmailEvent{
			Kind: queue.EmailKindWelcome, To: to, Subject: subject, HTML: html,
		})
	}(u.Email)

	resp, err := h.issuePair(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account deactivated"})
	}

	resp, err := h.issuePair(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh validates the presented refresh token by hash, revokes it
// and issues a fresh pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashTokenRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := reqCtx(c)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account deactivated"})
	}

	resp, err := h.issuePair(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes sessions. With a valid bearer token and no body it
// revokes every refresh token of the user; with a refresh_token in
// the body it revokes that single session. A request carrying neither
// credential form is rejected as unauthenticated.
func (h *AuthHandler) Logout(c echo.Context) error {
	var uid string
	if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		if sub, err := utils.ParseAccessToken(h.Cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer ")); err == nil {
			uid = sub
		}
	}

	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := reqCtx(c)
	defer cancel()

	if uid != "" && refreshToken == "" {
		if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}
	if refreshToken != "" {
		hash := utils.HashTokenRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}
	// No valid credential of either form was presented.
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
}
