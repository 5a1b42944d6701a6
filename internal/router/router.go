package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/MuhsinADA/ese-backend/internal/handler"    // import the handlers that implement business logic
	"github.com/MuhsinADA/ese-backend/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth;
// the account endpoints in the same group require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, token exchange and
	// the password-reset flow).
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to exchange a refresh token for a new pair
	// at /v1/auth/token/refresh.  This rotates the refresh token.
	g.POST("/token/refresh", a.Refresh)
	// Logout accepts either a bearer token (revokes every session) or a
	// JSON body containing a `refresh_token` (revokes that session only),
	// so it stays outside the authenticated group.
	g.POST("/logout", a.Logout)
	// The password-reset flow is anonymous by nature: the request endpoint
	// answers identically whether or not the address is registered, and the
	// confirm endpoint authenticates through the single-use token itself.
	g.POST("/password-reset", a.PasswordResetRequest)
	g.POST("/password-reset/confirm", a.PasswordResetConfirm)

	// Create another group for the account endpoints that require a valid
	// access token.  All handlers registered on this group will execute the
	// JWTAuth middleware before being invoked.
	auth := e.Group("/v1/auth")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Register a GET endpoint at /v1/auth/profile that returns the
	// authenticated user's information.
	auth.GET("/profile", a.Profile)
	// Partial profile updates (currently the bio) go through PATCH.
	auth.PATCH("/profile", a.UpdateProfile)
	// Multipart upload of a new profile image.
	auth.POST("/profile/upload-image", a.UploadImage)
	// Password change for an authenticated session.
	auth.POST("/change-password", a.ChangePassword)
}

// RegisterResources registers the category and task endpoints under /v1.
// Every route requires a valid access token; the optional extra middleware
// (rate limiting, response caching) is applied to the whole group.
func RegisterResources(e *echo.Echo, cat *handler.CategoryHandler, task *handler.TaskHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1")
	// Apply the JWTAuth middleware so every resource handler sees a user id.
	g.Use(middleware.JWTAuth(jwtSecret))
	for _, m := range extra {
		g.Use(m)
	}

	// Category CRUD.  Categories are scoped to their owner, so a foreign id
	// behaves exactly like a missing one.
	g.GET("/categories", cat.ListCategories)
	g.POST("/categories", cat.CreateCategory)
	g.GET("/categories/:id", cat.GetCategory)
	g.PATCH("/categories/:id", cat.UpdateCategory)
	g.DELETE("/categories/:id", cat.DeleteCategory)

	// Task endpoints.  The stats route must be registered before the :id
	// routes so "stats" is never captured as a task id.
	g.GET("/tasks/stats", task.TaskStats)
	g.GET("/tasks", task.ListTasks)
	g.POST("/tasks", task.CreateTask)
	g.GET("/tasks/:id", task.GetTask)
	g.PATCH("/tasks/:id", task.UpdateTask)
	g.DELETE("/tasks/:id", task.DeleteTask)
}
