// Package repository implements raw-SQL data access over MySQL plus a
// Redis store for password-reset tokens. Sentinel errors let handlers
// distinguish failure classes without inspecting driver messages; a
// row that exists but belongs to another user surfaces as the same
// not-found sentinel as a genuine absence.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row owned by the
// requesting user. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists and ErrUsernameExists map the users table uniqueness
// constraints to field-level registration failures.
var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
)

// ErrDuplicateName is returned when a category insert or rename
// collides with the owner's existing category names. Handlers
// translate this into HTTP 409.
var ErrDuplicateName = errors.New("duplicate category name")
