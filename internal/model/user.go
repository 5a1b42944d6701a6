package model

import "time"

// User mirrors a row of the `users` table. Primary keys are UUID strings
// so that identifiers exposed over the API cannot be enumerated
// sequentially. The password hash never leaves the repository layer;
// handlers build their own response types.
//
// Fields:
//  ID              - UUID primary key (CHAR(36)).
//  Username        - unique login name.
//  Email           - unique address, stored lowercase.
//  PasswordHash    - bcrypt hash of the password.
//  Bio             - optional free-text profile blurb (<=500 chars).
//  ProfileImageURL - URL of the hosted profile image, empty if none.
//  IsActive        - deactivated accounts cannot log in.
//  CreatedAt       - timestamp of registration.
//  UpdatedAt       - timestamp of last profile mutation.
type User struct {
	ID              string    // users.id
	Username        string    // users.username
	Email           string    // users.email
	PasswordHash    string    // users.password_hash
	Bio             string    // users.bio
	ProfileImageURL string    // users.profile_image_url
	IsActive        bool      // users.is_active
	CreatedAt       time.Time // users.created_at
	UpdatedAt       time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is persisted; the raw value is returned
// to the client exactly once at issue time.
//
// Fields:
//  ID        - primary key identifier.
//  UserID    - owner of the token.
//  TokenHash - SHA-256 hex digest of the token value.
//  ExpiresAt - expiration timestamp.
//  RevokedAt - when the token was revoked (null while active).
//  CreatedAt - timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    string     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
