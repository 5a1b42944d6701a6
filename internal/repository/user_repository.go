package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MuhsinADA/ese-backend/internal/model"
	"github.com/MuhsinADA/ese-backend/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,email,password_hash,bio,profile_image_url,is_active,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Bio,
		&u.ProfileImageURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// Create inserts a user with a fresh UUID and returns the stored row.
// MySQL duplicate-key errors (1062) are mapped to the field the unique
// index covers.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash) VALUES (?,?,?,?)",
		id, username, email, hash)
	if err != nil {
		if msg := strings.ToLower(err.Error()); strings.Contains(msg, "1062") {
			if strings.Contains(msg, "email") {
				return model.User{}, ErrEmailExists
			}
			return model.User{}, ErrUsernameExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByUsername fetches a user for login.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email))))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// UpdateBio replaces the profile blurb.
func (r *UserRepo) UpdateBio(ctx context.Context, id, bio string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET bio=?, updated_at=? WHERE id=?", bio, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can also mean an identical bio; verify existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// UpdateProfileImage stores the hosted image URL on the profile.
func (r *UserRepo) UpdateProfileImage(ctx context.Context, id, url string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET profile_image_url=?, updated_at=? WHERE id=?", url, time.Now().UTC(), id)
	return err
}

// UpdatePassword replaces the credential hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=? WHERE id=?", hash, time.Now().UTC(), id)
	return err
}
