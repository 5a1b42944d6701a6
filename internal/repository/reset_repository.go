package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetRepo stores password-reset tokens in Redis. Entries are keyed
// by the SHA-256 hash of the raw token, carry the user id as value,
// and expire on their own; Consume uses GETDEL so a token can be
// redeemed at most once.
type ResetRepo struct {
	RDB    *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewResetRepo(rdb *redis.Client) *ResetRepo {
	return &ResetRepo{RDB: rdb, Prefix: "pwreset", TTL: time.Hour}
}

func (r *ResetRepo) key(tokenHash string) string { return r.Prefix + ":" + tokenHash }

// Store saves the token hash for the user. Any previous reset token
// for the same user remains valid until it expires; the confirm step
// invalidates whichever one is used.
func (r *ResetRepo) Store(ctx context.Context, userID, tokenHash string) error {
	return r.RDB.Set(ctx, r.key(tokenHash), userID, r.TTL).Err()
}

// Consume redeems a token hash, deleting it atomically. Unknown or
// expired tokens return ErrNotFound.
func (r *ResetRepo) Consume(ctx context.Context, tokenHash string) (string, error) {
	userID, err := r.RDB.GetDel(ctx, r.key(tokenHash)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
