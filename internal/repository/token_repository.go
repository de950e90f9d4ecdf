package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrTokenNotFound = errors.New("refresh token not found")

// TokenRepository persists refresh token hashes. A token is valid for as long
// as its hash row exists; revocation is deletion.
type TokenRepository struct {
	db DB
}

func NewTokenRepository(db DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Insert(ctx context.Context, tokenHash []byte, userID string) error {
	const query = `
		INSERT INTO refresh_tokens (token_hash, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (token_hash) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, tokenHash, userID)
	return translateConstraint(err)
}

func (r *TokenRepository) Find(ctx context.Context, tokenHash []byte) (string, error) {
	const query = `SELECT user_id FROM refresh_tokens WHERE token_hash = $1`
	var userID string
	if err := r.db.QueryRow(ctx, query, tokenHash).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return userID, nil
}

// Delete is idempotent; revoking an absent token is not an error.
func (r *TokenRepository) Delete(ctx context.Context, tokenHash []byte) error {
	const query = `DELETE FROM refresh_tokens WHERE token_hash = $1`
	_, err := r.db.Exec(ctx, query, tokenHash)
	return err
}

func (r *TokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM refresh_tokens WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
