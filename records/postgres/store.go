package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrEthical07/sessiongate"
)

// Store implements [sessiongate.RecordStore] on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Postgres-backed record store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Insert writes the durable row for a freshly issued token.
func (s *Store) Insert(ctx context.Context, rec sessiongate.Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessiongate.auth_tokens (token, user_id, created_at)
		VALUES ($1, $2, $3)
	`, rec.Token, rec.UserID, rec.CreatedAt)
	return err
}

// DeleteByToken removes the row for a revoked or evicted token. Deleting an
// absent token is not an error, which keeps revocation idempotent.
func (s *Store) DeleteByToken(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM sessiongate.auth_tokens
		WHERE token = $1
	`, token)
	return err
}
