package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// tokenRepository implements the TokenRepository interface using PostgreSQL.
type tokenRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTokenRepository creates a new PostgreSQL-backed revocation list.
func NewTokenRepository(pool *pgxpool.Pool, logger zerolog.Logger) TokenRepository {
	return &tokenRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "token").Logger(),
	}
}

// Revoke records a token until expiresAt and prunes expired entries.
func (r *tokenRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (token, created_at, expires_at)
		VALUES ($1, NOW(), $2)
		ON CONFLICT (token) DO UPDATE SET expires_at = EXCLUDED.expires_at
	`

	if _, err := r.pool.Exec(ctx, query, token, expiresAt); err != nil {
		r.logger.Error().Err(err).Msg("failed to revoke token")
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		// The revocation itself is stored; a failed prune is retried on the next logout.
		r.logger.Warn().Err(err).Msg("failed to prune expired revocations")
		return nil
	}

	if tag.RowsAffected() > 0 {
		r.logger.Debug().Int64("pruned", tag.RowsAffected()).Msg("pruned expired revocations")
	}

	return nil
}

// IsRevoked reports whether an unexpired revocation exists for token.
func (r *tokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1 AND expires_at > NOW())`

	var revoked bool
	if err := r.pool.QueryRow(ctx, query, token).Scan(&revoked); err != nil {
		r.logger.Error().Err(err).Msg("failed to query revoked tokens")
		return false, fmt.Errorf("failed to query revoked tokens: %w", err)
	}

	return revoked, nil
}
