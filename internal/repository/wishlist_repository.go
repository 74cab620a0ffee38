package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// wishlistRepository implements the WishlistRepository interface using PostgreSQL.
type wishlistRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

// Get retrieves the user's wishlist. Products that no longer exist are left out.
func (r *wishlistRepository) Get(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error) {
	var wishlist model.Wishlist
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id FROM wishlists WHERE user_id = $1`, userID,
	).Scan(&wishlist.ID, &wishlist.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", userID.String()).Msg("wishlist not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}

	query := `
		SELECT p.id, p.name, p.price, p.image_url, p.category, p.discount, p.in_stock
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.wishlist_id = $1
		ORDER BY wi.position
	`

	rows, err := r.pool.Query(ctx, query, wishlist.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", wishlist.ID.String()).Msg("failed to query wishlist items")
		return nil, fmt.Errorf("failed to query wishlist items: %w", err)
	}
	defer rows.Close()

	wishlist.Items = []model.ProductSummary{}
	for rows.Next() {
		var p model.ProductSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL, &p.Category, &p.Discount, &p.InStock); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan wishlist item row")
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		wishlist.Items = append(wishlist.Items, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating wishlist item rows")
		return nil, fmt.Errorf("error iterating wishlist items: %w", err)
	}

	return &wishlist, nil
}

// AddItem creates the wishlist if needed and adds the product.
func (r *wishlistRepository) AddItem(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	query := `
		WITH wishlist AS (
			INSERT INTO wishlists (id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
			RETURNING id
		)
		INSERT INTO wishlist_items (wishlist_id, product_id)
		SELECT id, $3 FROM wishlist
		ON CONFLICT (wishlist_id, product_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, uuid.New(), userID, productID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("product_id", productID.String()).
			Msg("failed to add wishlist item")
		return false, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// RemoveItem deletes a product from the wishlist.
func (r *wishlistRepository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	query := `
		DELETE FROM wishlist_items wi
		USING wishlists w
		WHERE w.id = wi.wishlist_id AND w.user_id = $1 AND wi.product_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to remove wishlist item")
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wishlists WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query wishlist")
		return fmt.Errorf("failed to query wishlist: %w", err)
	}
	if !exists {
		return model.ErrWishlistNotFound
	}
	return model.ErrWishlistItemAbsent
}

// Contains reports whether the product is saved.
func (r *wishlistRepository) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM wishlist_items wi
			JOIN wishlists w ON w.id = wi.wishlist_id
			WHERE w.user_id = $1 AND wi.product_id = $2
		)
	`

	var found bool
	if err := r.pool.QueryRow(ctx, query, userID, productID).Scan(&found); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to check wishlist")
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}

	return found, nil
}

// Clear empties the wishlist but keeps it.
func (r *wishlistRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	var wishlistID uuid.UUID
	err := r.pool.QueryRow(ctx,
		`UPDATE wishlists SET updated_at = NOW() WHERE user_id = $1 RETURNING id`, userID,
	).Scan(&wishlistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrWishlistNotFound
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear wishlist")
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE wishlist_id = $1`, wishlistID); err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", wishlistID.String()).Msg("failed to clear wishlist")
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}

	return nil
}
