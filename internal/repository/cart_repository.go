package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Lines keep their dangling product reference; resolved reports whether the product still exists.
const cartItemsQuery = `
	SELECT ci.product_id, ci.quantity, p.id IS NOT NULL AS resolved,
		COALESCE(p.name, ''), COALESCE(p.price, 0), COALESCE(p.image_url, ''),
		COALESCE(p.category, ''), COALESCE(p.discount, ''), COALESCE(p.in_stock, FALSE)
	FROM cart_items ci
	LEFT JOIN products p ON p.id = ci.product_id
	WHERE ci.cart_id = $1
	ORDER BY ci.position
`

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Get retrieves the user's cart with resolved products.
func (r *cartRepository) Get(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	return r.load(ctx, r.pool, `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`, userID)
}

// GetForUpdate locks the user's cart row within tx and returns it.
func (r *cartRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error) {
	return r.load(ctx, tx, `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *cartRepository) load(ctx context.Context, q querier, cartQuery string, userID uuid.UUID) (*model.Cart, error) {
	var (
		cart      model.Cart
		createdAt time.Time
		updatedAt time.Time
	)
	err := q.QueryRow(ctx, cartQuery, userID).Scan(&cart.ID, &cart.UserID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", userID.String()).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	cart.CreatedAt = &createdAt
	cart.UpdatedAt = &updatedAt

	rows, err := q.Query(ctx, cartItemsQuery, cart.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	cart.Items = []model.CartItem{}
	for rows.Next() {
		var (
			item     model.CartItem
			resolved bool
			summary  model.ProductSummary
		)
		err := rows.Scan(&item.ProductID, &item.Quantity, &resolved,
			&summary.Name, &summary.Price, &summary.ImageURL,
			&summary.Category, &summary.Discount, &summary.InStock,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		if resolved {
			summary.ID = item.ProductID
			item.Product = &summary
		}
		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	cart.Total = cart.ComputeTotal()

	return &cart, nil
}

// AddItem creates the cart if needed and merges quantity into the product's line
// in a single statement.
func (r *cartRepository) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	query := `
		WITH cart AS (
			INSERT INTO carts (id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
			RETURNING id
		)
		INSERT INTO cart_items (cart_id, product_id, quantity)
		SELECT id, $3, $4 FROM cart
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	_, err := r.pool.Exec(ctx, query, uuid.New(), userID, productID, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("product_id", productID.String()).
			Msg("failed to add cart item")
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// SetQuantity replaces a line's quantity.
func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items ci
		SET quantity = $3
		FROM carts c
		WHERE c.id = ci.cart_id AND c.user_id = $1 AND ci.product_id = $2
	`

	return r.mutateLine(ctx, "update cart item", query, userID, productID, quantity)
}

// RemoveItem deletes a line.
func (r *cartRepository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE c.id = ci.cart_id AND c.user_id = $1 AND ci.product_id = $2
	`

	return r.mutateLine(ctx, "remove cart item", query, userID, productID)
}

// mutateLine runs a single-line statement under the cart row lock that checkout
// also takes, and tells a missing cart apart from a missing line.
func (r *cartRepository) mutateLine(ctx context.Context, action, query string, userID, productID uuid.UUID, extra ...any) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	var cartID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCartNotFound
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to lock cart")
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	args := append([]any{userID, productID}, extra...)
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to " + action)
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to touch cart")
		return fmt.Errorf("failed to touch cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to commit " + action)
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	return nil
}

// Clear empties the cart but keeps it.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	var cartID uuid.UUID
	err := r.pool.QueryRow(ctx,
		`UPDATE carts SET updated_at = NOW() WHERE user_id = $1 RETURNING id`, userID,
	).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCartNotFound
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// ClearTx empties the cart within tx.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to touch cart")
		return fmt.Errorf("failed to touch cart: %w", err)
	}

	return nil
}
