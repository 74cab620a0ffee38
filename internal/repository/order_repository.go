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

const orderSelect = `
	SELECT o.id, o.user_id, o.shipping_address, o.shipping_city, o.shipping_postal_code,
		o.shipping_country, o.payment_method, o.payment_result_id, o.payment_result_status,
		o.payment_result_update, o.payment_result_email, o.total_price, o.shipping_fee,
		o.is_paid, o.paid_at, o.is_delivered, o.delivered_at, o.status, o.payment_proof,
		o.created_at, o.updated_at,
		u.id IS NOT NULL, COALESCE(u.name, ''), COALESCE(u.email, '')
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, user_id, shipping_address, shipping_city, shipping_postal_code, shipping_country,
			payment_method, total_price, shipping_fee, is_paid, is_delivered, status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.ShippingAddress.Address,
		order.ShippingAddress.City,
		order.ShippingAddress.PostalCode,
		order.ShippingAddress.Country,
		order.PaymentMethod,
		order.TotalPrice,
		order.ShippingFee,
		order.IsPaid,
		order.IsDelivered,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for i, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price, i)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID.String()).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order with its items, products and owner.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	orders := []model.Order{*order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, orderSelect+` WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id`, userID)
}

// ListAll retrieves every order with owners, newest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, orderSelect+` ORDER BY o.created_at DESC, o.id`)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	rows.Close()

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachItems loads the line items of every order in one query.
func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []model.OrderItem{}
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
			p.id IS NOT NULL, COALESCE(p.name, ''), COALESCE(p.price, 0),
			COALESCE(p.image_url, ''), COALESCE(p.category, ''),
			COALESCE(p.discount, ''), COALESCE(p.in_stock, FALSE)
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.position
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("orders", len(ids)).Msg("failed to query order items")
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item     model.OrderItem
			resolved bool
			summary  model.ProductSummary
		)
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&resolved, &summary.Name, &summary.Price, &summary.ImageURL,
			&summary.Category, &summary.Discount, &summary.InStock,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if resolved {
			summary.ID = item.ProductID
			item.Product = &summary
		}
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return fmt.Errorf("error iterating order items: %w", err)
	}

	return nil
}

// UpdateStatus persists the payment, delivery and status fields of an order.
func (r *orderRepository) UpdateStatus(ctx context.Context, order *model.Order) error {
	query := `
		UPDATE orders
		SET payment_method = $2, payment_result_id = $3, payment_result_status = $4,
			payment_result_update = $5, payment_result_email = $6, is_paid = $7, paid_at = $8,
			is_delivered = $9, delivered_at = $10, status = $11, payment_proof = $12,
			updated_at = $13
		WHERE id = $1
	`

	var resultID, resultStatus, resultUpdate, resultEmail *string
	if pr := order.PaymentResult; pr != nil {
		resultID, resultStatus, resultUpdate, resultEmail = &pr.ID, &pr.Status, &pr.UpdateTime, &pr.EmailAddress
	}

	tag, err := r.pool.Exec(ctx, query,
		order.ID,
		order.PaymentMethod,
		resultID,
		resultStatus,
		resultUpdate,
		resultEmail,
		order.IsPaid,
		order.PaidAt,
		order.IsDelivered,
		order.DeliveredAt,
		order.Status,
		order.PaymentProof,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("order updated")

	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o                                              model.Order
		resultID, resultStatus, resultUpdate, resultEm *string
		hasUser                                        bool
		user                                           model.UserSummary
	)

	err := row.Scan(
		&o.ID, &o.UserID, &o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country, &o.PaymentMethod,
		&resultID, &resultStatus, &resultUpdate, &resultEm,
		&o.TotalPrice, &o.ShippingFee, &o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt,
		&o.Status, &o.PaymentProof, &o.CreatedAt, &o.UpdatedAt,
		&hasUser, &user.Name, &user.Email,
	)
	if err != nil {
		return nil, err
	}

	if resultID != nil {
		o.PaymentResult = &model.PaymentResult{
			ID:           *resultID,
			Status:       deref(resultStatus),
			UpdateTime:   deref(resultUpdate),
			EmailAddress: deref(resultEm),
		}
	}
	if hasUser {
		user.ID = o.UserID
		o.User = &user
	}

	return &o, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
