package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, description, price, category, image_url, discount,
		rating, reviews, in_stock, featured, created_by, created_at, updated_at`

// sortColumns maps the public sort fields to product columns.
var sortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"rating":    "rating",
	"reviews":   "reviews",
	"category":  "category",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.Discount,
		&p.Rating, &p.Reviews, &p.InStock, &p.Featured, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// List retrieves one filtered, sorted page and the total match count.
func (r *productRepository) List(ctx context.Context, q model.ProductQuery) ([]model.Product, int, error) {
	var (
		conditions []string
		args       []any
	)

	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if q.Category != "" {
		args = append(args, q.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	column, ok := sortColumns[q.Sort]
	if !ok {
		column = sortColumns[model.DefaultSort]
	}
	direction := "DESC"
	if q.Order == model.SortAscending {
		direction = "ASC"
	}

	args = append(args, q.Limit, q.Offset())
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		productColumns, where, column, direction, len(args)-1, len(args))

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	r.logger.Debug().
		Int("total", total).
		Int("page", q.Page).
		Int("count", len(products)).
		Msg("products listed")

	return products, total, nil
}

// ListAll retrieves every product, newest first.
func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id`)
}

// ListFeatured retrieves the most recent featured products.
func (r *productRepository) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE featured ORDER BY created_at DESC, id LIMIT $1`
	return r.queryProducts(ctx, query, limit)
}

// ListByCategory retrieves the most recent products of a category.
func (r *productRepository) ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC, id LIMIT $2`
	return r.queryProducts(ctx, query, category, limit)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// Create inserts a product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.Discount,
		p.Rating, p.Reviews, p.InStock, p.Featured, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID.String()).Msg("product created successfully")

	return nil
}

// Update persists every mutable product field.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, image_url = $6,
			discount = $7, rating = $8, reviews = $9, in_stock = $10, featured = $11,
			updated_at = $12
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL,
		p.Discount, p.Rating, p.Reviews, p.InStock, p.Featured, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product. Cart, wishlist and order lines keep their dangling reference.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
