package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	images      storage.Store
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, images storage.Store, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns one filtered, sorted page of the catalogue.
func (s *productService) List(ctx context.Context, q model.ProductQuery) (*model.ProductPage, error) {
	if q.Page < 1 {
		q.Page = model.DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = model.DefaultPageSize
	}
	if q.Limit > model.MaxPageSize {
		q.Limit = model.MaxPageSize
	}
	// The row offset must fit an int.
	if q.Page > math.MaxInt/q.Limit {
		return nil, model.ErrInvalidPage
	}
	if q.Sort == "" {
		q.Sort = model.DefaultSort
	}
	if q.Order != model.SortAscending {
		q.Order = model.SortDescending
	}
	q.Search = strings.TrimSpace(q.Search)

	products, total, err := s.productRepo.List(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", q.Page).
			Int("limit", q.Limit).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return &model.ProductPage{
		Products:   products,
		Total:      total,
		Page:       q.Page,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}, nil
}

// Featured returns the newest featured products.
func (s *productService) Featured(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListFeatured(ctx, model.FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured products: %w", err)
	}
	return products, nil
}

// ByCategory returns the newest products of a category.
func (s *productService) ByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.productRepo.ListByCategory(ctx, category, model.CategoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by category: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// ListAll returns the whole catalogue unpaginated.
func (s *productService) ListAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// Create stores the image and inserts a product owned by creator.
func (s *productService) Create(ctx context.Context, creator uuid.UUID, req *model.CreateProductRequest, img *storage.Image) (*model.Product, error) {
	if img == nil {
		return nil, model.ErrImageRequired
	}
	category := model.Category(req.Category)
	if !category.Valid() {
		return nil, model.ErrInvalidCategory
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	imageURL, err := s.images.Save(ctx, *img)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", img.Filename).Msg("failed to store product image")
		return nil, fmt.Errorf("failed to upload product image: %w", err)
	}

	now := time.Now()
	product := &model.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Category:    category,
		ImageURL:    imageURL,
		Discount:    model.DefaultDiscount,
		Rating:      model.DefaultRating,
		InStock:     true,
		Featured:    req.Featured,
		CreatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Discount != "" {
		product.Discount = req.Discount
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("created_by", creator.String()).
		Msg("product created")

	return product, nil
}

// Update edits a product. Nil request fields are kept.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		product.Price = *req.Price
	}
	if req.Category != nil {
		category := model.Category(*req.Category)
		if !category.Valid() {
			return nil, model.ErrInvalidCategory
		}
		product.Category = category
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.Reviews != nil {
		product.Reviews = *req.Reviews
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, wrapUnexpected("update product", err)
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product updated")

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")

	return nil
}

// validatePrice checks a price fits the catalogue's NUMERIC(12,2) column.
func validatePrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return model.ErrNegativePrice
	case price.GreaterThanOrEqual(model.MaxPrice):
		return model.ErrPriceTooHigh
	case !price.Equal(price.Round(2)):
		return model.ErrPricePrecision
	}
	return nil
}
