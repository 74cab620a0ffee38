package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category is one of the fixed catalogue sections.
type Category string

const (
	CategoryRings     Category = "rings"
	CategoryNecklaces Category = "necklaces"
	CategoryEarrings  Category = "earrings"
	CategoryBracelets Category = "bracelets"
	CategoryWatches   Category = "watches"
	CategoryBangles   Category = "bangles"
	CategoryOther     Category = "other"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryRings,
	CategoryNecklaces,
	CategoryEarrings,
	CategoryBracelets,
	CategoryWatches,
	CategoryBangles,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product defaults applied on creation.
const (
	DefaultDiscount = "0%"
	DefaultRating   = 5.0
)

// MaxPrice is the exclusive upper bound on a product price.
var MaxPrice = decimal.New(1, 10)

// Product represents an item in the catalogue.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    Category        `json:"category" db:"category"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	Discount    string          `json:"discount" db:"discount"`
	Rating      float64         `json:"rating" db:"rating"`
	Reviews     int             `json:"reviews" db:"reviews"`
	InStock     bool            `json:"inStock" db:"in_stock"`
	Featured    bool            `json:"featured" db:"featured"`
	CreatedBy   uuid.UUID       `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// Summary returns the product fields embedded in carts, wishlists and orders.
func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category,
		Discount: p.Discount,
		InStock:  p.InStock,
	}
}

// ProductSummary is a resolved product reference.
type ProductSummary struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
	Category Category        `json:"category"`
	Discount string          `json:"discount"`
	InStock  bool            `json:"inStock"`
}

// Sort directions and defaults for catalogue listing.
const (
	SortAscending   = "asc"
	SortDescending  = "desc"
	DefaultSort     = "createdAt"
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	FeaturedLimit   = 4
	CategoryLimit   = 6
)

// ProductQuery filters and pages the catalogue.
type ProductQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Sort     string
	Order    string
}

// Offset returns the number of rows to skip.
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ProductPage is one page of catalogue results.
type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// CreateProductRequest holds the form fields of a product upload.
type CreateProductRequest struct {
	Name        string          `validate:"required"`
	Description string          `validate:"required"`
	Price       decimal.Decimal
	Category    string          `validate:"required"`
	Discount    string
	InStock     *bool
	Featured    bool
}

// UpdateProductRequest edits a product. Nil fields are kept.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,min=1"`
	Discount    *string          `json:"discount"`
	Rating      *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews     *int             `json:"reviews" validate:"omitempty,gte=0"`
	InStock     *bool            `json:"inStock"`
	Featured    *bool            `json:"featured"`
}

// ProductEnvelope wraps a product with an outcome message.
type ProductEnvelope struct {
	Message string   `json:"message"`
	Product *Product `json:"product"`
}

// UpdatedProductEnvelope wraps a product after an admin edit.
type UpdatedProductEnvelope struct {
	Message        string   `json:"message"`
	UpdatedProduct *Product `json:"updatedProduct"`
}
