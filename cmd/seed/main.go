// Command seed creates an admin account and a sample catalogue for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type sampleProduct struct {
	name        string
	description string
	price       int64
	category    model.Category
	discount    string
	featured    bool
}

var sampleProducts = []sampleProduct{
	{"Solitaire Diamond Ring", "18k white gold band with a round brilliant diamond", 45999, model.CategoryRings, "10%", true},
	{"Rose Gold Stacking Ring", "Slim rose gold ring, made to be stacked", 3499, model.CategoryRings, "0%", false},
	{"Pearl Drop Necklace", "Freshwater pearl on a fine silver chain", 5999, model.CategoryNecklaces, "5%", true},
	{"Emerald Stud Earrings", "Emerald studs set in yellow gold", 12999, model.CategoryEarrings, "0%", true},
	{"Silver Hoop Earrings", "Polished sterling silver hoops", 1999, model.CategoryEarrings, "15%", false},
	{"Tennis Bracelet", "Line of cubic zirconia in a silver setting", 8999, model.CategoryBracelets, "0%", false},
	{"Classic Leather Watch", "Stainless steel case with a brown leather strap", 14999, model.CategoryWatches, "20%", true},
	{"Kundan Bangle Set", "Set of four gold-plated kundan bangles", 4499, model.CategoryBangles, "0%", false},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	users := repository.NewUserRepository(pool, logger)
	products := repository.NewProductRepository(pool, logger)

	admin, err := ensureAdmin(ctx, users,
		getEnv("SEED_ADMIN_EMAIL", "admin@storefront.local"),
		getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	)
	if err != nil {
		return err
	}
	fmt.Printf("Admin account: %s\n", admin.Email)

	existing, err := products.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Catalogue already has %d products, skipping sample products\n", len(existing))
		return nil
	}

	now := time.Now()
	for i, sp := range sampleProducts {
		p := &model.Product{
			ID:          uuid.New(),
			Name:        sp.name,
			Description: sp.description,
			Price:       decimal.NewFromInt(sp.price),
			Category:    sp.category,
			ImageURL:    cfg.Storage.UploadsURL() + "/sample-" + string(sp.category) + ".jpg",
			Discount:    sp.discount,
			Rating:      model.DefaultRating,
			InStock:     true,
			Featured:    sp.featured,
			CreatedBy:   admin.ID,
			// Staggered so listing order is stable.
			CreatedAt: now.Add(time.Duration(i) * time.Second),
			UpdatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create %q: %w", sp.name, err)
		}
		fmt.Printf("Created %s (%s, %s)\n", p.Name, p.Category, p.Price)
	}

	fmt.Printf("\nSeeded %d sample products\n", len(sampleProducts))
	return nil
}

func ensureAdmin(ctx context.Context, users repository.UserRepository, email, password string) (*model.User, error) {
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if user != nil {
		if !user.IsAdmin {
			return nil, fmt.Errorf("%s exists but is not an admin", email)
		}
		return user, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user = &model.User{
		ID:           uuid.New(),
		Name:         "Store Admin",
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return user, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
