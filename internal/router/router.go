package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Order    *handler.OrderHandler
}

// Options configures the non-API parts of the router.
type Options struct {
	AllowedOrigin string
	// UploadDir is served under /uploads/ for locally stored product images.
	UploadDir string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, authenticator middleware.Authenticator, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.Authenticate(authenticator, logger)
	admin := func(next http.HandlerFunc) http.Handler {
		return authed(middleware.RequireAdmin(authenticator, logger)(next))
	}
	protected := func(next http.HandlerFunc) http.Handler {
		return authed(next)
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.Handle("GET /api/auth/profile", protected(h.Auth.Profile))
	mux.Handle("PUT /api/auth/profile", protected(h.Auth.UpdateProfile))
	mux.Handle("PUT /api/auth/change-password", protected(h.Auth.ChangePassword))
	mux.Handle("POST /api/auth/logout", protected(h.Auth.Logout))
	mux.Handle("GET /api/auth/admin-dashboard", admin(h.Auth.AdminDashboard))

	// Admin
	mux.Handle("GET /api/admin/users", admin(h.Admin.ListUsers))
	mux.Handle("PUT /api/admin/users/{id}", admin(h.Admin.UpdateUser))
	mux.Handle("DELETE /api/admin/users/{id}", admin(h.Admin.DeleteUser))
	mux.Handle("GET /api/admin/products", admin(h.Admin.ListProducts))
	mux.Handle("POST /api/admin/products", admin(h.Admin.CreateProduct))
	mux.Handle("PUT /api/admin/products/{id}", admin(h.Admin.UpdateProduct))
	mux.Handle("DELETE /api/admin/products/{id}", admin(h.Admin.DeleteProduct))

	// Catalog
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/featured", h.Product.Featured)
	mux.HandleFunc("GET /api/products/category/{categoryName}", h.Product.ByCategory)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)

	// Orders
	mux.Handle("POST /api/orders", protected(h.Order.Create))
	mux.Handle("POST /api/orders/from-cart", protected(h.Order.CreateFromCart))
	mux.Handle("GET /api/orders/my-orders", protected(h.Order.ListMine))
	mux.Handle("GET /api/orders/{id}", protected(h.Order.GetByID))
	mux.Handle("PUT /api/orders/{id}/pay", protected(h.Order.Pay))
	mux.Handle("PUT /api/orders/{id}/manual-pay", protected(h.Order.ManualPay))
	mux.Handle("PUT /api/orders/{id}/cancel", protected(h.Order.Cancel))
	mux.Handle("GET /api/orders", admin(h.Order.ListAll))
	mux.Handle("PUT /api/orders/{id}/status", admin(h.Order.SetStatus))

	// Cart
	mux.Handle("GET /api/cart", protected(h.Cart.Get))
	mux.Handle("POST /api/cart/add", protected(h.Cart.Add))
	mux.Handle("PUT /api/cart/update", protected(h.Cart.Update))
	mux.Handle("DELETE /api/cart/remove/{productId}", protected(h.Cart.Remove))
	mux.Handle("DELETE /api/cart/clear", protected(h.Cart.Clear))

	// Wishlist
	mux.Handle("GET /api/wishlist", protected(h.Wishlist.Get))
	mux.Handle("POST /api/wishlist/add", protected(h.Wishlist.Add))
	mux.Handle("DELETE /api/wishlist/remove/{productId}", protected(h.Wishlist.Remove))
	mux.Handle("GET /api/wishlist/check/{productId}", protected(h.Wishlist.Check))
	mux.Handle("DELETE /api/wishlist/clear", protected(h.Wishlist.Clear))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(opts.AllowedOrigin)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
