package handler

import (
	"context"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Profile(ctx context.Context, userID uuid.UUID) (*model.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileResponse), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdateProfileResponse), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.Principal), args.Error(1)
}

func (m *MockAuthService) Authorize(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]model.UserResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserResponse), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, req *model.AdminUpdateUserRequest) (*model.UserResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserResponse), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, query model.ProductQuery) (*model.ProductPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductPage), args.Error(1)
}

func (m *MockProductService) Featured(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) ByCategory(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, creator uuid.UUID, req *model.CreateProductRequest, img *storage.Image) (*model.Product, error) {
	args := m.Called(ctx, creator, req, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) cart(args mock.Arguments) (*model.Cart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	return m.cart(m.Called(ctx, userID))
}

func (m *MockCartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error) {
	return m.cart(m.Called(ctx, userID, productID, quantity))
}

func (m *MockCartService) Update(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error) {
	return m.cart(m.Called(ctx, userID, productID, quantity))
}

func (m *MockCartService) Remove(ctx context.Context, userID, productID uuid.UUID) (*model.Cart, error) {
	return m.cart(m.Called(ctx, userID, productID))
}

func (m *MockCartService) Clear(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	return m.cart(m.Called(ctx, userID))
}

// MockWishlistService is a mock implementation of WishlistService.
type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) wishlist(args mock.Arguments) (*model.Wishlist, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wishlist), args.Error(1)
}

func (m *MockWishlistService) Get(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error) {
	return m.wishlist(m.Called(ctx, userID))
}

func (m *MockWishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*model.Wishlist, bool, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*model.Wishlist), args.Bool(1), args.Error(2)
}

func (m *MockWishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) (*model.Wishlist, error) {
	return m.wishlist(m.Called(ctx, userID, productID))
}

func (m *MockWishlistService) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistService) Clear(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error) {
	return m.wishlist(m.Called(ctx, userID))
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) order(args mock.Arguments) (*model.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) CreateSingleItem(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.Order, error) {
	return m.order(m.Called(ctx, userID, req))
}

func (m *MockOrderService) CreateFromCart(ctx context.Context, userID uuid.UUID, req *model.CreateOrderFromCartRequest) (*model.Order, error) {
	return m.order(m.Called(ctx, userID, req))
}

func (m *MockOrderService) MarkPaid(ctx context.Context, userID, orderID uuid.UUID, result *model.PaymentResult) (*model.Order, error) {
	return m.order(m.Called(ctx, userID, orderID, result))
}

func (m *MockOrderService) SubmitManualProof(ctx context.Context, userID, orderID uuid.UUID, req *model.ManualPaymentRequest) (*model.Order, error) {
	return m.order(m.Called(ctx, userID, orderID, req))
}

func (m *MockOrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	return m.order(m.Called(ctx, userID, orderID))
}

func (m *MockOrderService) SetStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error) {
	return m.order(m.Called(ctx, orderID, status))
}

func (m *MockOrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	return m.order(m.Called(ctx, userID, orderID))
}
