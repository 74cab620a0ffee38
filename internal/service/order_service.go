package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// CreateSingleItem checks out one product at its current price.
func (s *orderService) CreateSingleItem(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.Order, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, model.ErrInvalidProductID
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	if !product.InStock {
		return nil, model.ErrOutOfStock
	}

	order := s.newOrder(userID, *req.ShippingAddress, req.PaymentMethod)
	order.Items = []model.OrderItem{{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ProductID: product.ID,
		Product:   product.Summary(),
		Quantity:  quantity,
		Price:     product.Price,
	}}
	order.TotalPrice = product.Price.Mul(decimal.NewFromInt(int64(quantity)))

	if err := s.persist(ctx, order, nil); err != nil {
		return nil, err
	}

	return order, nil
}

// CreateFromCart checks out the whole cart. The cart row stays locked until the
// order is written and the cart emptied, all in one transaction.
func (s *orderService) CreateFromCart(ctx context.Context, userID uuid.UUID, req *model.CreateOrderFromCartRequest) (*model.Order, error) {
	order := s.newOrder(userID, *req.ShippingAddress, req.PaymentMethod)

	err := s.persist(ctx, order, func(cart *model.Cart) error {
		if cart == nil || len(cart.Items) == 0 {
			return model.ErrCartEmpty
		}

		var unavailable []string
		for _, item := range cart.Items {
			switch {
			case item.Product == nil:
				unavailable = append(unavailable, item.ProductID.String())
			case !item.Product.InStock:
				unavailable = append(unavailable, item.Product.Name)
			}
		}
		if len(unavailable) > 0 {
			return model.NewDomainError(model.ErrCodeOutOfStock,
				"Some items are out of stock: "+strings.Join(unavailable, ", "))
		}

		total := decimal.Zero
		order.Items = make([]model.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			order.Items = append(order.Items, model.OrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Product:   item.Product,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		order.TotalPrice = total
		order.ShippingFee = model.ShippingFeeFor(total)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderService) newOrder(userID uuid.UUID, address model.ShippingAddress, paymentMethod string) *model.Order {
	now := time.Now()
	return &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		TotalPrice:      decimal.Zero,
		ShippingFee:     decimal.Zero,
		Status:          model.OrderStatusProcessing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// persist writes order and its items in one transaction. When fromCart is set the
// caller's cart is locked and handed to it before the write, and emptied after.
func (s *orderService) persist(ctx context.Context, order *model.Order, fromCart func(*model.Cart) error) error {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var cart *model.Cart
	if fromCart != nil {
		cart, err = s.cartRepo.GetForUpdate(ctx, tx, order.UserID)
		if err != nil {
			err = fmt.Errorf("failed to create order: %w", err)
			return err
		}
		if err = fromCart(cart); err != nil {
			s.logger.Debug().Err(err).Str("user_id", order.UserID.String()).Msg("cart checkout rejected")
			return err
		}
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		err = fmt.Errorf("failed to create order: %w", err)
		return err
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(order.Items)).
			Msg("failed to create order items")
		err = fmt.Errorf("failed to create order items: %w", err)
		return err
	}

	if cart != nil {
		if err = s.cartRepo.ClearTx(ctx, tx, cart.ID); err != nil {
			err = fmt.Errorf("failed to create order: %w", err)
			return err
		}
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		err = fmt.Errorf("failed to create order: %w", err)
		return err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", order.UserID.String()).
		Int("item_count", len(order.Items)).
		Bool("from_cart", fromCart != nil).
		Str("total_price", order.TotalPrice.String()).
		Msg("order created successfully")

	return nil
}

// MarkPaid records a provider payment and confirms the order from any status.
func (s *orderService) MarkPaid(ctx context.Context, userID, orderID uuid.UUID, result *model.PaymentResult) (*model.Order, error) {
	order, err := s.loadOwned(ctx, userID, orderID, model.ErrOrderUpdateDenied)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = result
	order.Status = model.OrderStatusConfirmed

	return s.save(ctx, order)
}

// SubmitManualProof records proof of a UPI payment. The order stays processing until an admin reviews it.
func (s *orderService) SubmitManualProof(ctx context.Context, userID, orderID uuid.UUID, req *model.ManualPaymentRequest) (*model.Order, error) {
	order, err := s.loadOwned(ctx, userID, orderID, model.ErrOrderUpdateDenied)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, model.ErrAlreadyPaid
	}

	proof := strings.TrimSpace(req.TransactionID)
	if proof == "" {
		proof = strings.TrimSpace(req.ScreenshotURL)
	}
	if proof == "" {
		return nil, model.ErrProofRequired
	}

	order.PaymentMethod = model.PaymentMethodUPI
	order.PaymentProof = &proof
	order.Status = model.OrderStatusProcessing

	return s.save(ctx, order)
}

// Cancel cancels an order that has not shipped.
func (s *orderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.loadOwned(ctx, userID, orderID, model.ErrOrderCancelDenied)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, model.ErrInvalidTransition
	}

	order.Status = model.OrderStatusCancelled

	return s.save(ctx, order)
}

// SetStatus moves an order to any status. Delivery also stamps the delivery fields.
func (s *orderService) SetStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error) {
	next := model.OrderStatus(status)
	if !next.Valid() {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = next
	if next == model.OrderStatusDelivered {
		now := time.Now()
		order.IsDelivered = true
		order.DeliveredAt = &now
	}

	return s.save(ctx, order)
}

// ListMine returns the caller's orders, newest first.
func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order, newest first.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID returns an order to its owner or an admin.
func (s *orderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == userID {
		return order, nil
	}

	caller, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if caller == nil || !caller.IsAdmin {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("user_id", userID.String()).
			Msg("order access denied")
		return nil, model.ErrOrderViewDenied
	}

	return order, nil
}

func (s *orderService) load(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// loadOwned loads an order and fails with denied unless userID owns it.
func (s *orderService) loadOwned(ctx context.Context, userID, orderID uuid.UUID, denied error) (*model.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("user_id", userID.String()).
			Msg("order owned by another user")
		return nil, denied
	}
	return order, nil
}

func (s *orderService) save(ctx context.Context, order *model.Order) (*model.Order, error) {
	order.UpdatedAt = time.Now()
	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, wrapUnexpected("update order", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Bool("is_paid", order.IsPaid).
		Msg("order updated")

	return order, nil
}
