package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homewares/internal/model"
	"homewares/internal/promo"
	"homewares/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	validator       promo.Validator
	discountPercent float64
	logger          zerolog.Logger
}

// NewOrderService creates a new order service. discountPercent is the flat
// discount applied to the subtotal when a valid promo code is supplied.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	validator promo.Validator,
	discountPercent float64,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		validator:       validator,
		discountPercent: discountPercent,
		logger:          logger.With().Str("service", "order").Logger(),
	}
}

// Create creates a new order with items, computed totals and the initial
// PENDING history row, all in one transaction.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	// Validate promo code if provided
	hasPromo := req.PromoCode != nil && *req.PromoCode != ""
	if hasPromo {
		if err := s.validator.Validate(ctx, *req.PromoCode); err != nil {
			s.logger.Warn().
				Str("promo_code", *req.PromoCode).
				Err(err).
				Msg("invalid promo code")
			return nil, err
		}
		s.logger.Debug().Str("promo_code", *req.PromoCode).Msg("promo code validated")
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
		s.logger.Warn().
			Int("product_count", len(productIDs)).
			Err(err).
			Msg("product validation failed")
		return nil, err
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}
	priceByID := make(map[string]float64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	now := time.Now()
	orderID := uuid.New()

	// Snapshot unit prices at purchase time; later catalogue changes never
	// alter these lines.
	items := make([]model.OrderItem, len(req.Items))
	subtotal := 0.0
	for i, item := range req.Items {
		unitPrice := priceByID[item.ProductID]
		lineTotal := unitPrice * float64(item.Quantity)
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		}
		subtotal += lineTotal
	}

	discount := 0.0
	if hasPromo {
		discount = subtotal * s.discountPercent / 100
	}

	order := &model.Order{
		ID:               orderID,
		OrderNumber:      generateOrderNumber(now),
		UserID:           req.UserID,
		GuestName:        req.GuestName,
		GuestEmail:       req.GuestEmail,
		GuestPhone:       req.GuestPhone,
		Status:           model.OrderPending,
		PaymentStatus:    model.PaymentUnpaid,
		Subtotal:         subtotal,
		Discount:         discount,
		DeliveryCost:     req.DeliveryCost,
		DeliveryLocation: req.DeliveryLocation,
		ShippingAddress:  req.ShippingAddress,
		PromoCode:        req.PromoCode,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	order.Total = order.ComputeTotal()

	initial := &model.StatusHistory{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    string(model.OrderPending),
		Notes:     "Order created",
		Actor:     "system",
		CreatedAt: now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.Create(ctx, tx, order, items, initial); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("order_number", order.OrderNumber).
		Int("item_count", len(items)).
		Float64("total", order.Total).
		Msg("order created successfully")

	return &model.OrderResponse{
		Order: *order,
		Items: items,
	}, nil
}

// GetByID retrieves an order by its ID with its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}

	return &model.OrderResponse{
		Order: *order,
		Items: items,
	}, nil
}

// History returns an order's status history, oldest first.
func (s *orderService) History(ctx context.Context, id uuid.UUID) ([]model.StatusHistory, error) {
	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	history, err := s.orderRepo.ListStatusHistory(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to list status history")
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	return history, nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}

	// Exactly one of registered customer or guest contact is set.
	hasGuest := req.GuestEmail != nil && *req.GuestEmail != ""
	if req.UserID == nil && !hasGuest {
		return fmt.Errorf("either userId or guest contact details are required")
	}
	if req.UserID != nil && hasGuest {
		return fmt.Errorf("userId and guest contact details are mutually exclusive")
	}

	if req.ShippingAddress == "" {
		return fmt.Errorf("shipping address is required")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("item %d: product ID is required", i)
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// generateOrderNumber builds a human-readable, unique order number.
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("HW-%s-%s", now.Format("20060102"), suffix)
}
