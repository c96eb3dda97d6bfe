package service

import (
	"context"
	"fmt"
	"time"

	"homewares/internal/model"
	"homewares/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// returnApprovalNote is the fixed history note written when an approved
// return forces the parent order to RETURNED.
const returnApprovalNote = "Return request approved"

// returnsService implements ReturnsService.
type returnsService struct {
	returnRepo  repository.ReturnRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	lifecycle   LifecycleService
	logger      zerolog.Logger
}

// NewReturnsService creates the returns processor.
func NewReturnsService(
	returnRepo repository.ReturnRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	lifecycle LifecycleService,
	logger zerolog.Logger,
) ReturnsService {
	return &returnsService{
		returnRepo:  returnRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		lifecycle:   lifecycle,
		logger:      logger.With().Str("service", "returns").Logger(),
	}
}

// Create opens a return request against a delivered order.
func (s *returnsService) Create(ctx context.Context, req *model.ReturnCreateRequest) (*model.ReturnRequest, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("return request must contain at least one item")
	}

	order, orderItems, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.OrderDelivered {
		return nil, model.ErrReturnNotEligible
	}

	itemByID := make(map[uuid.UUID]model.OrderItem, len(orderItems))
	for _, item := range orderItems {
		itemByID[item.ID] = item
	}

	now := time.Now()
	request := &model.ReturnRequest{
		ID:        uuid.New(),
		OrderID:   req.OrderID,
		Status:    model.ReturnRequested,
		Reason:    req.Reason,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, item := range req.Items {
		if _, ok := itemByID[item.OrderItemID]; !ok {
			return nil, fmt.Errorf("order item %s does not belong to order %s", item.OrderItemID, req.OrderID)
		}
		request.Items = append(request.Items, model.ReturnItem{
			ID:            uuid.New(),
			ReturnID:      request.ID,
			OrderItemID:   item.OrderItemID,
			Reason:        item.Reason,
			ConditionCode: item.ConditionCode,
		})
	}

	if err := s.returnRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create return request: %w", err)
	}

	s.logger.Info().
		Str("return_id", request.ID.String()).
		Str("order_id", req.OrderID.String()).
		Int("item_count", len(request.Items)).
		Msg("return request created")

	return request, nil
}

// Process applies a decision to a return request. Approval claims the
// request atomically, transitions the parent order to RETURNED and restores
// stock per returned item. A repeated approval finds nothing to claim and
// performs no cascade, so stock is never double-incremented.
func (s *returnsService) Process(ctx context.Context, returnID uuid.UUID, req *model.ReturnProcessRequest) (*model.ReturnRequest, error) {
	if !req.Decision.Valid() {
		return nil, model.ErrInvalidDecision
	}

	request, err := s.returnRepo.GetByID(ctx, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to load return request: %w", err)
	}
	if request == nil {
		return nil, model.ErrReturnNotFound
	}

	if req.Decision != model.DecisionApprove {
		// Non-approval decisions are a pure status write with no cascade.
		if err := s.returnRepo.UpdateStatus(ctx, returnID, req.Decision.Status(), req.Notes); err != nil {
			return nil, err
		}
		request.Status = req.Decision.Status()
		request.Description = req.Notes

		s.logger.Info().
			Str("return_id", returnID.String()).
			Str("decision", string(req.Decision)).
			Msg("return request processed")

		return request, nil
	}

	return s.approve(ctx, request, req.Notes)
}

// approve runs the approval cascade behind the idempotency claim.
func (s *returnsService) approve(ctx context.Context, request *model.ReturnRequest, notes string) (*model.ReturnRequest, error) {
	order, orderItems, err := s.orderRepo.GetByID(ctx, request.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.OrderDelivered && order.Status != model.OrderReturned {
		return nil, model.ErrInvalidTransition
	}

	claimed, err := s.returnRepo.ClaimApproval(ctx, request.ID, notes)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Already approved by an earlier call; the cascade ran then.
		s.logger.Warn().
			Str("return_id", request.ID.String()).
			Msg("return already approved, skipping cascade")
		request.Status = model.ReturnApproved
		return request, nil
	}

	if order.Status == model.OrderDelivered {
		if _, err := s.lifecycle.CompleteReturn(ctx, request.OrderID, returnApprovalNote); err != nil {
			return nil, fmt.Errorf("failed to transition order for approved return: %w", err)
		}
	}

	// Restore stock per returned order line. Increments run after the
	// approval committed; a failed increment is logged and investigated out
	// of band, it never unwinds the approval.
	itemByID := make(map[uuid.UUID]model.OrderItem, len(orderItems))
	for _, item := range orderItems {
		itemByID[item.ID] = item
	}

	for _, returnItem := range request.Items {
		orderItem, ok := itemByID[returnItem.OrderItemID]
		if !ok {
			s.logger.Error().
				Str("return_id", request.ID.String()).
				Str("order_item_id", returnItem.OrderItemID.String()).
				Msg("return item references unknown order item")
			continue
		}

		if err := s.productRepo.IncrementStock(ctx, orderItem.ProductID, orderItem.Quantity); err != nil {
			s.logger.Error().
				Err(err).
				Str("return_id", request.ID.String()).
				Str("product_id", orderItem.ProductID).
				Int("quantity", orderItem.Quantity).
				Msg("stock restore failed")
		}
	}

	request.Status = model.ReturnApproved
	request.Description = notes

	s.logger.Info().
		Str("return_id", request.ID.String()).
		Str("order_id", request.OrderID.String()).
		Msg("return request approved")

	return request, nil
}
