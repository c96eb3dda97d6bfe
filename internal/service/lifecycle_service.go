package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homewares/internal/model"
	"homewares/internal/notify"
	"homewares/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// lifecycleService implements LifecycleService.
type lifecycleService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	delivery     DeliveryService
	dispatcher   *notify.Dispatcher
	logger       zerolog.Logger
}

// NewLifecycleService creates the order lifecycle controller.
func NewLifecycleService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	delivery DeliveryService,
	dispatcher *notify.Dispatcher,
	logger zerolog.Logger,
) LifecycleService {
	return &lifecycleService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		delivery:     delivery,
		dispatcher:   dispatcher,
		logger:       logger.With().Str("service", "lifecycle").Logger(),
	}
}

// Transition moves an order to a new status. The status write and the
// history append commit in one transaction; the delivery cascade and the
// notification are side effects that run after the commit and never roll it
// back.
func (s *lifecycleService) Transition(ctx context.Context, orderID uuid.UUID, req *model.TransitionRequest) (*model.TransitionResult, error) {
	if !req.Status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	order, _, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !order.Status.CanTransition(req.Status) {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("from", string(order.Status)).
			Str("to", string(req.Status)).
			Msg("transition rejected")
		return nil, model.ErrInvalidTransition
	}

	result, err := s.applyTransition(ctx, order, req.Status, req.Notes, req.Actor)
	if err != nil {
		return nil, err
	}

	// Shipping-relevant statuses cascade into delivery tracking. The
	// transition has already committed; a cascade failure is logged and
	// surfaced nowhere else.
	if ds, ok := model.DeliveryStatusFor(req.Status); ok {
		_, err := s.delivery.UpsertStatus(ctx, orderID, &model.DeliveryUpsertRequest{
			Status: ds,
			Notes:  req.Notes,
		})
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", orderID.String()).
				Str("delivery_status", string(ds)).
				Msg("delivery cascade failed")
		}
	}

	s.emit(ctx, result.Order, req.Status)

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("from", string(order.Status)).
		Str("to", string(req.Status)).
		Msg("order transitioned")

	return result, nil
}

// BulkTransition applies Transition to each order sequentially. Failures are
// recorded per order; the remaining orders still run.
func (s *lifecycleService) BulkTransition(ctx context.Context, req *model.BulkTransitionRequest) []model.BulkTransitionItem {
	results := make([]model.BulkTransitionItem, 0, len(req.OrderIDs))

	for _, orderID := range req.OrderIDs {
		item := model.BulkTransitionItem{OrderID: orderID}

		result, err := s.Transition(ctx, orderID, &req.Update)
		if err != nil {
			item.Error = err.Error()
			s.logger.Warn().
				Err(err).
				Str("order_id", orderID.String()).
				Msg("bulk transition item failed")
		} else {
			item.Result = result
		}

		results = append(results, item)
	}

	return results
}

// AddNote appends a NOTE history row without touching the order status.
func (s *lifecycleService) AddNote(ctx context.Context, orderID uuid.UUID, notes, actor string) (*model.StatusHistory, error) {
	order, _, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	entry := &model.StatusHistory{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    model.StatusNote,
		Notes:     notes,
		Actor:     actor,
		CreatedAt: time.Now(),
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.InsertStatusHistory(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}

	s.logger.Debug().Str("order_id", orderID.String()).Msg("note added")

	return entry, nil
}

// GenerateShippingLabel computes the label artifact for an order and upserts
// its delivery tracking to LABEL_GENERATED.
func (s *lifecycleService) GenerateShippingLabel(ctx context.Context, orderID uuid.UUID) (*model.ShippingLabel, error) {
	order, items, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	productByID := make(map[string]model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	label := &model.ShippingLabel{
		OrderNumber:    order.OrderNumber,
		TrackingNumber: generateTrackingNumber(),
		CustomerName:   s.resolveName(ctx, order),
		Address:        order.ShippingAddress,
		GeneratedAt:    time.Now(),
	}

	for _, item := range items {
		p := productByID[item.ProductID]
		weight := p.WeightKg * float64(item.Quantity)
		label.Items = append(label.Items, model.LabelItem{
			ProductID: item.ProductID,
			Name:      p.Name,
			Quantity:  item.Quantity,
			WeightKg:  weight,
		})
		label.TotalWeightKg += weight
	}

	notes := fmt.Sprintf("Label generated, tracking %s", label.TrackingNumber)
	if _, err := s.delivery.UpsertStatus(ctx, orderID, &model.DeliveryUpsertRequest{
		Status: model.DeliveryLabelGenerated,
		Notes:  notes,
	}); err != nil {
		return nil, fmt.Errorf("failed to record label generation: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("tracking_number", label.TrackingNumber).
		Msg("shipping label generated")

	return label, nil
}

// CompleteReturn forces an order to RETURNED. Only the returns processor
// calls this, after an approved return; the public path rejects RETURNED.
func (s *lifecycleService) CompleteReturn(ctx context.Context, orderID uuid.UUID, notes string) (*model.TransitionResult, error) {
	order, _, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.OrderDelivered {
		return nil, model.ErrInvalidTransition
	}

	result, err := s.applyTransition(ctx, order, model.OrderReturned, notes, "returns-processor")
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID.String()).Msg("order marked returned")

	return result, nil
}

// applyTransition writes the new status and the history row in one
// transaction.
func (s *lifecycleService) applyTransition(ctx context.Context, order *model.Order, status model.OrderStatus, notes, actor string) (result *model.TransitionResult, err error) {
	if actor == "" {
		actor = "system"
	}

	entry := &model.StatusHistory{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Status:    string(status),
		Notes:     notes,
		Actor:     actor,
		CreatedAt: time.Now(),
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.UpdateStatus(ctx, tx, order.ID, status); err != nil {
		return nil, err
	}
	if err = s.orderRepo.InsertStatusHistory(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}

	updated := *order
	updated.Status = status
	updated.UpdatedAt = entry.CreatedAt

	return &model.TransitionResult{
		Order:   &updated,
		History: entry,
	}, nil
}

// emit resolves the recipient and queues the notification event for statuses
// that notify. Runs after the transition committed; nothing here can undo
// it.
func (s *lifecycleService) emit(ctx context.Context, order *model.Order, status model.OrderStatus) {
	template, ok := notify.TemplateFor(status)
	if !ok {
		return
	}

	s.dispatcher.Emit(notify.Event{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Status:      status,
		Recipient:   s.resolveRecipient(ctx, order),
		Template:    template,
	})
}

// resolveRecipient returns the notification address for an order, or empty
// when none can be resolved.
func (s *lifecycleService) resolveRecipient(ctx context.Context, order *model.Order) string {
	if order.GuestEmail != nil && *order.GuestEmail != "" {
		return *order.GuestEmail
	}
	if order.UserID == nil {
		return ""
	}

	customer, err := s.customerRepo.GetByID(ctx, *order.UserID)
	if err != nil || customer == nil {
		s.logger.Warn().
			Str("order_id", order.ID.String()).
			Msg("could not resolve notification recipient")
		return ""
	}
	return customer.Email
}

// resolveName returns the customer display name for label generation.
func (s *lifecycleService) resolveName(ctx context.Context, order *model.Order) string {
	if order.GuestName != nil && *order.GuestName != "" {
		return *order.GuestName
	}
	if order.UserID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *order.UserID)
		if err == nil && customer != nil {
			return customer.Name
		}
	}
	return "Customer"
}

// generateTrackingNumber builds an opaque carrier-style tracking number.
func generateTrackingNumber() string {
	return "TRK" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
