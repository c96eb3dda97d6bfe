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

// deliveryService implements DeliveryService.
type deliveryService struct {
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	logger       zerolog.Logger
}

// NewDeliveryService creates the delivery tracker.
func NewDeliveryService(
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) DeliveryService {
	return &deliveryService{
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		logger:       logger.With().Str("service", "delivery").Logger(),
	}
}

// UpsertStatus creates or updates the tracking record for an order. Every
// call appends a DeliveryUpdate row, including the one that creates the
// record. DeliveredAt is set the first time the status reaches DELIVERED and
// never cleared afterwards.
func (s *deliveryService) UpsertStatus(ctx context.Context, orderID uuid.UUID, req *model.DeliveryUpsertRequest) (tracking *model.DeliveryTracking, err error) {
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

	tracking, err = s.deliveryRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load delivery tracking: %w", err)
	}

	now := time.Now()
	created := tracking == nil

	if created {
		tracking = &model.DeliveryTracking{
			ID:        uuid.New(),
			OrderID:   orderID,
			CreatedAt: now,
		}
	}

	tracking.Status = req.Status
	if req.Location != nil {
		tracking.Location = req.Location
	}
	tracking.Notes = req.Notes
	tracking.UpdatedAt = now
	if req.Status == model.DeliveryDelivered && tracking.DeliveredAt == nil {
		tracking.DeliveredAt = &now
	}

	update := &model.DeliveryUpdate{
		ID:         uuid.New(),
		TrackingID: tracking.ID,
		Status:     req.Status,
		Location:   req.Location,
		Notes:      req.Notes,
		CreatedAt:  now,
	}

	tx, err := s.deliveryRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert delivery status: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if created {
		err = s.deliveryRepo.Create(ctx, tx, tracking)
	} else {
		err = s.deliveryRepo.Update(ctx, tx, tracking)
	}
	if err != nil {
		return nil, err
	}

	// The append-only log captures every call, create and update alike.
	if err = s.deliveryRepo.InsertUpdate(ctx, tx, update); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to upsert delivery status: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", string(req.Status)).
		Bool("created", created).
		Msg("delivery status upserted")

	return tracking, nil
}

// GetByOrderID returns the tracking record and its log.
func (s *deliveryService) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.DeliveryTracking, []model.DeliveryUpdate, error) {
	tracking, err := s.deliveryRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load delivery tracking: %w", err)
	}
	if tracking == nil {
		return nil, nil, model.ErrTrackingNotFound
	}

	updates, err := s.deliveryRepo.ListUpdates(ctx, tracking.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load delivery updates: %w", err)
	}

	return tracking, updates, nil
}
