package service

import (
	"context"
	"fmt"

	"homewares/internal/model"
	"homewares/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// paymentService implements PaymentService.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	logger      zerolog.Logger
}

// NewPaymentService creates the payment reconciliation service.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		logger:      logger.With().Str("service", "payment").Logger(),
	}
}

// Verify checks the most recent payment attempt for the order. Only a
// COMPLETED latest attempt flips the order to PAID; anything else reports
// verified=false and leaves the order alone so a human can investigate.
func (s *paymentService) Verify(ctx context.Context, orderID uuid.UUID) (*model.VerifyResult, error) {
	order, _, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	payment, err := s.paymentRepo.LatestByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest payment: %w", err)
	}

	if payment == nil || payment.Status != model.PaymentRecordCompleted {
		s.logger.Debug().
			Str("order_id", orderID.String()).
			Bool("has_payment", payment != nil).
			Msg("payment not verified")
		return &model.VerifyResult{Verified: false, Payment: payment}, nil
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, orderID, model.PaymentPaid); err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("provider_ref", payment.ProviderRef).
		Float64("amount", payment.Amount).
		Msg("payment verified")

	return &model.VerifyResult{Verified: true, Payment: payment}, nil
}
