package handler

import (
	"errors"
	"net/http"

	"homewares/internal/model"
	"homewares/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles payment verification requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// Verify handles POST /api/orders/{id}/verify-payment requests.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	result, err := h.service.Verify(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to verify payment", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
