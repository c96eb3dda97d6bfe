package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"homewares/internal/model"
	"homewares/internal/service"

	"github.com/rs/zerolog"
)

// DeliveryHandler handles delivery tracking requests.
type DeliveryHandler struct {
	service service.DeliveryService
	logger  zerolog.Logger
}

// NewDeliveryHandler creates a new delivery handler.
func NewDeliveryHandler(service service.DeliveryService, logger zerolog.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		service: service,
		logger:  logger.With().Str("handler", "delivery").Logger(),
	}
}

// Upsert handles POST /api/orders/{id}/delivery requests.
func (h *DeliveryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req model.DeliveryUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	tracking, err := h.service.UpsertStatus(r.Context(), orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found", h.logger)
		case errors.Is(err, model.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid delivery status", h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to update delivery tracking", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, tracking)
}

// Get handles GET /api/orders/{id}/delivery requests.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	tracking, updates, err := h.service.GetByOrderID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, model.ErrTrackingNotFound) || errors.Is(err, model.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "delivery tracking not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve delivery tracking", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracking": tracking,
		"updates":  updates,
	})
}
