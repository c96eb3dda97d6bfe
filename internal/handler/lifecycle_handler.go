package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"homewares/internal/model"
	"homewares/internal/service"

	"github.com/rs/zerolog"
)

// LifecycleHandler handles order status transitions, notes and shipping
// labels.
type LifecycleHandler struct {
	service service.LifecycleService
	logger  zerolog.Logger
}

// NewLifecycleHandler creates a new lifecycle handler.
func NewLifecycleHandler(service service.LifecycleService, logger zerolog.Logger) *LifecycleHandler {
	return &LifecycleHandler{
		service: service,
		logger:  logger.With().Str("handler", "lifecycle").Logger(),
	}
}

// Transition handles POST /api/orders/{id}/transition requests.
func (h *LifecycleHandler) Transition(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req model.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Transition(r.Context(), orderID, &req)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// BulkTransition handles POST /api/orders/bulk-transition requests. The
// response always carries one item per requested order; partial failure is
// still a 200.
func (h *LifecycleHandler) BulkTransition(w http.ResponseWriter, r *http.Request) {
	var req model.BulkTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if len(req.OrderIDs) == 0 {
		writeError(w, http.StatusBadRequest, "order IDs are required", h.logger)
		return
	}

	results := h.service.BulkTransition(r.Context(), &req)
	writeJSON(w, http.StatusOK, results)
}

// AddNote handles POST /api/orders/{id}/notes requests.
func (h *LifecycleHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req struct {
		Notes string `json:"notes"`
		Actor string `json:"actor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Notes == "" {
		writeError(w, http.StatusBadRequest, "notes are required", h.logger)
		return
	}

	entry, err := h.service.AddNote(r.Context(), orderID, req.Notes, req.Actor)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add note", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// ShippingLabel handles POST /api/orders/{id}/shipping-label requests.
func (h *LifecycleHandler) ShippingLabel(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	label, err := h.service.GenerateShippingLabel(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to generate shipping label", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, label)
}

func (h *LifecycleHandler) writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order not found", h.logger)
	case errors.Is(err, model.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid order status", h.logger)
	case errors.Is(err, model.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid status transition", h.logger)
	default:
		writeError(w, http.StatusInternalServerError, "failed to transition order", h.logger)
	}
}
