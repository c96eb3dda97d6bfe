package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"homewares/internal/model"
	"homewares/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order intake and read requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		message := "failed to create order"

		switch {
		case errors.Is(err, model.ErrInvalidPromoCode), errors.Is(err, model.ErrInvalidPromoLength):
			status = http.StatusBadRequest
			message = "invalid promo code"
		case errors.Is(err, model.ErrProductNotFound):
			status = http.StatusBadRequest
			message = "one or more products not found"
		case errors.Is(err, model.ErrInvalidQuantity):
			status = http.StatusBadRequest
			message = "invalid quantity"
		default:
			if strings.Contains(err.Error(), "required") ||
				strings.Contains(err.Error(), "must contain") ||
				strings.Contains(err.Error(), "mutually exclusive") ||
				strings.Contains(err.Error(), "nil") {
				status = http.StatusBadRequest
				message = err.Error()
			}
		}

		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}

	if order == nil {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// History handles GET /api/orders/{id}/history requests.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	history, err := h.service.History(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve order history", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, history)
}
