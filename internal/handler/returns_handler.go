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

// ReturnsHandler handles return request intake and processing.
type ReturnsHandler struct {
	service service.ReturnsService
	logger  zerolog.Logger
}

// NewReturnsHandler creates a new returns handler.
func NewReturnsHandler(service service.ReturnsService, logger zerolog.Logger) *ReturnsHandler {
	return &ReturnsHandler{
		service: service,
		logger:  logger.With().Str("handler", "returns").Logger(),
	}
}

// Create handles POST /api/returns requests.
func (h *ReturnsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ReturnCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	request, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found", h.logger)
		case errors.Is(err, model.ErrReturnNotEligible):
			writeError(w, http.StatusConflict, "order is not eligible for return", h.logger)
		default:
			if strings.Contains(err.Error(), "must contain") ||
				strings.Contains(err.Error(), "does not belong") {
				writeError(w, http.StatusBadRequest, err.Error(), h.logger)
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to create return request", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

// Process handles POST /api/returns/{id}/process requests.
func (h *ReturnsHandler) Process(w http.ResponseWriter, r *http.Request) {
	returnID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid return ID format", h.logger)
		return
	}

	var req model.ReturnProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	request, err := h.service.Process(r.Context(), returnID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrReturnNotFound):
			writeError(w, http.StatusNotFound, "return request not found", h.logger)
		case errors.Is(err, model.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found", h.logger)
		case errors.Is(err, model.ErrInvalidDecision):
			writeError(w, http.StatusBadRequest, "invalid decision", h.logger)
		case errors.Is(err, model.ErrInvalidTransition):
			writeError(w, http.StatusConflict, "order cannot be returned in its current status", h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to process return request", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, request)
}
