package handler

import (
	"errors"
	"net/http"
	"time"

	"homewares/internal/model"
	"homewares/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler handles reporting requests.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// Get handles GET /api/reports/{kind} requests. Optional from/to query
// parameters (RFC 3339) bound the sales and financial reports.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind := model.ReportKind(r.PathValue("kind"))

	dateRange, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	report, err := h.service.Report(r.Context(), kind, dateRange)
	if err != nil {
		if errors.Is(err, model.ErrInvalidReportKind) {
			writeError(w, http.StatusBadRequest, "unknown report kind", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to generate report", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func parseDateRange(r *http.Request) (model.DateRange, error) {
	var dr model.DateRange

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return dr, errors.New("invalid from date, expected RFC 3339")
		}
		dr.From = t
	}

	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return dr, errors.New("invalid to date, expected RFC 3339")
		}
		dr.To = t
	}

	return dr, nil
}
