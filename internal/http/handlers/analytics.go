package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/logx"
)

// AnalyticsHandler handles HTTP requests for assignment analytics.
type AnalyticsHandler struct {
	usecase analyticsUsecase
	logger  logx.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(logger logx.Logger, uc analyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{usecase: uc, logger: logger}
}

// Assignments handles GET /analytics/assignments. The optional window query
// parameter takes a Go duration ("1h", "30m"); default is 24h.
func (h *AnalyticsHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	var window time.Duration
	if raw := strings.TrimSpace(r.URL.Query().Get("window")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid window")
			return
		}
		window = d
	}

	report, err := h.usecase.Report(r.Context(), window)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, reportToResponse(report))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
