package handlers

import (
	"errors"
	"net/http"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

// DispatchHandler handles HTTP requests for dispatch operations.
type DispatchHandler struct {
	usecase dispatchUsecase
	logger  logx.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(logger logx.Logger, uc dispatchUsecase) *DispatchHandler {
	return &DispatchHandler{usecase: uc, logger: logger}
}

// Dispatch handles POST /dispatch. Idempotent: repeating the call for an
// order with a running cycle returns that cycle's status.
func (h *DispatchHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	st, err := h.usecase.Dispatch(r.Context(), req.OrderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, cycleStatusToResponse(st))
	case errors.Is(err, apperr.ErrInvalidCoordinates):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid coordinates")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrInvalidOrderState):
		writeError(h.logger, w, r, http.StatusConflict, "order not ready for dispatch")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "order already assigned")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Respond handles POST /offers/respond.
func (h *DispatchHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req respondOfferRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err := h.usecase.Respond(r.Context(), req.AttemptID, req.RiderID, domain.OfferResponse(req.Response))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, respondOfferResponse{
			AttemptID: req.AttemptID,
			Response:  req.Response,
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "offer no longer pending")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// ManualAssign handles POST /assign/manual.
func (h *DispatchHandler) ManualAssign(w http.ResponseWriter, r *http.Request) {
	var req manualAssignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.ManualAssign(r.Context(), req.OrderID, req.RiderID, req.OperatorID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, assignResultToResponse(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order or rider not found")
	case errors.Is(err, apperr.ErrCapacityExceeded):
		writeError(h.logger, w, r, http.StatusConflict, "rider capacity exceeded")
	case errors.Is(err, apperr.ErrInvalidOrderState):
		writeError(h.logger, w, r, http.StatusConflict, "order not ready for assignment")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "order already assigned")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
