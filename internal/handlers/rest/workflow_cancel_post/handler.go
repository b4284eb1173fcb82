package workflow_cancel_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"fulfillment/internal/dto"
	"fulfillment/internal/engine"
	"fulfillment/pkg/logger"
	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP 202 означает только то, что сигнал доставлен: workflow отменится
// на ближайшей границе шага или дойдёт до конца, если шагов не осталось.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	workflowID := mux.Vars(r)["id"]
	if workflowID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request dto.CancelWorkflowRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = h.service.CancelWorkflow(r.Context(), workflowID, request.Reason)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrEmptyReason):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, engine.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, engine.ErrNotRunning):
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, engine.ErrNotOwned):
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			h.log.With(
				logger.NewField("workflow_id", workflowID),
				logger.NewField("error", err),
			).Error("cancel workflow")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	h.log.With(
		logger.NewField("workflow_id", workflowID),
		logger.NewField("reason", request.Reason),
	).Info("cancellation requested")

	w.WriteHeader(http.StatusAccepted)
}
