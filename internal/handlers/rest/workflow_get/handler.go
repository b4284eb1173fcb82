package workflow_get

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
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	workflowID := mux.Vars(r)["id"]
	if workflowID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	execution, err := h.service.DescribeWorkflow(r.Context(), workflowID)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(
				logger.NewField("workflow_id", workflowID),
				logger.NewField("error", err),
			).Error("describe workflow")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromDomainExecution(execution))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
