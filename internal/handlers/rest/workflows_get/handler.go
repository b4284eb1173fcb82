package workflows_get

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fulfillment/internal/dto"
	"fulfillment/pkg/logger"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	executions, err := h.service.ListWorkflows(r.Context(), limit)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("list workflows")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	executionDTOs := make([]dto.Execution, len(executions))
	for i, execution := range executions {
		executionDTOs[i] = dto.FromDomainExecution(execution)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(executionDTOs)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
