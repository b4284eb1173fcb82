package workflow_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/dto"
	"fulfillment/internal/engine"
	"fulfillment/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
	now     func() time.Time
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
		now:     time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var orderDTO dto.Order
	err := json.NewDecoder(r.Body).Decode(&orderDTO)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ref, err := h.service.StartWorkflow(r.Context(), dto.ToDomainOrder(orderDTO, h.now()))
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidOrder):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, engine.ErrAlreadyStarted):
			h.writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, engine.ErrShuttingDown):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			h.log.With(
				logger.NewField("order", orderDTO.ID),
				logger.NewField("error", err),
			).Error("start workflow")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.StartWorkflowResponse{
		WorkflowID: ref.WorkflowID,
		RunID:      ref.RunID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
