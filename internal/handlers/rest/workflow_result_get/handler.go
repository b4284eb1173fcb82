package workflow_result_get

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/dto"
	"fulfillment/internal/engine"
	"fulfillment/pkg/logger"
	"github.com/AlekSi/pointer"
	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
	// wait сколько ждать завершения при wait=true
	wait time.Duration
}

func New(log handlerLogger, service Service, wait time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
		wait:    wait,
	}
}

// ServeHTTP отдаёт 200 с итогом для закрытого выполнения и 202 пока workflow идёт.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	workflowID := mux.Vars(r)["id"]
	if workflowID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var wait time.Duration
	if r.URL.Query().Get("wait") == "true" {
		wait = h.wait
	}

	execution, err := h.service.WorkflowResult(r.Context(), workflowID, wait)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, context.DeadlineExceeded):
			w.WriteHeader(http.StatusGatewayTimeout)
		default:
			h.log.With(
				logger.NewField("workflow_id", workflowID),
				logger.NewField("error", err),
			).Error("get workflow result")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.WorkflowResultResponse{
		WorkflowID: execution.WorkflowID,
		Status:     execution.Status.String(),
	}

	status := http.StatusAccepted
	if execution.IsClosed() && execution.Result != nil {
		response.Result = pointer.To(dto.FromDomainResult(*execution.Result))
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
