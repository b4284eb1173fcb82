package ping_get

import (
	"encoding/json"
	"net/http"
	"time"

	"fulfillment/internal/dto"
	"fulfillment/pkg/logger"
)

const serviceName = "order-fulfillment"

type Handler struct {
	log handlerLogger
	now func() time.Time
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log.With(logger.NewField("handler", "ping_get")),
		now: time.Now,
	}
}

// WithClock подменяет источник времени ответа.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	message := "pong"
	now := h.now().UTC()
	res := dto.PingResponse{
		Message: &message,
		Service: serviceName,
		Time:    &now,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
