package order_cancel_requested

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/dto"
	"fulfillment/internal/entities"
	"fulfillment/internal/service/cancellation"
	"fulfillment/pkg/logger"
	"github.com/IBM/sarama"
)

type Handler struct {
	cancellationService      Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, cancellationService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		cancellationService:      cancellationService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("order.cancel.requested: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// ребаланс или остановка consumer group
			h.log.Info("order.cancel.requested: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать без коммита:
// сообщение будет прочитано заново.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event dto.OrderCancelRequested
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("order.cancel.requested handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("reason", event.Reason),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("order.cancel.requested processing")

	err = h.cancellationService.CancelOrder(ctx, event.OrderID, entities.CancellationRequest{
		Reason: event.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.cancel.requested handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, cancellation.ErrMissingRequiredFields):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.cancel.requested handler message without order id or reason")

		case errors.Is(err, cancellation.ErrWorkflowNotFound),
			errors.Is(err, cancellation.ErrWorkflowClosed):
			// заказ уже завершён или не запускался, отменять нечего
			msgLog.With(
				logger.NewField("error", err),
			).Info("order.cancel.requested handler nothing to cancel")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("order.cancel.requested handler failed to cancel order")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("order.cancel.requested: cancellation signal delivered")

	sess.MarkMessage(message, "")
	return false
}
