package workflow_events

import (
	"context"
	"net/http"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/workflow/telemetry"
	"fulfillment/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	cancelTimeout  = 5 * time.Second

	welcomeMessage = "Подключение к потоку событий workflow установлено"
)

// clientMessage команда от клиента. Поддерживается только cancel_workflow.
type clientMessage struct {
	Type       string `json:"type"`
	WorkflowID string `json:"workflowId"`
	Reason     string `json:"reason"`
}

type Handler struct {
	log      handlerLogger
	hub      Hub
	service  Service
	upgrader websocket.Upgrader
	now      func() time.Time
}

func New(log handlerLogger, hub Hub, service Service) *Handler {
	return &Handler{
		log:     log.With(logger.NewField("handler", "ws-workflow-events")),
		hub:     hub,
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// демо-страница открывается с любого origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
		now: time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// подписка до апгрейда: события после рукопожатия не теряются
	sub, ok := h.hub.Subscribe()
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sub.Close()
		h.log.With(logger.NewField("error", err)).Warn("websocket upgrade failed")
		return
	}

	client := &client{
		handler: h,
		conn:    conn,
		sub:     sub,
		replies: make(chan entities.Event, 16),
		log:     h.log.With(logger.NewField("remote", r.RemoteAddr)),
	}
	client.log.Info("websocket client connected")

	client.replies <- entities.Event{
		Type:      entities.EventWelcome,
		Message:   welcomeMessage,
		Timestamp: h.now(),
	}

	go client.writePump()
	client.readPump()
}

type client struct {
	handler *Handler
	conn    *websocket.Conn
	sub     *telemetry.Subscription
	replies chan entities.Event
	log     logger.Logger
}

// readPump читает команды клиента до разрыва соединения.
func (c *client) readPump() {
	defer func() {
		c.sub.Close()
		_ = c.conn.Close()
		c.log.Info("websocket client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.With(logger.NewField("error", err)).Warn("websocket read failed")
			}
			return
		}

		if msg.Type != "cancel_workflow" {
			continue
		}
		c.reply(c.cancel(msg))
	}
}

func (c *client) cancel(msg clientMessage) entities.Event {
	ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
	defer cancel()

	event := entities.Event{
		WorkflowID: msg.WorkflowID,
		Timestamp:  c.handler.now(),
	}

	if err := c.handler.service.CancelWorkflow(ctx, msg.WorkflowID, msg.Reason); err != nil {
		event.Type = entities.EventError
		event.Message = "Не удалось отправить сигнал отмены: " + err.Error()
		return event
	}

	event.Type = entities.EventCancellationSent
	event.Message = "Сигнал отмены отправлен в workflow"
	return event
}

func (c *client) reply(event entities.Event) {
	select {
	case c.replies <- event:
	default:
		c.log.Warn("websocket reply dropped")
	}
}

// writePump единственный писатель в соединение.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	events := c.sub.Events()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				// hub остановлен
				_ = c.write(websocket.CloseMessage, nil)
				return
			}
			if err := c.writeJSON(event); err != nil {
				return
			}
		case event := <-c.replies:
			if err := c.writeJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) writeJSON(event entities.Event) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(event)
}

func (c *client) write(messageType int, data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}
