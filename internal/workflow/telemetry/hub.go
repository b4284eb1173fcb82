package telemetry

import (
	"context"

	"fulfillment/internal/entities"
)

const (
	broadcastBuffer  = 1024
	subscriberBuffer = 256
)

// Subscription живой поток событий для одного клиента.
type Subscription struct {
	events chan entities.Event
	hub    *Hub
}

func (s *Subscription) Events() <-chan entities.Event {
	return s.events
}

func (s *Subscription) Close() {
	select {
	case s.hub.unregister <- s:
	case <-s.hub.done:
	}
}

// Hub раздаёт события всем подписчикам (websocket-клиентам).
// Медленный подписчик теряет события, оркестратор при этом не ждёт.
type Hub struct {
	subscribers map[*Subscription]struct{}
	register    chan *Subscription
	unregister  chan *Subscription
	broadcast   chan entities.Event
	done        chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscription]struct{}),
		register:    make(chan *Subscription),
		unregister:  make(chan *Subscription),
		broadcast:   make(chan entities.Event, broadcastBuffer),
		done:        make(chan struct{}),
	}
}

// Run обслуживает подписки до отмены ctx. После выхода все каналы подписчиков закрыты.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for sub := range h.subscribers {
			close(sub.events)
			delete(h.subscribers, sub)
		}
		HubSubscribers.Set(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case sub := <-h.register:
			h.subscribers[sub] = struct{}{}
			HubSubscribers.Set(float64(len(h.subscribers)))
		case sub := <-h.unregister:
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.events)
				HubSubscribers.Set(float64(len(h.subscribers)))
			}
		case event := <-h.broadcast:
			for sub := range h.subscribers {
				select {
				case sub.events <- event:
				default:
					HubDroppedEventsTotal.Inc()
				}
			}
		}
	}
}

// Subscribe возвращает nil, false если Hub уже остановлен.
func (h *Hub) Subscribe() (*Subscription, bool) {
	sub := &Subscription{
		events: make(chan entities.Event, subscriberBuffer),
		hub:    h,
	}

	select {
	case h.register <- sub:
		return sub, true
	case <-h.done:
		return nil, false
	}
}

func (h *Hub) Emit(event entities.Event) {
	select {
	case h.broadcast <- event:
	default:
		HubDroppedEventsTotal.Inc()
	}
}
