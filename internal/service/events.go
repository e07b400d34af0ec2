package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"bitwise74/social-api/internal/model"
	"bitwise74/social-api/internal/store"

	"go.uber.org/zap"
)

const subscriberBuffer = 16

// Event is the envelope of every message on the events socket
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type inboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Subscriber is one connected client. Out is closed when the subscriber
// leaves the hub.
type Subscriber struct {
	Out chan []byte

	usersOnce sync.Once
}

// Hub fans events out to every subscriber. Slow subscribers whose buffer
// is full miss the message.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{Out: make(chan []byte, subscriberBuffer)}

	h.mu.Lock()
	h.subscribers[s] = struct{}{}
	h.mu.Unlock()

	return s
}

func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[s]; ok {
		delete(h.subscribers, s)
		close(s.Out)
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subscribers)
}

func (h *Hub) Broadcast(e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subscribers {
		select {
		case s.Out <- data:
		default:
			zap.L().Debug("Dropping event for slow subscriber", zap.String("event", e.Event))
		}
	}

	return nil
}

// sendTo delivers e to s alone
func (h *Hub) sendTo(s *Subscriber, e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[s]; !ok {
		return
	}

	select {
	case s.Out <- data:
	default:
	}
}

// EventsService implements the events socket protocol on top of a Hub
type EventsService struct {
	Hub      *Hub
	users    store.Users
	interval time.Duration
}

func NewEventsService(h *Hub, users store.Users, interval time.Duration) *EventsService {
	return &EventsService{Hub: h, users: users, interval: interval}
}

// Handle processes one raw client message. ctx must be cancelled when the
// subscriber's connection closes, that stops its user list broadcasts.
func (s *EventsService) Handle(ctx context.Context, sub *Subscriber, raw []byte) {
	var in inboundEvent
	if err := json.Unmarshal(raw, &in); err != nil {
		s.Hub.sendTo(sub, Event{Event: "error", Data: map[string]string{"error": "Invalid message"}})
		return
	}

	switch in.Event {
	case "events":
		var content any
		if len(in.Data) > 0 {
			if err := json.Unmarshal(in.Data, &content); err != nil {
				content = string(in.Data)
			}
		}

		err := s.Hub.Broadcast(Event{
			Event: "onMessage",
			Data:  map[string]any{"msg": "New Message", "content": content},
		})
		if err != nil {
			zap.L().Error("Failed to broadcast message", zap.Error(err))
		}
	case "users":
		sub.usersOnce.Do(func() {
			go s.broadcastUsers(ctx, sub)
		})
	default:
		s.Hub.sendTo(sub, Event{Event: "error", Data: map[string]string{"error": "Unknown event"}})
	}
}

func (s *EventsService) broadcastUsers(ctx context.Context, sub *Subscriber) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			users, err := s.users.List(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}

				zap.L().Error("Failed to fetch users for broadcast", zap.Error(err))
				s.Hub.sendTo(sub, Event{Event: "users", Data: map[string]string{"error": "Unable to fetch users"}})
				continue
			}

			if users == nil {
				users = []model.User{}
			}

			if err := s.Hub.Broadcast(Event{Event: "getUsers", Data: users}); err != nil {
				zap.L().Error("Failed to broadcast users", zap.Error(err))
			}
		}
	}
}
