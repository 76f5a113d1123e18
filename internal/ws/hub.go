package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const (
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	maxMessageSize     = 4 * 1024
	maxSendChannelSize = 256
)

// OutEvent is a server-pushed named event.
type OutEvent struct {
	Event     string    `json:"event"`
	ChatID    uint      `json:"chatId,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// InEvent is a client frame. Clients subscribe to a chat's group by sending
// a join frame with the chat id and leave it with a leave frame.
type InEvent struct {
	Type   string `json:"type"` // "join" | "leave"
	ChatID uint   `json:"chatId"`
}

const (
	InEventJoin  = "join"
	InEventLeave = "leave"
)

// Metrics счетчики хаба
type Metrics struct {
	EventsSent  atomic.Int64
	Connections atomic.Int64
	Dropped     atomic.Int64
}

// Hub fans events out to connected subscribers: either to everyone, or to
// the group subscribed to one chat. Group membership is connection-scoped
// and independent of the persisted roster.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client          // connection id -> client
	rooms   map[uint]map[string]*Client // chatID -> connection id -> client

	metrics  *Metrics
	shutdown chan struct{}
	once     sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		rooms:    make(map[uint]map[string]*Client),
		metrics:  &Metrics{},
		shutdown: make(chan struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	h.metrics.Connections.Inc()
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if stored, ok := h.clients[client.ID]; !ok || stored != client {
		return
	}
	delete(h.clients, client.ID)
	h.metrics.Connections.Dec()

	for chatID, room := range h.rooms {
		delete(room, client.ID)
		if len(room) == 0 {
			delete(h.rooms, chatID)
		}
	}

	client.Close()
}

// Join subscribes the connection to a chat's group.
func (h *Hub) Join(client *Client, chatID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[chatID]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[chatID] = room
	}
	room[client.ID] = client
}

func (h *Hub) Leave(client *Client, chatID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[chatID]; ok {
		delete(room, client.ID)
		if len(room) == 0 {
			delete(h.rooms, chatID)
		}
	}
}

// Broadcast delivers the event to every connected subscriber. Implements
// service.Notifier.
func (h *Hub) Broadcast(event string, payload any) {
	data, err := json.Marshal(OutEvent{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("hub: failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		h.send(client, data)
	}
}

// Publish delivers the event to the subscribers of one chat's group only.
// Implements service.Notifier.
func (h *Hub) Publish(chatID uint, event string, payload any) {
	data, err := json.Marshal(OutEvent{
		Event:     event,
		ChatID:    chatID,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("hub: failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[chatID] {
		h.send(client, data)
	}
}

func (h *Hub) send(client *Client, data []byte) {
	if client.SendRaw(data) {
		h.metrics.EventsSent.Inc()
	} else {
		h.metrics.Dropped.Inc()
	}
}

// Subscribers reports how many connections are in a chat's group.
func (h *Hub) Subscribers(chatID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[chatID])
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Metrics() *Metrics {
	return h.metrics
}

func (h *Hub) Shutdown() {
	h.once.Do(func() { close(h.shutdown) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		client.Close()
	}
	h.clients = make(map[string]*Client)
	h.rooms = make(map[uint]map[string]*Client)
}
