package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Outbound message types
const (
	TypeChatReply      = "chat.reply"
	TypeProfileUpdated = "profile.updated"
	TypeError          = "error"
)

const outboundBuffer = 256

// Hub keeps the live sessions of every user and delivers messages to them
type Hub struct {
	// Registered clients organized by user ID
	clients map[string]map[*Client]bool

	outbound   chan *Message
	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	logger zerolog.Logger
}

// Message is pushed to a user's sessions
type Message struct {
	Type      string    `json:"type"`
	UserID    string    `json:"-"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage stamps a message for userID
func NewMessage(userID, msgType string, payload any) *Message {
	return &Message{
		Type:      msgType,
		UserID:    userID,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		outbound:   make(chan *Message, outboundBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles registrations and deliveries until ctx is done. It must be
// called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.outbound:
			h.deliver(message)
		}
	}
}

// join hands client to the hub. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave removes client from the hub unless the hub has already stopped
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Str("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	sessions, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := sessions[client]; !ok {
		return
	}

	delete(sessions, client)
	close(client.send)
	if len(sessions) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Str("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sessions := range h.clients {
		for client := range sessions {
			h.removeLocked(client)
		}
	}
}

// deliver writes message to every session of its user. Sessions with a full
// buffer are dropped.
func (h *Hub) deliver(message *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.clients[message.UserID]
	if !ok {
		h.logger.Debug().
			Str("userID", message.UserID).
			Str("type", message.Type).
			Msg("No live sessions for user")
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("userID", message.UserID).
			Msg("Failed to marshal message")
		return
	}

	for client := range sessions {
		select {
		case client.send <- data:
		default:
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("userID", message.UserID).
		Str("type", message.Type).
		Int("sessionCount", len(sessions)).
		Msg("Message delivered")
}

// SendToUser queues message for delivery. It never blocks; when the queue is
// full the message is dropped.
func (h *Hub) SendToUser(message *Message) {
	if h == nil || message == nil {
		return
	}
	select {
	case h.outbound <- message:
	default:
		h.logger.Warn().
			Str("userID", message.UserID).
			Str("type", message.Type).
			Msg("Outbound queue full, message dropped")
	}
}

// ClientCount returns the number of live sessions across all users
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, sessions := range h.clients {
		count += len(sessions)
	}
	return count
}
