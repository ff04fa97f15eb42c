package websocket

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFrameTimeout bounds the processing of one inbound frame
const DefaultFrameTimeout = 90 * time.Second

// Responder answers a chat frame. Replies are pushed through the hub by the
// responder itself; an error is reported back to the sender.
type Responder func(ctx context.Context, userID string, frame *Frame) error

// MessageHandler processes inbound frames outside the read loop
type MessageHandler struct {
	respond Responder
	hub     *Hub
	timeout time.Duration
	logger  zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(respond Responder, hub *Hub, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		respond: respond,
		hub:     hub,
		timeout: DefaultFrameTimeout,
		logger:  logger,
	}
}

// HandleFrame processes frame in its own goroutine
func (h *MessageHandler) HandleFrame(userID string, frame *Frame) {
	if strings.TrimSpace(frame.Message) == "" {
		h.hub.SendToUser(NewMessage(userID, TypeError, map[string]string{"message": "message is required"}))
		return
	}
	go h.process(userID, frame)
}

func (h *MessageHandler) process(userID string, frame *Frame) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.respond(ctx, userID, frame); err != nil {
		h.logger.Error().
			Err(err).
			Str("userID", userID).
			Msg("Failed to answer WebSocket frame")
		h.hub.SendToUser(NewMessage(userID, TypeError, map[string]string{"message": "failed to process message"}))
		return
	}

	h.logger.Debug().
		Str("userID", userID).
		Msg("WebSocket frame answered")
}
