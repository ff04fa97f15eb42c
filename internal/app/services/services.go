// Package services holds the advising business logic.
//
// Services defined in this package:
//   - AuthService: exchanges the shared password for a session token
//   - ProfileService: reads and patches profiles and transcripts
//   - ChatService: orchestrates a chat turn across the catalog, the profile
//     store and the LLM provider
package services

import (
	"github.com/yigit/uniadvisor/internal/pkg/websocket"
)

// Notifier pushes messages to a user's live sessions
type Notifier interface {
	SendToUser(message *websocket.Message)
}

type nopNotifier struct{}

func (nopNotifier) SendToUser(*websocket.Message) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
