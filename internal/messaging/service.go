// Package messaging provides the transport adapter boundary for PobutBot.
//
// It defines a pluggable delivery abstraction and the Telegram-backed
// implementation, and pumps inbound transport events into the conversation
// engine.
package messaging

import (
	"context"
	"time"

	"github.com/pobut/PobutBot/internal/models"
)

// Constants for transport channel configuration.
const (
	// DefaultChannelBufferSize defines the default buffer size for the inbound event channel.
	DefaultChannelBufferSize = 100
	// DefaultRequestTimeout bounds outbound transport calls.
	DefaultRequestTimeout = 15 * time.Second
)

// Service defines a pluggable message delivery abstraction for the single
// admin recipient. It sends outbound messages with optional fixed keyboards
// and exposes a channel of inbound events.
type Service interface {
	// SendMessage sends a plain text message to the admin.
	SendMessage(ctx context.Context, text string) error

	// SendMessageWithKeyboard sends a message with one of the fixed keyboard
	// layouts attached.
	SendMessageWithKeyboard(ctx context.Context, text string, keyboard models.Keyboard) error

	// Start begins background processing (e.g., polling for updates).
	Start(ctx context.Context) error

	// Stop stops background processing and cleans up resources.
	Stop() error

	// Events returns the channel of inbound user events.
	Events() <-chan models.Event
}
