package ports

import (
	"context"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// Conversation identifies an open chat screen.
type Conversation struct {
	ID          string `json:"id"`
	ServiceName string `json:"serviceName"`
}

// ChatService simulates a conversation with a service provider. Methods
// returning a nil message mean the input was ignored (blank text, cancelled
// pick, no active recording).
type ChatService interface {
	Open(serviceName string) Conversation
	Close(id string) error
	SendMessage(ctx context.Context, id, text string) (*domain.ChatMessage, error)
	PickMedia(ctx context.Context, id string) (*domain.ChatMessage, error)
	PickDocument(ctx context.Context, id string) (*domain.ChatMessage, error)
	StartRecording(ctx context.Context, id string) error
	StopRecording(ctx context.Context, id string) (*domain.ChatMessage, error)
	Messages(id string) ([]domain.ChatMessage, error)
	// Subscribe streams messages appended after the call. The returned
	// func releases the subscription.
	Subscribe(id string) (<-chan domain.ChatMessage, func(), error)
}
