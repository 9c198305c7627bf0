package domain

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser    Sender = "user"
	SenderService Sender = "service"
)

// MessageType tags the payload carried by a chat message.
type MessageType string

const (
	MessageText     MessageType = "text"
	MessageImage    MessageType = "image"
	MessageVideo    MessageType = "video"
	MessageDocument MessageType = "document"
	MessageVoice    MessageType = "voice"
)

// ChatMessage is one entry of a conversation transcript. Text is set for
// text messages; URI (and Name for documents) for media.
type ChatMessage struct {
	ID     string      `json:"id"`
	Sender Sender      `json:"sender"`
	Type   MessageType `json:"type"`
	Text   string      `json:"text,omitempty"`
	URI    string      `json:"uri,omitempty"`
	Name   string      `json:"name,omitempty"`
	SentAt time.Time   `json:"sentAt"`
}

// DefaultServiceName is used when a chat is opened without a service.
const DefaultServiceName = "Service Provider"
