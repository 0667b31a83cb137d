package service

import (
	"github.com/adboard/chat-service/internal/domain"
)

// Session is the state bound to one authenticated connection.
type Session struct {
	UserID   int
	ClientID string
	Handle   string
}

// Frame is one inbound websocket event, either a content message or an
// action, discriminated by Type.
type Frame struct {
	Type domain.EventType `json:"type"`

	// addressing
	To     *int `json:"to,omitempty"`
	ChatID int  `json:"chat_id,omitempty"`

	// content message fields
	Text   string `json:"text,omitempty"`
	ExtKey string `json:"extKey,omitempty"`

	// action fields
	Action    domain.Action `json:"action,omitempty"`
	Subject   int           `json:"subject,omitempty"`
	MessageID int           `json:"message_id,omitempty"`
}
