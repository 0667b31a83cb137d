package service

import (
	"time"

	"github.com/adboard/chat-service/internal/domain"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	timeLayout      = "15:04"
)

// Participant is one side of an envelope with the language already resolved
// for the envelope's lifetime.
type Participant struct {
	ID       int
	Language string
}

// Envelope is one transient in-memory realtime event, consumed by exactly
// one emission.
type Envelope interface {
	Type() domain.EventType
	Sender() *Participant
	Recipient() *Participant
	IsBroadcast() bool

	// Payload produces the flat wire mapping with absent optional fields
	// omitted. It always carries the type discriminator.
	Payload() map[string]any
}

// ContentEnvelope is a chat message in flight.
type ContentEnvelope struct {
	From       *Participant
	To         *Participant
	ChatID     int
	MessageID  int
	Text       string
	Translated string
	ExtKey     string
	Timestamp  time.Time
}

func (e ContentEnvelope) Type() domain.EventType { return domain.EventMessage }
func (e ContentEnvelope) Sender() *Participant { return e.From }
func (e ContentEnvelope) Recipient() *Participant { return e.To }
func (e ContentEnvelope) IsBroadcast() bool { return false }

func (e ContentEnvelope) Payload() map[string]any {
	p := basePayload(domain.EventMessage, e.From, e.ChatID, e.MessageID, e.Timestamp)
	p["text"] = e.Text
	if e.Translated != "" {
		p["translated"] = e.Translated
	}
	if e.ExtKey != "" {
		p["extKey"] = e.ExtKey
	}
	return p
}

// ActionEnvelope is a user action in flight, plus whatever response payload
// the action produced.
type ActionEnvelope struct {
	From      *Participant
	To        *Participant
	Action    domain.Action
	ChatID    int
	Subject   int
	MessageID int
	ExtKey    string
	Broadcast bool
	Timestamp time.Time

	// action response payload
	Chats         []domain.ChatSummary
	UnseenCounter *int
	Chat          *domain.ChatSummary
	ChatMessages  []domain.Message
}

func (e ActionEnvelope) Type() domain.EventType { return domain.EventAction }
func (e ActionEnvelope) Sender() *Participant { return e.From }
func (e ActionEnvelope) Recipient() *Participant { return e.To }
func (e ActionEnvelope) IsBroadcast() bool { return e.Broadcast }

// Reversed returns a copy flowing in the opposite direction, so a response
// to an action reuses the one emission path.
func (e ActionEnvelope) Reversed() ActionEnvelope {
	e.From, e.To = e.To, e.From
	return e
}

// Anonymized returns a copy with the sender identity cleared, for emissions
// where recipients must not see a "sender" field.
func (e ActionEnvelope) Anonymized() ActionEnvelope {
	e.From = nil
	return e
}

func (e ActionEnvelope) Payload() map[string]any {
	p := basePayload(domain.EventAction, e.From, e.ChatID, e.MessageID, e.Timestamp)
	p["action"] = string(e.Action)

	if e.Chats != nil {
		p["chats"] = e.Chats
	}
	if e.UnseenCounter != nil {
		p["unseen_counter"] = *e.UnseenCounter
	}
	if e.Chat != nil {
		p["chat"] = e.Chat
	}
	if e.ChatMessages != nil {
		p["chat_messages"] = e.ChatMessages
	}
	if e.ExtKey != "" {
		p["extKey"] = e.ExtKey
	}
	return p
}

func basePayload(t domain.EventType, from *Participant, chatID, messageID int, ts time.Time) map[string]any {
	p := map[string]any{
		"type": string(t),
	}
	if from != nil {
		p["sender"] = from.ID
	}
	if chatID != 0 {
		p["chat_id"] = chatID
	}
	if messageID != 0 {
		p["message_id"] = messageID
	}
	if !ts.IsZero() {
		p["timestamp"] = ts.Format(timestampLayout)
		p["time"] = ts.Format(timeLayout)
	}
	return p
}
