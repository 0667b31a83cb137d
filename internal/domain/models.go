package domain

import "time"

type User struct {
	ID       int    `json:"user_id" db:"user_id"`
	Language string `json:"language" db:"language_id"`
	Online   bool   `json:"online" db:"online"`
	Banned   bool   `json:"-" db:"banned"`
}

// ChatSummary is one row of a user's chat list: the chat itself, the peer
// on the other side and how many incoming messages are still unseen.
type ChatSummary struct {
	ChatID        int       `json:"chat_id" db:"chat_id"`
	EntityID      int       `json:"entity_id" db:"entity_id"`
	WithUserID    int       `json:"with_user_id" db:"with_user_id"`
	IsClosed      bool      `json:"is_closed" db:"is_closed"`
	UnseenCounter int       `json:"unseen_counter" db:"unseen_counter"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type Message struct {
	ID        int       `json:"message_id" db:"id"`
	ChatID    int       `json:"chat_id" db:"chat_id"`
	Sender    int       `json:"sender" db:"sender"`
	Receiver  int       `json:"receiver" db:"receiver"`
	Text      string    `json:"text" db:"text"`
	Delivered bool      `json:"delivered" db:"delivered"`
	Viewed    bool      `json:"viewed" db:"viewed"`
	CreatedAt time.Time `json:"timestamp" db:"created_at"`
}

// TranslatedMessage caches one translation per (message, language) pair.
type TranslatedMessage struct {
	MessageID  int    `json:"message_id" db:"message_id"`
	Language   string `json:"language" db:"language"`
	Translated string `json:"translated" db:"translated"`
}

type (
	EventType string

	Action string
)

const (
	EventMessage EventType = "message"
	EventAction  EventType = "action"

	// actions
	ActionTyping       Action = "typing"
	ActionStopTyping   Action = "stop_typing"
	ActionOnline       Action = "online"
	ActionOffline      Action = "offline"
	ActionInitChat     Action = "init_chat"
	ActionViewed       Action = "viewed"
	ActionDelivered    Action = "delivered"
	ActionNotDelivered Action = "not_delivered"
	ActionLoadChats    Action = "load_chats"
	ActionLoadChatMsg  Action = "load_chat_msg"
)
