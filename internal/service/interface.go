package service

import (
	"context"

	"github.com/adboard/chat-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

type ChatStoreIn interface {
	CreateMessage(ctx context.Context, in *domain.Message) error
	SetMessageFlag(ctx context.Context, messageID int, action domain.Action) error
	CreateChat(ctx context.Context, entityID, userID, peerID int) (int, error)
	UserChats(ctx context.Context, userID int) ([]domain.ChatSummary, error)
	ChatSummary(ctx context.Context, userID, chatID int) (*domain.ChatSummary, error)
	ChatMessages(ctx context.Context, chatID int) ([]domain.Message, error)
	ChatPeer(ctx context.Context, chatID, userID int) (int, error)
	CreateTranslation(ctx context.Context, in *domain.TranslatedMessage) error
}

type UserDirectoryIn interface {
	GetUser(ctx context.Context, userID int) (*domain.User, error)
	SetOnline(ctx context.Context, userID int, online bool) error
	PushTokens(ctx context.Context, userID int) ([]string, error)
	PushTitle(ctx context.Context, language string) (string, error)
}

type PresenceStoreIn interface {
	Register(ctx context.Context, userID int, clientID, handle string) error
	Unregister(ctx context.Context, userID int, clientID string) error
	ActiveHandles(ctx context.Context, userID int) ([]string, error)
}

type EmitterIn interface {
	EmitTo(ctx context.Context, handle string, payload map[string]any) error
	Broadcast(ctx context.Context, payload map[string]any) error
}

// SubscriberIn opens the outbound event stream for one connection handle.
// The returned close func tears the subscription down.
type SubscriberIn interface {
	Subscribe(ctx context.Context, handle string) (<-chan *redis.Message, func() error)
}

// TranslatorIn is the external translation provider. Translate returns the
// translated text and the detected source language. Failures are absorbed by
// the caller, never retried here.
type TranslatorIn interface {
	Translate(ctx context.Context, text, target, source string) (string, string, error)
}

// PusherIn sends one mobile push notification per device token.
type PusherIn interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// SenderIn is the delivery fan-out: one emission reaches every active device
// of the recipient plus the sender's other devices.
type SenderIn interface {
	Emit(ctx context.Context, env Envelope, origin string)
}

type FrameHandlerIn interface {
	HandleContent(ctx context.Context, sess Session, frame *Frame)
	HandleAction(ctx context.Context, sess Session, frame *Frame)
}
