package service

import (
	"context"
	"fmt"

	"github.com/adboard/chat-service/internal/domain"
)

// runAction executes the side effects for one action code and returns the
// envelope shaped for emission. Query-style actions come back Reversed so
// the response flows to the originator over the single emission path.
// Codes with no case here (typing, stop_typing, not_delivered, anything a
// newer client may send) are deliberately inert: no side effect, no error,
// the envelope is relayed as-is.
func (s *ChatService) runAction(ctx context.Context, sess Session, env ActionEnvelope) (ActionEnvelope, error) {
	switch env.Action {
	case domain.ActionViewed, domain.ActionDelivered:
		if env.MessageID == 0 {
			return env, nil
		}
		if err := s.chats.SetMessageFlag(ctx, env.MessageID, env.Action); err != nil {
			return env, fmt.Errorf("set message flag: %w", err)
		}
		return env, nil

	case domain.ActionLoadChats:
		chats, err := s.chats.UserChats(ctx, sess.UserID)
		if err != nil {
			return env, fmt.Errorf("load chats: %w", err)
		}

		counter := 0
		for _, chat := range chats {
			counter += chat.UnseenCounter
		}

		env.Chats = chats
		env.UnseenCounter = &counter
		return env.Reversed(), nil

	case domain.ActionLoadChatMsg:
		if env.ChatID == 0 {
			return env, nil
		}

		messages, err := s.chats.ChatMessages(ctx, env.ChatID)
		if err != nil {
			return env, fmt.Errorf("load chat messages: %w", err)
		}

		env.ChatMessages = messages
		return env.Reversed(), nil

	case domain.ActionOnline, domain.ActionOffline:
		if err := s.users.SetOnline(ctx, sess.UserID, env.Action == domain.ActionOnline); err != nil {
			return env, fmt.Errorf("update online flag: %w", err)
		}

		env.Broadcast = true
		return env.Anonymized(), nil

	case domain.ActionInitChat:
		if env.To == nil || env.Subject == 0 {
			return env, fmt.Errorf("init chat: subject or recipient missing")
		}

		chatID, err := s.chats.CreateChat(ctx, env.Subject, sess.UserID, env.To.ID)
		if err != nil {
			return env, fmt.Errorf("create chat: %w", err)
		}

		summary, err := s.chats.ChatSummary(ctx, sess.UserID, chatID)
		if err != nil {
			return env, fmt.Errorf("load chat summary: %w", err)
		}

		env.ChatID = chatID
		env.Chat = summary
		return env.Reversed(), nil

	default:
		return env, nil
	}
}
