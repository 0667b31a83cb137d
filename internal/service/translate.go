package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/adboard/chat-service/internal/domain"
	"go.uber.org/multierr"
)

// translateAndPush is the detached tail of the content flow: translation
// first so the push body can use it, then the notification itself. Both
// stages absorb their own failures.
func (s *ChatService) translateAndPush(ctx context.Context, env ContentEnvelope) {
	env = s.translateMessage(ctx, env)
	s.pushNotify(ctx, env)
}

// translateMessage translates the text when sender and recipient languages
// differ, for a message that was persisted. A provider failure falls back to
// the original text and stores nothing.
func (s *ChatService) translateMessage(ctx context.Context, env ContentEnvelope) ContentEnvelope {
	if env.MessageID == 0 || env.From == nil || env.To == nil {
		return env
	}
	if env.From.Language == env.To.Language {
		return env
	}

	translated, _, err := s.translator.Translate(ctx, env.Text, env.To.Language, env.From.Language)
	if err != nil {
		slog.Error("Failed to translate message",
			"message_id", env.MessageID,
			"target", env.To.Language,
			"error", err,
		)
		return env
	}

	env.Translated = translated

	if err := s.chats.CreateTranslation(ctx, &domain.TranslatedMessage{
		MessageID:  env.MessageID,
		Language:   env.To.Language,
		Translated: translated,
	}); err != nil {
		slog.Error("Failed to save translation", "message_id", env.MessageID, "error", err)
	}
	return env
}

// pushNotify sends one notification per registered device token of the
// recipient. The title is the recipient-language template with an english
// fallback; the body is the translated text when one exists. A failure on
// one token does not stop the rest.
func (s *ChatService) pushNotify(ctx context.Context, env ContentEnvelope) {
	if env.To == nil {
		return
	}

	tokens, err := s.users.PushTokens(ctx, env.To.ID)
	if err != nil {
		slog.Error("Failed to load push tokens", "user_id", env.To.ID, "error", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	title, err := s.users.PushTitle(ctx, env.To.Language)
	if err != nil || title == "" {
		title, err = s.users.PushTitle(ctx, "en")
		if err != nil {
			slog.Error("Failed to load push title", "error", err)
			return
		}
	}

	body := env.Text
	if env.Translated != "" {
		body = env.Translated
	}

	data := map[string]string{
		"time":    time.Now().Format(timestampLayout),
		"chat_id": strconv.Itoa(env.ChatID),
		"url":     fmt.Sprintf("%s/chats/%d", s.domainURL, env.ChatID),
	}

	var errs error
	for _, token := range tokens {
		if err := s.pusher.Send(ctx, token, title, body, data); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("token %s: %w", token, err))
		}
	}
	if errs != nil {
		slog.Error("Failed to deliver push notifications", "user_id", env.To.ID, "error", errs)
	}
}
