package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adboard/chat-service/internal/domain"
)

// ChatService executes the realtime chat flows: content messages are
// persisted, acknowledged, fanned out and then handed to the detached
// translation/push pipeline; actions are dispatched by code.
type ChatService struct {
	users      UserDirectoryIn
	chats      ChatStoreIn
	sender     SenderIn
	translator TranslatorIn
	pusher     PusherIn
	domainURL  string

	background sync.WaitGroup
}

func NewChatService(
	users UserDirectoryIn,
	chats ChatStoreIn,
	sender SenderIn,
	translator TranslatorIn,
	pusher PusherIn,
	domainURL string,
) *ChatService {
	return &ChatService{
		users:      users,
		chats:      chats,
		sender:     sender,
		translator: translator,
		pusher:     pusher,
		domainURL:  domainURL,
	}
}

// Wait blocks until in-flight translation/push tasks finish. Used on
// shutdown so detached work is not cut off mid-write.
func (s *ChatService) Wait() {
	s.background.Wait()
}

// HandleContent runs the content message flow. Persistence commits first;
// the sender gets a delivered/not_delivered ack either way; fan-out and the
// translation/push pipeline run only for a persisted message.
func (s *ChatService) HandleContent(ctx context.Context, sess Session, frame *Frame) {
	env := ContentEnvelope{
		From:   s.participant(ctx, sess.UserID),
		ChatID: frame.ChatID,
		Text:   frame.Text,
		ExtKey: frame.ExtKey,
	}
	env.To = s.resolveRecipient(ctx, sess.UserID, frame.To, frame.ChatID)

	var persistErr error
	if env.To == nil {
		persistErr = domain.ErrInvalidRequest.WithMessage("recipient unresolved")
		slog.Error("Failed to save message, recipient unresolved",
			"chat_id", env.ChatID,
			"user_id", sess.UserID,
		)
	} else {
		msg := &domain.Message{
			ChatID:   env.ChatID,
			Sender:   sess.UserID,
			Receiver: env.To.ID,
			Text:     env.Text,
		}
		if err := s.chats.CreateMessage(ctx, msg); err != nil {
			persistErr = err
			slog.Error("Failed to save message",
				"chat_id", env.ChatID,
				"user_id", sess.UserID,
				"error", err,
			)
		} else {
			env.MessageID = msg.ID
			env.Timestamp = msg.CreatedAt
		}
	}

	s.ackSender(ctx, sess, env, persistErr == nil)

	if persistErr != nil {
		return
	}

	s.sender.Emit(ctx, env, sess.Handle)

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		// detached from the originating request: translation and push must
		// complete even if the requester disconnects.
		s.translateAndPush(context.Background(), env)
	}()
}

// ackSender tells every device of the sender whether the message made it to
// storage, carrying the server-assigned id and timestamp.
func (s *ChatService) ackSender(ctx context.Context, sess Session, env ContentEnvelope, persisted bool) {
	ack := ActionEnvelope{
		From:      env.From,
		Action:    domain.ActionNotDelivered,
		ChatID:    env.ChatID,
		MessageID: env.MessageID,
		ExtKey:    env.ExtKey,
		Timestamp: env.Timestamp,
	}
	if persisted {
		ack.Action = domain.ActionDelivered
	}

	ack = ack.Reversed()

	var err error
	ack, err = s.runAction(ctx, sess, ack)
	if err != nil {
		slog.Error("Failed to apply ack action", "action", ack.Action, "error", err)
	}

	s.sender.Emit(ctx, ack.Anonymized(), "")
}

// HandleAction dispatches one action envelope and emits the result. Action
// failures are logged and absorbed; the transport never sees them.
func (s *ChatService) HandleAction(ctx context.Context, sess Session, frame *Frame) {
	env := ActionEnvelope{
		From:      s.participant(ctx, sess.UserID),
		Action:    frame.Action,
		ChatID:    frame.ChatID,
		Subject:   frame.Subject,
		MessageID: frame.MessageID,
		ExtKey:    frame.ExtKey,
	}
	if frame.To != nil {
		env.To = s.participant(ctx, *frame.To)
	}

	env, err := s.runAction(ctx, sess, env)
	if err != nil {
		slog.Error("Failed to execute action",
			"action", frame.Action,
			"user_id", sess.UserID,
			"error", err,
		)
		return
	}

	if !env.Broadcast && env.To == nil {
		env.To = s.resolveRecipient(ctx, sess.UserID, nil, env.ChatID)
	}

	s.sender.Emit(ctx, env, sess.Handle)
}

// participant resolves a user into an envelope party. Language resolution is
// per envelope; a directory miss degrades to an id-only participant.
func (s *ChatService) participant(ctx context.Context, userID int) *Participant {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		slog.Error("Failed to load user", "user_id", userID, "error", err)
		return &Participant{ID: userID}
	}
	return &Participant{ID: user.ID, Language: user.Language}
}

// resolveRecipient fills the recipient from an explicit target or, lazily,
// from the chat membership. Resolution failure is soft: delivery becomes a
// no-op, never an error.
func (s *ChatService) resolveRecipient(ctx context.Context, senderID int, to *int, chatID int) *Participant {
	if to != nil {
		return s.participant(ctx, *to)
	}

	if chatID == 0 {
		return nil
	}

	peerID, err := s.chats.ChatPeer(ctx, chatID, senderID)
	if err != nil {
		slog.Info("Recipient unresolved", "chat_id", chatID, "user_id", senderID, "error", err)
		return nil
	}
	return s.participant(ctx, peerID)
}
