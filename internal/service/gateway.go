package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/adboard/chat-service/internal/domain"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Gateway owns the lifecycle of authenticated connections: presence
// registration, the inbound dispatch loop and the outbound pump fed by the
// pub/sub subscription.
type Gateway struct {
	presence PresenceStoreIn
	sub      SubscriberIn
	frames   FrameHandlerIn
}

func NewGateway(presence PresenceStoreIn, sub SubscriberIn, frames FrameHandlerIn) *Gateway {
	return &Gateway{
		presence: presence,
		sub:      sub,
		frames:   frames,
	}
}

// HandleConn runs one connection until it closes. Registration happens
// before the pumps start; on any exit exactly this client id is removed so
// the user's other devices stay registered.
func (gw *Gateway) HandleConn(ctx context.Context, client *Client) {
	sess := client.Session()

	if err := gw.presence.Register(ctx, sess.UserID, sess.ClientID, sess.Handle); err != nil {
		slog.Error("Failed to register presence", "user_id", sess.UserID, "error", err)
		client.hub.unregister <- client
		client.conn.Close()
		return
	}

	events, closeSub := gw.sub.Subscribe(ctx, sess.Handle)
	client.outboard = events

	defer func() {
		client.hub.unregister <- client
		if err := gw.presence.Unregister(context.Background(), sess.UserID, sess.ClientID); err != nil {
			slog.Error("Failed to unregister presence", "user_id", sess.UserID, "error", err)
		}
		client.conn.Close()
		closeSub()
	}()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return gw.read(ctx, client, sess)
	})

	g.Go(func() error {
		return gw.write(ctx, client)
	})

	err := g.Wait()
	if err != nil && err != context.Canceled {
		slog.Error("Error during handle conn", "user_id", sess.UserID, "error", err)
	}
}

func (gw *Gateway) read(ctx context.Context, client *Client, sess Session) error {
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			var rawFrame json.RawMessage
			if err := client.conn.ReadJSON(&rawFrame); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
					websocket.CloseNoStatusReceived,
					websocket.CloseNormalClosure) {
					slog.Error("Websocket close error", "error", err)
				}
				return context.Canceled
			}

			var frame Frame
			if err := json.Unmarshal(rawFrame, &frame); err != nil {
				slog.Error("Failed to unmarshal frame", "user_id", sess.UserID, "error", err)
				continue
			}

			switch frame.Type {
			case domain.EventMessage:
				gw.frames.HandleContent(ctx, sess, &frame)

			case domain.EventAction:
				gw.frames.HandleAction(ctx, sess, &frame)

			default:
				slog.Warn("Unknown frame type", "type", frame.Type)
			}
		}
	}
}

func (gw *Gateway) write(ctx context.Context, client *Client) error {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Error("Failed to write ping message", "error", err)
				return err
			}
		case msg, ok := <-client.outboard:
			if !ok {
				return nil
			}

			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				slog.Error("Failed to write event", "error", err)
				return err
			}
		}
	}
}
