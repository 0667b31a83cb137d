package service

import (
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// Client is one live device connection. The handle is the cluster-wide
// address of this connection; the client id identifies the device and is
// supplied by the client itself.
type Client struct {
	userID   int
	clientID string
	handle   string
	conn     *websocket.Conn
	outboard <-chan *redis.Message
	hub      *Hub
}

func NewClient(userID int, clientID, handle string, conn *websocket.Conn, hub *Hub) *Client {
	client := &Client{
		userID:   userID,
		clientID: clientID,
		handle:   handle,
		conn:     conn,
		hub:      hub,
	}

	hub.register <- client
	return client
}

func (c *Client) Session() Session {
	return Session{
		UserID:   c.userID,
		ClientID: c.clientID,
		Handle:   c.handle,
	}
}
