package service

import "log/slog"

var hub = NewHub()

// Hub tracks the connections living in this process, keyed by handle. The
// presence store stays authoritative across instances; the hub only exists
// for local bookkeeping and logging.
type Hub struct {
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func GetHub() *Hub {
	return hub
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.handle] = client
			slog.Info("Device connected",
				"user_id", client.userID,
				"client_id", client.clientID,
				"handle", client.handle,
			)

		case client := <-h.unregister:
			delete(h.clients, client.handle)
			slog.Info("Device disconnected",
				"user_id", client.userID,
				"client_id", client.clientID,
			)
		}
	}
}
