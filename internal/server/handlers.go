package server

import (
	"net/http"
	"sync"

	"github.com/adboard/chat-service/internal/domain"
	"github.com/adboard/chat-service/internal/service"
	"github.com/adboard/chat-service/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// clientHeader carries the client-supplied device identifier.
const clientHeader = "client"

type Handler struct {
	users     service.UserDirectoryIn
	gateway   *service.Gateway
	jwtSecret string
	upgrader  *websocket.Upgrader
}

func NewHandler(users service.UserDirectoryIn, gateway *service.Gateway, jwtSecret string) *Handler {
	return &Handler{
		users:     users,
		gateway:   gateway,
		jwtSecret: jwtSecret,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferPool: &sync.Pool{},
		},
	}
}

// handleWS is the connection handshake: verify the bearer token, check the
// user exists and is not banned, require a client id, then upgrade and hand
// the connection to the gateway. Every failure terminates the attempt
// before anything is registered.
func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		extracted, err := utils.ExtractToken(authHeader)
		if err != nil {
			handleError(w, err)
			return
		}
		tokenString = extracted
	}
	if tokenString == "" {
		handleError(w, domain.ErrUnauthorizedError)
		return
	}

	claims, err := utils.ValidateAccessToken(tokenString, h.jwtSecret)
	if err != nil {
		handleError(w, err)
		return
	}

	clientID := r.Header.Get(clientHeader)
	if clientID == "" {
		clientID = r.URL.Query().Get(clientHeader)
	}
	if clientID == "" {
		handleError(w, domain.ErrMissingClientID)
		return
	}

	user, err := h.users.GetUser(r.Context(), claims.UserID)
	if err != nil {
		handleError(w, err)
		return
	}
	if user.Banned {
		handleError(w, domain.ErrUserBanned)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		handleError(w, err)
		return
	}

	client := service.NewClient(user.ID, clientID, uuid.NewString(), conn, service.GetHub())

	h.gateway.HandleConn(r.Context(), client)
}
