package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adboard/chat-service/internal/config"
	"github.com/adboard/chat-service/internal/repository"
	"github.com/adboard/chat-service/internal/repository/cache"
	"github.com/adboard/chat-service/internal/repository/database"
	"github.com/adboard/chat-service/internal/service"
	"github.com/adboard/chat-service/internal/transport/push"
	"github.com/adboard/chat-service/internal/transport/translate"
)

type Option func(*Server)

func WithMigrateDown(m func() error) Option {
	return func(s *Server) {
		s.migrateDown = m
	}
}

type Server struct {
	router      *http.ServeMux
	chatSvc     *service.ChatService
	migrateDown func() error
}

func NewServer(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		router: http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(s)
	}

	presenceRepo := repository.NewPresenceRepo(cache.Client())
	emitterRepo := repository.NewEmitterRepo(cache.Client())
	chatRepo := repository.NewChatRepo(database.Client())
	userRepo := repository.NewUserRepo(database.Client(), cache.Client())

	translator := translate.NewClient(cfg.Translator.URL, cfg.Translator.APIKey)
	pusher := push.NewClient(cfg.Push.URL, cfg.Push.ServerKey)

	deliverer := service.NewDeliverer(presenceRepo, emitterRepo)
	s.chatSvc = service.NewChatService(userRepo, chatRepo, deliverer, translator, pusher, cfg.App.DomainURL)
	gateway := service.NewGateway(presenceRepo, emitterRepo, s.chatSvc)

	h := NewHandler(userRepo, gateway, cfg.JWT.Secret)
	s.setupRoutes(h)

	return s
}

func (s *Server) setupRoutes(h *Handler) {
	s.router.HandleFunc("/ws", h.handleWS)
}

func (s *Server) Run(addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start server", "error", err)
			return
		}
	}()
	slog.Info("Server is running", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit

	ctx, shutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdown()

	// stop accepting frames first, so no new background work appears while
	// draining
	err := server.Shutdown(ctx)
	if err != nil {
		slog.Error("Failed to shutdown server", "error", err)
	}

	s.drain()

	slog.Info("Server exited")
	return err
}

// drain waits for detached translation/push work and runs the optional
// teardown migration. Called only after the listener is closed.
func (s *Server) drain() {
	s.chatSvc.Wait()

	if s.migrateDown != nil {
		if err := s.migrateDown(); err != nil {
			slog.Warn("Failed to migrate down", "error", err)
		}
		slog.Info("Migrations down")
	}
}
