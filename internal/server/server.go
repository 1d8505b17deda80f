// Package server implements the HTTP and WebSocket transport for the realtime
// presence and delivery core.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/chandrashekhar-patil/Chat-App/internal/delivery"
	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/gorilla/websocket"
)

// Notifier is what the internal hook API drives.
type Notifier interface {
	Deliver(ctx context.Context, msg event.Message, sender event.UserID, target delivery.Target) (delivery.Result, error)
	NotifyChatCleared(targets []event.UserID, clearedBy event.UserID) int
	NotifyGroupCleared(ctx context.Context, chat event.ChatID) (int, error)
	NotifyGroupUpdated(g event.Group) int
	NotifyGroupDeleted(chat event.ChatID, members []event.UserID) int
	NotifyUserRemoved(chat event.ChatID, user event.UserID, remaining []event.UserID) int
	NotifyUserDeleted(user event.UserID) int
	OnlineUserIDs() []event.UserID
}

// Stats feeds the health endpoint.
type Stats interface {
	Connections() int
	ActiveCalls() int
}

// Service is everything the transport needs from the core.
type Service interface {
	Core
	Notifier
	Stats
}

// Server owns the hub and the HTTP handlers in front of it.
type Server struct {
	cfg      Config
	svc      Service
	hub      *Hub
	upgrader websocket.Upgrader
	settings clientSettings
	log      *slog.Logger
}

func New(cfg Config, svc Service, log *slog.Logger) *Server {
	log = log.With("component", "server")
	origins := newOriginPolicy(cfg.Origins(), log)
	return &Server{
		cfg: cfg,
		svc: svc,
		hub: NewHub(svc, log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.checkOrigin,
		},
		settings: settingsFrom(cfg),
		log:      log,
	}
}

// StartHub runs the hub loop in its own goroutine. It must be called before
// the HTTP server accepts connections.
func (s *Server) StartHub() {
	go s.hub.Run()
	s.log.Info("hub started and ready to manage websocket connections")
}

// Hub is exposed for shutdown coordination.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the gin engine serving every route.
func (s *Server) Handler() http.Handler {
	return s.routes()
}
