// Package realtime wires the presence and delivery core together and exposes
// the entry points used by the transport and by the REST layer.
package realtime

import (
	"context"
	"log/slog"

	"github.com/chandrashekhar-patil/Chat-App/internal/call"
	"github.com/chandrashekhar-patil/Chat-App/internal/delivery"
	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/fanout"
	"github.com/chandrashekhar-patil/Chat-App/internal/presence"
	"github.com/chandrashekhar-patil/Chat-App/internal/registry"
	"github.com/chandrashekhar-patil/Chat-App/internal/router"
	"github.com/chandrashekhar-patil/Chat-App/internal/store"
)

// Service is constructed once per process.
type Service struct {
	registry *registry.Registry
	calls    *call.Machine
	presence *presence.Broadcaster
	pipeline *delivery.Pipeline
	router   *router.Router
	log      *slog.Logger
}

// New builds the core on top of st. Listeners are told about presence
// transitions in the background; call Close to flush them on shutdown.
func New(st store.Store, log *slog.Logger, listeners ...presence.Listener) *Service {
	reg := registry.New(log)
	out := fanout.New(reg, log)
	calls := call.NewMachine(log)
	pipeline := delivery.NewPipeline(st, st, st, out, log)

	return &Service{
		registry: reg,
		calls:    calls,
		presence: presence.NewBroadcaster(reg, out, log, listeners...),
		pipeline: pipeline,
		router:   router.New(reg, calls, pipeline, st, out, log),
		log:      log.With("component", "realtime"),
	}
}

// OnConnect admits a new connection. An older connection of the same user is
// closed and its calls are ended.
func (s *Service) OnConnect(ctx context.Context, h registry.Handle) {
	_, replaced := s.registry.Register(h)
	if replaced {
		s.router.EndCallsFor(h.UserID())
	}
	s.presence.Connected(ctx, h.UserID(), replaced)
}

// OnDisconnect forgets a closed connection. A connection that was already
// replaced changes nothing.
func (s *Service) OnDisconnect(ctx context.Context, h registry.Handle) {
	user, ok := s.registry.Unregister(h)
	if !ok {
		return
	}
	s.router.EndCallsFor(user)
	s.presence.Disconnected(ctx, user)
}

// OnInboundEvent routes one event from a live connection. Events from a
// connection that is no longer current are dropped.
func (s *Service) OnInboundEvent(ctx context.Context, h registry.Handle, in event.Inbound) {
	current, ok := s.registry.Lookup(h.UserID())
	if !ok || current.ID() != h.ID() {
		s.log.Debug("dropping event from stale connection", "user", h.UserID(), "handle", h.ID(), "event", in.Name())
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("recovered panic while routing", "user", h.UserID(), "event", in.Name(), "panic", r)
		}
	}()
	s.router.Route(ctx, h.UserID(), in)
}

// Deliver runs a REST-originated message through the delivery pipeline.
func (s *Service) Deliver(ctx context.Context, msg event.Message, sender event.UserID, target delivery.Target) (delivery.Result, error) {
	return s.pipeline.Deliver(ctx, msg, sender, target)
}

// NotifyChatCleared tells both sides of a 1:1 chat that it was cleared.
func (s *Service) NotifyChatCleared(targets []event.UserID, clearedBy event.UserID) int {
	return s.router.NotifyChatCleared(targets, clearedBy)
}

// NotifyGroupCleared tells every member of a group that its history was cleared.
func (s *Service) NotifyGroupCleared(ctx context.Context, chat event.ChatID) (int, error) {
	return s.router.NotifyGroupCleared(ctx, chat)
}

// NotifyGroupUpdated pushes the new group document to its members.
func (s *Service) NotifyGroupUpdated(g event.Group) int {
	return s.router.NotifyGroupUpdated(g)
}

// NotifyGroupDeleted tells members that a group is gone, or everyone when no
// members are known.
func (s *Service) NotifyGroupDeleted(chat event.ChatID, members []event.UserID) int {
	return s.router.NotifyGroupDeleted(chat, members)
}

// NotifyUserRemoved tells the remaining members that user left the group.
func (s *Service) NotifyUserRemoved(chat event.ChatID, user event.UserID, remaining []event.UserID) int {
	return s.router.NotifyUserRemoved(chat, user, remaining)
}

// NotifyUserDeleted announces a deleted account and disconnects its owner.
func (s *Service) NotifyUserDeleted(user event.UserID) int {
	return s.router.NotifyUserDeleted(user)
}

// OnlineUserIDs is the current roster, sorted.
func (s *Service) OnlineUserIDs() []event.UserID {
	return s.registry.AllOnlineUserIDs()
}

// Connections is the number of live connections.
func (s *Service) Connections() int {
	return s.registry.Len()
}

// ActiveCalls is the number of ringing or accepted calls.
func (s *Service) ActiveCalls() int {
	return s.calls.Len()
}

// Close waits for pending presence listener notifications. The transport
// must be stopped first.
func (s *Service) Close() {
	s.presence.Close()
}
