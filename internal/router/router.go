// Package router turns inbound client events and REST-originated changes
// into outbound deliveries.
package router

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chandrashekhar-patil/Chat-App/internal/call"
	"github.com/chandrashekhar-patil/Chat-App/internal/delivery"
	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/fanout"
	"github.com/chandrashekhar-patil/Chat-App/internal/registry"
	"github.com/chandrashekhar-patil/Chat-App/internal/store"
	"github.com/google/uuid"
)

// Call error texts shown to the caller.
const (
	MsgCalleeOffline = "User not found or offline"
	MsgAlreadyInCall = "already in a call"
	MsgSelfCall      = "cannot call yourself"
)

// Call end reasons.
const (
	ReasonHangup       = "hangup"
	ReasonDisconnected = "disconnected"
)

// ReasonAccountDeleted closes the connection of a deleted account.
const ReasonAccountDeleted = "account deleted"

// Deliverer runs the message delivery pipeline.
type Deliverer interface {
	Deliver(ctx context.Context, msg event.Message, sender event.UserID, target delivery.Target) (delivery.Result, error)
}

// Presence is the part of the registry the router reads.
type Presence interface {
	Lookup(event.UserID) (registry.Handle, bool)
}

// Router handles the events a connected client sends.
type Router struct {
	online   Presence
	calls    *call.Machine
	messages Deliverer
	chats    store.ChatDirectory
	out      fanout.Emitter
	log      *slog.Logger
}

// New returns a router over the given collaborators.
func New(online Presence, calls *call.Machine, messages Deliverer, chats store.ChatDirectory, out fanout.Emitter, log *slog.Logger) *Router {
	return &Router{
		online:   online,
		calls:    calls,
		messages: messages,
		chats:    chats,
		out:      out,
		log:      log.With("component", "router"),
	}
}

// Route handles one event sent by sender's connection.
func (r *Router) Route(ctx context.Context, sender event.UserID, in event.Inbound) {
	switch ev := in.(type) {
	case event.Call:
		r.ring(sender, ev)
	case event.AcceptCall:
		r.accept(sender, ev)
	case event.RejectCall:
		r.reject(sender, ev)
	case event.EndCall:
		r.hangup(sender, ev)
	case event.Typing:
		r.typing(sender, ev)
	case event.SendMessage:
		r.send(ctx, sender, ev)
	default:
		r.log.Warn("unroutable event", "user", sender, "event", in.Name())
	}
}

func (r *Router) emit(o event.Outbound, t event.Target) int {
	return r.out.Emit(event.Delivery{Event: o, Target: t})
}

func (r *Router) ring(caller event.UserID, ev event.Call) {
	if ev.To == caller {
		r.emit(event.CallError(MsgSelfCall), event.ToUser(caller))
		return
	}
	if _, ok := r.online.Lookup(ev.To); !ok {
		r.emit(event.CallError(MsgCalleeOffline), event.ToUser(caller))
		return
	}

	channel := ev.Channel
	if channel == "" {
		channel = uuid.NewString()
	}
	s, err := r.calls.Ring(caller, ev.To, channel)
	switch {
	case errors.Is(err, call.ErrAlreadyInCall):
		r.emit(event.CallError(MsgAlreadyInCall), event.ToUser(caller))
		return
	case errors.Is(err, call.ErrSelfCall):
		r.emit(event.CallError(MsgSelfCall), event.ToUser(caller))
		return
	case err != nil:
		r.log.Error("ring failed", "caller", caller, "callee", ev.To, "error", err)
		return
	}

	r.emit(event.IncomingCall(caller, s.Channel), event.ToUser(s.Callee))
	r.emit(event.CallInitiated(s.Callee, s.Channel), event.ToUser(caller))
}

func (r *Router) accept(callee event.UserID, ev event.AcceptCall) {
	s, ok := r.calls.Accept(callee, ev.To)
	if !ok {
		return
	}
	r.emit(event.CallAccepted(callee, s.Channel), event.ToUser(s.Caller))
}

func (r *Router) reject(by event.UserID, ev event.RejectCall) {
	s, ok := r.calls.Reject(by, ev.To)
	if !ok {
		return
	}
	r.emit(event.CallRejected(by), event.Echo(s.Caller, s.Callee))
}

func (r *Router) hangup(by event.UserID, ev event.EndCall) {
	s, ok := r.calls.End(by, ev.To)
	if !ok {
		return
	}
	r.emit(event.CallEnded(by, ReasonHangup), event.Echo(s.Caller, s.Callee))
}

// EndCallsFor ends every call of a user whose connection went away and tells
// both parties. The user is still reachable when a newer connection replaced
// the old one.
func (r *Router) EndCallsFor(user event.UserID) {
	for _, s := range r.calls.DropUser(user) {
		r.log.Debug("call ended by disconnect", "user", user, "peer", s.Peer(user), "state", s.State)
		r.emit(event.CallEnded(user, ReasonDisconnected), event.Echo(user, s.Peer(user)))
	}
}

func (r *Router) typing(sender event.UserID, ev event.Typing) {
	if ev.ReceiverID == sender {
		return
	}
	r.emit(event.TypingEvent(sender, ev.Typing), event.ToUser(ev.ReceiverID))
}

func (r *Router) send(ctx context.Context, sender event.UserID, ev event.SendMessage) {
	target := delivery.Direct(ev.ReceiverID)
	if ev.ChatID != "" {
		target = delivery.Group(ev.ChatID)
	}

	res, err := r.messages.Deliver(ctx, ev.Message(sender), sender, target)
	if err != nil {
		r.log.Debug("message rejected", "user", sender, "client_id", ev.ClientID, "error", err)
		r.emit(event.MessageError(ev.ClientID, FailureReason(err)), event.ToUser(sender))
		return
	}
	r.emit(event.MessageSent(ev.ClientID, res.Message), event.ToUser(sender))
}

// FailureReason maps a delivery error to the code reported to the sender.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, delivery.ErrBlocked):
		return "blocked"
	case errors.Is(err, delivery.ErrEmptyMessage):
		return "empty_message"
	case errors.Is(err, delivery.ErrNoRecipient):
		return "no_recipient"
	case errors.Is(err, delivery.ErrNotMember):
		return "not_member"
	case errors.Is(err, delivery.ErrChatNotFound):
		return "chat_not_found"
	case errors.Is(err, delivery.ErrPolicy):
		return "policy_unavailable"
	case errors.Is(err, delivery.ErrPersistence):
		return "persistence_failed"
	default:
		return "internal_error"
	}
}
