// Package delivery persists chat messages and pushes them to the live
// connections of their participants.
//
// A message is never pushed before it is stored. Participants without a live
// connection are skipped and will see the message in their history.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/fanout"
	"github.com/chandrashekhar-patil/Chat-App/internal/store"
)

var (
	ErrBlocked      = errors.New("blocked")
	ErrPersistence  = errors.New("persistence failed")
	ErrPolicy       = errors.New("policy lookup failed")
	ErrEmptyMessage = errors.New("message has no content")
	ErrNotMember    = errors.New("sender is not a member of the chat")
	ErrChatNotFound = errors.New("chat not found")
	ErrNoRecipient  = errors.New("message has no recipient")
)

// Target addresses a message to one user or to a group chat.
type Target struct {
	Receiver event.UserID
	Chat     event.ChatID
}

// Direct addresses a one-to-one message.
func Direct(receiver event.UserID) Target { return Target{Receiver: receiver} }

// Group addresses every member of chat.
func Group(chat event.ChatID) Target { return Target{Chat: chat} }

func (t Target) IsGroup() bool { return t.Chat != "" }

// Result describes a successful delivery.
type Result struct {
	Message    event.Message
	Recipients []event.UserID
	// Pushed counts the newMessage events accepted by live connections.
	Pushed int
}

// Pipeline persists chat messages and pushes them to the recipients. A
// message is pushed only after the store accepted it.
type Pipeline struct {
	messages store.MessageStore
	blocks   store.BlockPolicy
	chats    store.ChatDirectory
	out      fanout.Emitter
	log      *slog.Logger
}

// NewPipeline wires the pipeline to its stores and the fanout.
func NewPipeline(messages store.MessageStore, blocks store.BlockPolicy, chats store.ChatDirectory, out fanout.Emitter, log *slog.Logger) *Pipeline {
	return &Pipeline{
		messages: messages,
		blocks:   blocks,
		chats:    chats,
		out:      out,
		log:      log.With("component", "delivery"),
	}
}

// Deliver checks policy, persists msg and fans it out. The store call is not
// cancelled when ctx is, so a sender that disconnects mid-send still gets its
// message stored.
func (p *Pipeline) Deliver(ctx context.Context, msg event.Message, sender event.UserID, target Target) (Result, error) {
	msg.SenderID = sender
	msg.ReceiverID, msg.ChatID = target.Receiver, target.Chat
	if msg.IsEmpty() {
		return Result{}, ErrEmptyMessage
	}
	if !target.IsGroup() && target.Receiver == "" {
		return Result{}, ErrNoRecipient
	}

	var members []event.UserID
	if target.IsGroup() {
		m, err := p.groupMembers(ctx, sender, target.Chat)
		if err != nil {
			return Result{}, err
		}
		members = m
	} else if err := p.checkBlocks(ctx, sender, target.Receiver); err != nil {
		return Result{}, err
	}

	stored, err := p.messages.PersistMessage(context.WithoutCancel(ctx), msg)
	if err != nil {
		p.log.Warn("persist message failed", "sender", sender, "receiver", target.Receiver, "chat", target.Chat, "error", err)
		return Result{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if target.IsGroup() {
		return p.fanGroup(stored, sender, members), nil
	}
	return p.fanDirect(stored, sender, target.Receiver), nil
}

func (p *Pipeline) checkBlocks(ctx context.Context, sender, receiver event.UserID) error {
	if sender == receiver {
		return nil
	}
	blocked, err := p.blocks.IsBlocked(ctx, sender, receiver)
	if err != nil {
		p.log.Warn("block lookup failed", "sender", sender, "receiver", receiver, "error", err)
		return fmt.Errorf("%w: %w", ErrPolicy, err)
	}
	if blocked {
		p.log.Debug("message blocked", "sender", sender, "receiver", receiver)
		return ErrBlocked
	}
	return nil
}

func (p *Pipeline) groupMembers(ctx context.Context, sender event.UserID, chat event.ChatID) ([]event.UserID, error) {
	m, err := p.chats.GetChatMembers(ctx, chat)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrChatNotFound, chat)
	}
	if err != nil {
		p.log.Warn("membership lookup failed", "chat", chat, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPolicy, err)
	}
	if !m.Contains(sender) {
		return nil, ErrNotMember
	}
	return m.IDs, nil
}

// fanDirect echoes the message to both parties and notifies the receiver.
func (p *Pipeline) fanDirect(msg event.Message, sender, receiver event.UserID) Result {
	target := event.Echo(sender, receiver)
	pushed := p.out.Emit(event.Delivery{Event: event.NewMessage(msg), Target: target})
	if receiver != sender {
		p.out.Emit(event.Delivery{Event: event.Notification(msg), Target: event.ToUser(receiver)})
	}
	return Result{Message: msg, Recipients: target.Users(), Pushed: pushed}
}

// fanGroup notifies every member but the sender, who is answered through its
// own request.
func (p *Pipeline) fanGroup(msg event.Message, sender event.UserID, members []event.UserID) Result {
	target := event.NotifyOthers(members, sender)
	pushed := p.out.Emit(event.Delivery{Event: event.NewMessage(msg), Target: target})
	p.out.Emit(event.Delivery{Event: event.Notification(msg), Target: target})
	return Result{Message: msg, Recipients: target.Users(), Pushed: pushed}
}
