// Package presence announces roster changes to connected clients and to
// in-process listeners.
//
// Client announcements are pushed inline. Listeners run on the broadcaster's
// own goroutine, fed by a bounded queue, so a slow listener never delays a
// connect or disconnect. Transitions that do not fit in the queue are dropped
// and logged.
package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/fanout"
)

const (
	// ListenerTimeout bounds a single listener call.
	ListenerTimeout = 2 * time.Second

	listenerQueueSize = 256
)

// Listener observes single-user presence transitions.
type Listener interface {
	UserOnline(ctx context.Context, user event.UserID) error
	UserOffline(ctx context.Context, user event.UserID) error
}

// Roster is the snapshot source, normally the registry.
type Roster interface {
	AllOnlineUserIDs() []event.UserID
}

type transition struct {
	ctx    context.Context
	user   event.UserID
	online bool
}

// Broadcaster derives presence events from registry changes. Close must be
// called once no more transitions will be reported.
type Broadcaster struct {
	roster    Roster
	out       fanout.Emitter
	listeners []Listener
	timeout   time.Duration
	log       *slog.Logger

	mu     sync.Mutex
	closed bool
	queue  chan transition
	done   chan struct{}
}

// NewBroadcaster starts the listener goroutine when listeners are given.
func NewBroadcaster(roster Roster, out fanout.Emitter, log *slog.Logger, listeners ...Listener) *Broadcaster {
	b := &Broadcaster{
		roster:    roster,
		out:       out,
		listeners: listeners,
		timeout:   ListenerTimeout,
		log:       log.With("component", "presence"),
		queue:     make(chan transition, listenerQueueSize),
		done:      make(chan struct{}),
	}
	if len(listeners) == 0 {
		close(b.done)
	} else {
		go b.notifyListeners()
	}
	return b
}

// Connected announces that user came online. A reconnect that replaced a
// live connection is not a roster change, so only the new connection gets
// the snapshot.
func (b *Broadcaster) Connected(ctx context.Context, user event.UserID, reconnect bool) {
	roster := event.OnlineUsers(b.roster.AllOnlineUserIDs())
	if reconnect {
		b.out.Emit(event.Delivery{Event: roster, Target: event.ToUser(user)})
		return
	}

	b.out.Emit(event.Delivery{Event: roster, Target: event.Broadcast()})
	b.out.Emit(event.Delivery{Event: event.UserOnline(user), Target: event.BroadcastExcept(user)})
	b.enqueue(ctx, user, true)
}

// Disconnected announces that user went offline.
func (b *Broadcaster) Disconnected(ctx context.Context, user event.UserID) {
	b.out.Emit(event.Delivery{Event: event.OnlineUsers(b.roster.AllOnlineUserIDs()), Target: event.Broadcast()})
	b.out.Emit(event.Delivery{Event: event.UserOffline(user), Target: event.BroadcastExcept(user)})
	b.enqueue(ctx, user, false)
}

// Close stops accepting transitions and waits for queued ones to reach the
// listeners.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		if len(b.listeners) > 0 {
			close(b.queue)
		}
	}
	b.mu.Unlock()
	<-b.done
}

func (b *Broadcaster) enqueue(ctx context.Context, user event.UserID, online bool) {
	if len(b.listeners) == 0 {
		return
	}
	t := transition{ctx: context.WithoutCancel(ctx), user: user, online: online}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.queue <- t:
	default:
		b.log.Warn("presence listener queue full; dropping transition", "user", user, "online", online)
	}
}

func (b *Broadcaster) notifyListeners() {
	defer close(b.done)
	for t := range b.queue {
		for _, l := range b.listeners {
			b.notify(l, t)
		}
	}
}

func (b *Broadcaster) notify(l Listener, t transition) {
	ctx, cancel := context.WithTimeout(t.ctx, b.timeout)
	defer cancel()

	var err error
	kind := "offline"
	if t.online {
		kind = "online"
		err = l.UserOnline(ctx, t.user)
	} else {
		err = l.UserOffline(ctx, t.user)
	}
	if err != nil {
		b.log.Warn("presence listener failed", "user", t.user, "transition", kind, "error", err)
	}
}
