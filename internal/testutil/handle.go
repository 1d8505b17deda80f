// Package testutil holds in-memory doubles shared by the core packages' tests.
package testutil

import (
	"log/slog"
	"sync"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
)

// Stable ObjectID-shaped user ids.
const (
	Alice event.UserID = "64b7f0c2a1b2c3d4e5f60001"
	Bob   event.UserID = "64b7f0c2a1b2c3d4e5f60002"
	Carol event.UserID = "64b7f0c2a1b2c3d4e5f60003"
	Dave  event.UserID = "64b7f0c2a1b2c3d4e5f60004"

	GroupChat event.ChatID = "64b7f0c2a1b2c3d4e5f6aaaa"
)

func Logger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelDebug)
}

// FakeHandle records every event sent to it. Once closed it refuses further
// events, like a real connection.
type FakeHandle struct {
	id   uuid.UUID
	user event.UserID

	mu     sync.Mutex
	events []event.Outbound
	frames []*event.Frame
	closed bool
	reason string
}

func NewHandle(user event.UserID) *FakeHandle {
	return &FakeHandle{id: uuid.New(), user: user}
}

func (h *FakeHandle) ID() uuid.UUID        { return h.id }
func (h *FakeHandle) UserID() event.UserID { return h.user }

func (h *FakeHandle) Send(f *event.Frame) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.events = append(h.events, f.Event)
	h.frames = append(h.frames, f)
	return true
}

// Frames returns the frames received so far, in order.
func (h *FakeHandle) Frames() []*event.Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*event.Frame(nil), h.frames...)
}

func (h *FakeHandle) Close(reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.reason = reason
}

func (h *FakeHandle) Closed() (bool, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed, h.reason
}

// Events returns a copy of everything received so far.
func (h *FakeHandle) Events() []event.Outbound {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]event.Outbound(nil), h.events...)
}

// Kinds returns the kinds received so far, in order.
func (h *FakeHandle) Kinds() []event.Kind {
	events := h.Events()
	kinds := make([]event.Kind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}

// OfKind returns the received events of one kind.
func (h *FakeHandle) OfKind(k event.Kind) []event.Outbound {
	var out []event.Outbound
	for _, e := range h.Events() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets received events.
func (h *FakeHandle) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = nil
	h.frames = nil
}
