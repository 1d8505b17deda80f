// Package fanout pushes outbound events to the live connections a delivery
// targets. Delivery is best-effort: offline users and full connections are
// skipped.
package fanout

import (
	"log/slog"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/registry"
)

// Emitter pushes a delivery and returns how many connections accepted it.
type Emitter interface {
	Emit(event.Delivery) int
}

// Directory is the part of the registry the fan-out reads.
type Directory interface {
	Lookup(event.UserID) (registry.Handle, bool)
	Handles() []registry.Handle
}

var _ Emitter = (*Fanout)(nil)

// Fanout is the Emitter backed by the connection registry.
type Fanout struct {
	dir Directory
	log *slog.Logger
}

// New returns a Fanout that resolves targets through dir.
func New(dir Directory, log *slog.Logger) *Fanout {
	return &Fanout{dir: dir, log: log.With("component", "fanout")}
}

// Emit pushes d to every live connection its target covers. The event is
// encoded once and the frame shared between recipients.
func (f *Fanout) Emit(d event.Delivery) int {
	frame := event.NewFrame(d.Event)
	if d.Target.IsBroadcast() {
		return f.broadcast(frame, d.Target)
	}

	sent := 0
	for _, user := range d.Target.Users() {
		h, ok := f.dir.Lookup(user)
		if !ok {
			f.log.Debug("target offline", "event", d.Event.Kind, "user", user)
			continue
		}
		if f.push(h, frame) {
			sent++
		}
	}
	return sent
}

func (f *Fanout) broadcast(frame *event.Frame, target event.Target) int {
	sent := 0
	for _, h := range f.dir.Handles() {
		if !target.Includes(h.UserID()) {
			continue
		}
		if f.push(h, frame) {
			sent++
		}
	}
	return sent
}

func (f *Fanout) push(h registry.Handle, frame *event.Frame) bool {
	if h.Send(frame) {
		return true
	}
	f.log.Debug("event dropped", "event", frame.Event.Kind, "user", h.UserID(), "handle", h.ID())
	return false
}
