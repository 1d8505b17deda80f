// Package registry maps each online user to the single live connection that
// currently represents them.
package registry

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ReasonReplaced is the close reason given to a connection evicted by a newer
// connection of the same user.
const ReasonReplaced = "replaced by a newer connection"

// Handle is a live connection as seen by the core. Send must not block; it
// reports false when the frame could not be queued. A frame may be shared
// with other handles.
type Handle interface {
	ID() uuid.UUID
	UserID() event.UserID
	Send(*event.Frame) bool
	Close(reason string)
}

// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	handles map[event.UserID]Handle
	log     *slog.Logger
}

// New returns an empty registry.
func New(log *slog.Logger) *Registry {
	return &Registry{
		handles: make(map[event.UserID]Handle),
		log:     log.With("component", "registry"),
	}
}

// Register stores h as the user's live connection. A previous connection of
// the same user is force-closed after the swap and returned.
func (r *Registry) Register(h Handle) (prev Handle, replaced bool) {
	user := h.UserID()

	r.mu.Lock()
	prev, replaced = r.handles[user]
	r.handles[user] = h
	count := len(r.handles)
	r.mu.Unlock()

	if replaced && prev.ID() == h.ID() {
		return nil, false
	}
	if replaced {
		r.log.Info("connection replaced", "user", user, "old", prev.ID(), "new", h.ID())
		prev.Close(ReasonReplaced)
	}
	r.log.Info("connection registered", "user", user, "handle", h.ID(), "online", count)
	return prev, replaced
}

// Unregister removes h if it is still the current connection of its user.
// A superseded handle leaves the registry untouched and reports false.
func (r *Registry) Unregister(h Handle) (event.UserID, bool) {
	user := h.UserID()

	r.mu.Lock()
	current, ok := r.handles[user]
	if !ok || current.ID() != h.ID() {
		r.mu.Unlock()
		r.log.Debug("ignoring unregister of superseded handle", "user", user, "handle", h.ID())
		return "", false
	}
	delete(r.handles, user)
	count := len(r.handles)
	r.mu.Unlock()

	r.log.Info("connection unregistered", "user", user, "handle", h.ID(), "online", count)
	return user, true
}

// Lookup returns the live connection of a user, if any.
func (r *Registry) Lookup(user event.UserID) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[user]
	return h, ok
}

// AllOnlineUserIDs returns a sorted snapshot of the online users.
func (r *Registry) AllOnlineUserIDs() []event.UserID {
	r.mu.RLock()
	ids := lo.Keys(r.handles)
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Handles returns a snapshot of every live connection.
func (r *Registry) Handles() []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Values(r.handles)
}

// Len reports the number of users online.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}
