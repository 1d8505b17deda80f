// Package call tracks the signaling lifecycle of calls between pairs of users.
//
// A session is keyed by the ordered (caller, callee) pair. It starts Ringing,
// may become Accepted, and is removed as soon as it reaches a terminal state.
// Actions that reference a missing session are reported as not applied rather
// than as errors, because signaling races are expected.
package call

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
)

var (
	ErrAlreadyInCall = errors.New("already in a call")
	ErrSelfCall      = errors.New("cannot call yourself")
)

// State is the lifecycle position of a call session.
type State int

const (
	Ringing State = iota
	Accepted
	Rejected
	Ended
)

func (s State) String() string {
	switch s {
	case Ringing:
		return "ringing"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is over.
func (s State) Terminal() bool { return s == Rejected || s == Ended }

// Session is a snapshot of one call between two users.
type Session struct {
	Caller    event.UserID
	Callee    event.UserID
	Channel   string
	State     State
	StartedAt time.Time
}

// Peer returns the other party of the session.
func (s Session) Peer(user event.UserID) event.UserID {
	if user == s.Caller {
		return s.Callee
	}
	return s.Caller
}

type pair struct {
	caller, callee event.UserID
}

// Machine owns every live call session. It is safe for concurrent use.
type Machine struct {
	mu       sync.Mutex
	sessions map[pair]*Session
	now      func() time.Time
	log      *slog.Logger
}

// NewMachine returns a machine with no sessions.
func NewMachine(log *slog.Logger) *Machine {
	return &Machine{
		sessions: make(map[pair]*Session),
		now:      time.Now,
		log:      log.With("component", "call"),
	}
}

// Ring opens a Ringing session from caller to callee.
func (m *Machine) Ring(caller, callee event.UserID, channel string) (Session, error) {
	if caller == callee {
		return Session{}, ErrSelfCall
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := pair{caller, callee}
	if s, ok := m.sessions[key]; ok {
		m.log.Debug("duplicate ring", "caller", caller, "callee", callee, "state", s.State)
		return Session{}, ErrAlreadyInCall
	}
	s := &Session{Caller: caller, Callee: callee, Channel: channel, State: Ringing, StartedAt: m.now()}
	m.sessions[key] = s
	m.log.Debug("ringing", "caller", caller, "callee", callee, "channel", channel)
	return *s, nil
}

// Accept moves a Ringing session to Accepted. Only the callee may accept.
func (m *Machine) Accept(callee, caller event.UserID) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[pair{caller, callee}]
	if !ok || s.State != Ringing {
		m.log.Debug("ignoring accept", "caller", caller, "callee", callee, "found", ok)
		return Session{}, false
	}
	s.State = Accepted
	return *s, true
}

// Reject ends a session between the two users as Rejected. Either party may
// reject. When both users are ringing each other, the call by is receiving
// is the one declined.
func (m *Machine) Reject(by, other event.UserID) (Session, bool) {
	return m.finish(by, other, Rejected, pair{other, by}, pair{by, other})
}

// End hangs up a session between the two users. When both users are ringing
// each other, by's own outgoing call is the one ended.
func (m *Machine) End(by, other event.UserID) (Session, bool) {
	return m.finish(by, other, Ended, pair{by, other}, pair{other, by})
}

// finish removes the first session found among keys.
func (m *Machine) finish(by, other event.UserID, to State, keys ...pair) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		s, ok := m.sessions[key]
		if !ok {
			continue
		}
		delete(m.sessions, key)
		s.State = to
		m.log.Debug("call finished", "caller", s.Caller, "callee", s.Callee, "state", to, "by", by)
		return *s, true
	}
	m.log.Debug("ignoring "+to.String(), "by", by, "other", other)
	return Session{}, false
}

// DropUser ends every session the user takes part in and returns them.
func (m *Machine) DropUser(user event.UserID) []Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	var dropped []Session
	for key, s := range m.sessions {
		if key.caller != user && key.callee != user {
			continue
		}
		delete(m.sessions, key)
		s.State = Ended
		dropped = append(dropped, *s)
	}
	return dropped
}

// Get returns the live session from caller to callee.
func (m *Machine) Get(caller, callee event.UserID) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[pair{caller, callee}]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Len is the number of live sessions.
func (m *Machine) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
