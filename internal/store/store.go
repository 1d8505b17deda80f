//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_store.go -package=mocks

// Package store declares the persistence operations the realtime core
// consumes. Implementations live in subpackages.
package store

import (
	"context"
	"errors"
	"slices"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
)

// ErrNotFound is returned when a chat or user does not exist.
var ErrNotFound = errors.New("not found")

// Members is the membership of a chat as seen by the core.
type Members struct {
	IDs     []event.UserID
	Creator event.UserID
	IsGroup bool
}

func (m Members) Contains(user event.UserID) bool {
	return slices.Contains(m.IDs, user)
}

// MessageStore persists chat messages. The returned message carries the
// store-assigned id and timestamp.
type MessageStore interface {
	PersistMessage(ctx context.Context, msg event.Message) (event.Message, error)
}

// BlockPolicy answers whether either of two users has blocked the other.
type BlockPolicy interface {
	IsBlocked(ctx context.Context, a, b event.UserID) (bool, error)
}

// ChatDirectory resolves group chat membership.
type ChatDirectory interface {
	GetChatMembers(ctx context.Context, chat event.ChatID) (Members, error)
}

// Store is the full collaborator boundary.
type Store interface {
	MessageStore
	BlockPolicy
	ChatDirectory
}
