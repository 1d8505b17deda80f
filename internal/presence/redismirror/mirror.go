// Package redismirror keeps a Redis SET in step with the online roster so
// that processes outside the realtime core can read presence.
package redismirror

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/presence"
	"github.com/redis/go-redis/v9"
)

// Commander is the subset of the Redis client the mirror issues.
type Commander interface {
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var (
	_ Commander         = (*redis.Client)(nil)
	_ presence.Listener = (*Mirror)(nil)
)

type Mirror struct {
	rdb Commander
	key string
	log *slog.Logger
}

func New(rdb Commander, key string, log *slog.Logger) *Mirror {
	return &Mirror{rdb: rdb, key: key, log: log.With("component", "redismirror", "key", key)}
}

// Reset drops whatever a previous process left in the set. Presence does not
// survive a restart.
func (m *Mirror) Reset(ctx context.Context) error {
	if err := m.rdb.Del(ctx, m.key).Err(); err != nil {
		return fmt.Errorf("reset presence set: %w", err)
	}
	return nil
}

func (m *Mirror) UserOnline(ctx context.Context, user event.UserID) error {
	if err := m.rdb.SAdd(ctx, m.key, string(user)).Err(); err != nil {
		return fmt.Errorf("mark %s online: %w", user, err)
	}
	m.log.Debug("mirrored online", "user", user)
	return nil
}

func (m *Mirror) UserOffline(ctx context.Context, user event.UserID) error {
	if err := m.rdb.SRem(ctx, m.key, string(user)).Err(); err != nil {
		return fmt.Errorf("mark %s offline: %w", user, err)
	}
	m.log.Debug("mirrored offline", "user", user)
	return nil
}
