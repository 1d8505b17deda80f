package registry_test

import (
	"sync"
	"testing"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/registry"
	"github.com/chandrashekhar-patil/Chat-App/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegister_LookupRoundTrip(t *testing.T) {
	req := require.New(t)
	reg := registry.New(testutil.Logger())

	// Given a registered connection
	h := testutil.NewHandle(testutil.Alice)
	_, replaced := reg.Register(h)
	req.False(replaced)

	// When looking up the user
	got, ok := reg.Lookup(testutil.Alice)

	// Then the same handle is returned
	req.True(ok)
	req.Equal(h.ID(), got.ID())

	// And after unregistering it the user is offline
	user, removed := reg.Unregister(h)
	req.True(removed)
	req.Equal(testutil.Alice, user)
	_, ok = reg.Lookup(testutil.Alice)
	req.False(ok)
}

func TestRegister_LastConnectionWins(t *testing.T) {
	req := require.New(t)
	reg := registry.New(testutil.Logger())

	// Given three successive connections of the same user
	first := testutil.NewHandle(testutil.Alice)
	second := testutil.NewHandle(testutil.Alice)
	third := testutil.NewHandle(testutil.Alice)
	reg.Register(first)
	reg.Register(second)
	prev, replaced := reg.Register(third)

	// Then one entry remains and it is the newest
	req.True(replaced)
	req.Equal(second.ID(), prev.ID())
	req.Equal(1, reg.Len())
	got, _ := reg.Lookup(testutil.Alice)
	req.Equal(third.ID(), got.ID())

	// And every older handle was closed
	closed, reason := first.Closed()
	req.True(closed)
	req.Equal(registry.ReasonReplaced, reason)
	closed, _ = second.Closed()
	req.True(closed)
	closed, _ = third.Closed()
	req.False(closed)
}

func TestUnregister_SupersededHandleIsNoop(t *testing.T) {
	req := require.New(t)
	reg := registry.New(testutil.Logger())

	// Given a connection replaced by a newer one
	old := testutil.NewHandle(testutil.Alice)
	fresh := testutil.NewHandle(testutil.Alice)
	reg.Register(old)
	reg.Register(fresh)

	// When the old connection's disconnect arrives late
	_, removed := reg.Unregister(old)

	// Then the live entry is untouched
	req.False(removed)
	got, ok := reg.Lookup(testutil.Alice)
	req.True(ok)
	req.Equal(fresh.ID(), got.ID())
}

func TestUnregister_Twice(t *testing.T) {
	req := require.New(t)
	reg := registry.New(testutil.Logger())

	h := testutil.NewHandle(testutil.Bob)
	reg.Register(h)

	_, first := reg.Unregister(h)
	_, second := reg.Unregister(h)

	req.True(first)
	req.False(second)
}

func TestRegister_SameHandleTwice(t *testing.T) {
	req := require.New(t)
	reg := registry.New(testutil.Logger())

	h := testutil.NewHandle(testutil.Bob)
	reg.Register(h)
	_, replaced := reg.Register(h)

	req.False(replaced)
	closed, _ := h.Closed()
	req.False(closed)
}

func TestAllOnlineUserIDs_Sorted(t *testing.T) {
	req := require.New(t)
	reg := registry.New(testutil.Logger())

	for _, u := range []event.UserID{testutil.Carol, testutil.Alice, testutil.Bob} {
		reg.Register(testutil.NewHandle(u))
	}

	req.Equal([]event.UserID{testutil.Alice, testutil.Bob, testutil.Carol}, reg.AllOnlineUserIDs())
	req.Len(reg.Handles(), 3)
}

func TestRegistry_ConcurrentReconnects(t *testing.T) {
	req := require.New(t)
	reg := registry.New(testutil.Logger())

	// Given many racing connections and disconnections for one user
	const n = 50
	handles := make([]*testutil.FakeHandle, n)
	for i := range handles {
		handles[i] = testutil.NewHandle(testutil.Alice)
	}

	var wg sync.WaitGroup
	for _, h := range handles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Register(h)
		}()
	}
	wg.Wait()

	// Then exactly one handle survives and it is the only open one
	req.Equal(1, reg.Len())
	live, ok := reg.Lookup(testutil.Alice)
	req.True(ok)
	open := 0
	for _, h := range handles {
		if closed, _ := h.Closed(); !closed {
			open++
			req.Equal(live.ID(), h.ID())
		}
	}
	req.Equal(1, open)

	// When the stale handles unregister concurrently
	for _, h := range handles {
		if h.ID() == live.ID() {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Unregister(h)
		}()
	}
	wg.Wait()

	// Then the live handle is still registered
	got, ok := reg.Lookup(testutil.Alice)
	req.True(ok)
	req.Equal(live.ID(), got.ID())
}
