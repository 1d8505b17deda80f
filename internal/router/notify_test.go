package router_test

import (
	"errors"
	"testing"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/router"
	"github.com/chandrashekhar-patil/Chat-App/internal/store"
	"github.com/chandrashekhar-patil/Chat-App/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotifyChatCleared_EachSideSeesTheOther(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)

	sent := e.router.NotifyChatCleared([]event.UserID{testutil.Alice, testutil.Bob}, testutil.Alice)

	req.Equal(2, sent)
	req.Equal([]event.Outbound{event.ChatCleared(string(testutil.Bob))}, e.h[testutil.Alice].Events())
	req.Equal([]event.Outbound{event.ChatCleared(string(testutil.Alice))}, e.h[testutil.Bob].Events())
}

func TestNotifyGroupCleared(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob, testutil.Carol)

	e.store.EXPECT().GetChatMembers(gomock.Any(), testutil.GroupChat).Return(store.Members{
		IDs: []event.UserID{testutil.Alice, testutil.Bob}, IsGroup: true,
	}, nil)

	sent, err := e.router.NotifyGroupCleared(ctx, testutil.GroupChat)

	req.NoError(err)
	req.Equal(2, sent)
	req.Equal([]event.Outbound{event.ChatCleared(string(testutil.GroupChat))}, e.h[testutil.Bob].Events())
	req.Empty(e.h[testutil.Carol].Events())
}

func TestNotifyGroupCleared_UnknownChat(t *testing.T) {
	e := newEnv(t, testutil.Alice)
	e.store.EXPECT().GetChatMembers(gomock.Any(), testutil.GroupChat).Return(store.Members{}, store.ErrNotFound)

	_, err := e.router.NotifyGroupCleared(ctx, testutil.GroupChat)

	require.True(t, errors.Is(err, store.ErrNotFound))
}

func TestNotifyGroupUpdated(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob, testutil.Carol)
	g := event.Group{ID: testutil.GroupChat, Name: "team", Members: []event.UserID{testutil.Alice, testutil.Carol}}

	sent := e.router.NotifyGroupUpdated(g)

	req.Equal(2, sent)
	req.Equal([]event.Outbound{event.GroupUpdated(g)}, e.h[testutil.Carol].Events())
	req.Empty(e.h[testutil.Bob].Events())
}

func TestNotifyGroupDeleted(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob, testutil.Carol)

	// With members, only they are told
	req.Equal(1, e.router.NotifyGroupDeleted(testutil.GroupChat, []event.UserID{testutil.Bob}))
	req.Empty(e.h[testutil.Alice].Events())

	// With nobody left, everyone is told
	e.reset()
	req.Equal(3, e.router.NotifyGroupDeleted(testutil.GroupChat, nil))
	req.Equal([]event.Outbound{event.GroupDeleted(testutil.GroupChat)}, e.h[testutil.Alice].Events())
}

func TestNotifyUserRemoved(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob, testutil.Carol)

	sent := e.router.NotifyUserRemoved(testutil.GroupChat, testutil.Carol, []event.UserID{testutil.Alice, testutil.Bob})

	req.Equal(2, sent)
	req.Equal([]event.Outbound{event.UserRemoved(testutil.GroupChat, testutil.Carol)}, e.h[testutil.Alice].Events())
	req.Empty(e.h[testutil.Carol].Events())
}

func TestNotifyUserDeleted(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)

	e.router.NotifyUserDeleted(testutil.Alice)

	req.Equal([]event.Outbound{event.AccountDeleted(testutil.Alice)}, e.h[testutil.Alice].Events())
	req.Equal([]event.Outbound{event.UserDeleted(testutil.Alice)}, e.h[testutil.Bob].Events())
	closed, reason := e.h[testutil.Alice].Closed()
	req.True(closed)
	req.Equal(router.ReasonAccountDeleted, reason)
}
