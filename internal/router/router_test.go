package router_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chandrashekhar-patil/Chat-App/internal/call"
	"github.com/chandrashekhar-patil/Chat-App/internal/delivery"
	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/fanout"
	"github.com/chandrashekhar-patil/Chat-App/internal/mocks"
	"github.com/chandrashekhar-patil/Chat-App/internal/registry"
	"github.com/chandrashekhar-patil/Chat-App/internal/router"
	"github.com/chandrashekhar-patil/Chat-App/internal/store"
	"github.com/chandrashekhar-patil/Chat-App/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type env struct {
	router *router.Router
	calls  *call.Machine
	store  *mocks.MockStore
	reg    *registry.Registry
	h      map[event.UserID]*testutil.FakeHandle
}

func newEnv(t *testing.T, online ...event.UserID) env {
	log := testutil.Logger()
	reg := registry.New(log)
	out := fanout.New(reg, log)
	st := mocks.NewMockStore(gomock.NewController(t))
	calls := call.NewMachine(log)
	pipeline := delivery.NewPipeline(st, st, st, out, log)

	e := env{
		router: router.New(reg, calls, pipeline, st, out, log),
		calls:  calls,
		store:  st,
		reg:    reg,
		h:      make(map[event.UserID]*testutil.FakeHandle),
	}
	for _, u := range online {
		e.h[u] = testutil.NewHandle(u)
		reg.Register(e.h[u])
	}
	return e
}

func (e env) reset() {
	for _, h := range e.h {
		h.Reset()
	}
}

var ctx = context.Background()

func TestCall_RingsCalleeAndConfirmsCaller(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)

	e.router.Route(ctx, testutil.Alice, event.Call{To: testutil.Bob, Channel: "room"})

	req.Equal([]event.Outbound{event.IncomingCall(testutil.Alice, "room")}, e.h[testutil.Bob].Events())
	req.Equal([]event.Outbound{event.CallInitiated(testutil.Bob, "room")}, e.h[testutil.Alice].Events())
}

func TestCall_GeneratesChannel(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)

	e.router.Route(ctx, testutil.Alice, event.Call{To: testutil.Bob})

	s, ok := e.calls.Get(testutil.Alice, testutil.Bob)
	req.True(ok)
	req.NotEmpty(s.Channel)
	req.Equal([]event.Outbound{event.IncomingCall(testutil.Alice, s.Channel)}, e.h[testutil.Bob].Events())
}

func TestCall_OfflineCallee(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice)

	e.router.Route(ctx, testutil.Alice, event.Call{To: testutil.Bob, Channel: "room"})

	req.Equal([]event.Outbound{event.CallError(router.MsgCalleeOffline)}, e.h[testutil.Alice].Events())
	req.Zero(e.calls.Len())
}

func TestCall_DuplicateThenRejectThenRetry(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)

	// Given A rings B twice
	e.router.Route(ctx, testutil.Alice, event.Call{To: testutil.Bob, Channel: "one"})
	e.reset()
	e.router.Route(ctx, testutil.Alice, event.Call{To: testutil.Bob, Channel: "two"})

	// Then the second ring is refused and B is not rung again
	req.Equal([]event.Outbound{event.CallError(router.MsgAlreadyInCall)}, e.h[testutil.Alice].Events())
	req.Empty(e.h[testutil.Bob].Events())

	// When B rejects, both sides learn the call is over
	e.reset()
	e.router.Route(ctx, testutil.Bob, event.RejectCall{To: testutil.Alice})
	req.Equal([]event.Outbound{event.CallRejected(testutil.Bob)}, e.h[testutil.Alice].Events())
	req.Equal([]event.Outbound{event.CallRejected(testutil.Bob)}, e.h[testutil.Bob].Events())

	// And A can ring again
	e.reset()
	e.router.Route(ctx, testutil.Alice, event.Call{To: testutil.Bob, Channel: "three"})
	req.Equal([]event.Kind{event.KindIncomingCall}, e.h[testutil.Bob].Kinds())
}

func TestAccept_OnlyFromCallee(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob, testutil.Carol)
	e.router.Route(ctx, testutil.Alice, event.Call{To: testutil.Bob, Channel: "room"})
	e.reset()

	// Carol cannot answer a call meant for Bob
	e.router.Route(ctx, testutil.Carol, event.AcceptCall{To: testutil.Alice})
	req.Empty(e.h[testutil.Alice].Events())

	e.router.Route(ctx, testutil.Bob, event.AcceptCall{To: testutil.Alice, Channel: "ignored"})
	req.Equal([]event.Outbound{event.CallAccepted(testutil.Bob, "room")}, e.h[testutil.Alice].Events())

	s, _ := e.calls.Get(testutil.Alice, testutil.Bob)
	req.Equal(call.Accepted, s.State)
}

func TestSignalingWithoutSessionIsSilent(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)

	e.router.Route(ctx, testutil.Bob, event.AcceptCall{To: testutil.Alice})
	e.router.Route(ctx, testutil.Bob, event.RejectCall{To: testutil.Alice})
	e.router.Route(ctx, testutil.Bob, event.EndCall{To: testutil.Alice})

	req.Empty(e.h[testutil.Alice].Events())
	req.Empty(e.h[testutil.Bob].Events())
}

func TestEndCall_Hangup(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)
	e.router.Route(ctx, testutil.Alice, event.Call{To: testutil.Bob, Channel: "room"})
	e.router.Route(ctx, testutil.Bob, event.AcceptCall{To: testutil.Alice})
	e.reset()

	e.router.Route(ctx, testutil.Alice, event.EndCall{To: testutil.Bob})

	want := []event.Outbound{event.CallEnded(testutil.Alice, router.ReasonHangup)}
	req.Equal(want, e.h[testutil.Alice].Events())
	req.Equal(want, e.h[testutil.Bob].Events())
	req.Zero(e.calls.Len())
}

func TestEndCallsFor_NotifiesBothParties(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)
	e.router.Route(ctx, testutil.Alice, event.Call{To: testutil.Bob, Channel: "room"})
	e.reset()

	e.router.EndCallsFor(testutil.Alice)

	want := []event.Outbound{event.CallEnded(testutil.Alice, router.ReasonDisconnected)}
	req.Equal(want, e.h[testutil.Bob].Events())
	req.Equal(want, e.h[testutil.Alice].Events())
	req.Zero(e.calls.Len())
}

func TestTyping(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)

	e.router.Route(ctx, testutil.Alice, event.Typing{ReceiverID: testutil.Bob, Typing: true})
	e.router.Route(ctx, testutil.Alice, event.Typing{ReceiverID: testutil.Carol, Typing: true})
	e.router.Route(ctx, testutil.Alice, event.Typing{ReceiverID: testutil.Alice, Typing: true})

	req.Equal([]event.Outbound{event.TypingEvent(testutil.Alice, true)}, e.h[testutil.Bob].Events())
	req.Empty(e.h[testutil.Alice].Events())
}

func TestSendMessage_GroupConfirmsSenderOnly(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob, testutil.Dave)

	e.store.EXPECT().GetChatMembers(gomock.Any(), testutil.GroupChat).Return(store.Members{
		IDs: []event.UserID{testutil.Alice, testutil.Bob, testutil.Dave}, IsGroup: true,
	}, nil)
	e.store.EXPECT().PersistMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m event.Message) (event.Message, error) {
			m.ID = "64b7f0c2a1b2c3d4e5f6ffff"
			return m, nil
		})

	e.router.Route(ctx, testutil.Alice, event.SendMessage{ClientID: "c-1", ChatID: testutil.GroupChat, Text: "hi"})

	req.Equal([]event.Kind{event.KindMessageSent}, e.h[testutil.Alice].Kinds())
	sent := e.h[testutil.Alice].Events()[0].Payload.(event.MessageSentPayload)
	req.Equal("c-1", sent.ClientID)
	req.Equal("64b7f0c2a1b2c3d4e5f6ffff", sent.Message.ID)
	for _, u := range []event.UserID{testutil.Bob, testutil.Dave} {
		req.Equal([]event.Kind{event.KindNewMessage, event.KindNotification}, e.h[u].Kinds())
	}
}

func TestSendMessage_BlockedReportsToSender(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, testutil.Alice, testutil.Bob)

	e.store.EXPECT().IsBlocked(gomock.Any(), testutil.Alice, testutil.Bob).Return(true, nil)
	e.store.EXPECT().PersistMessage(gomock.Any(), gomock.Any()).Times(0)

	e.router.Route(ctx, testutil.Alice, event.SendMessage{ClientID: "c-2", ReceiverID: testutil.Bob, Text: "hi"})

	req.Equal([]event.Outbound{event.MessageError("c-2", "blocked")}, e.h[testutil.Alice].Events())
	req.Empty(e.h[testutil.Bob].Events())
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{delivery.ErrBlocked, "blocked"},
		{fmt.Errorf("%w: %w", delivery.ErrPersistence, errors.New("x")), "persistence_failed"},
		{fmt.Errorf("%w: c", delivery.ErrChatNotFound), "chat_not_found"},
		{delivery.ErrNotMember, "not_member"},
		{errors.New("other"), "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, router.FailureReason(tt.err))
		})
	}
}
