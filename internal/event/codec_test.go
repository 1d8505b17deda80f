package event_test

import (
	"encoding/json"
	"testing"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/stretchr/testify/require"
)

const (
	alice = "64b7f0c2a1b2c3d4e5f60001"
	bob   = "64b7f0c2a1b2c3d4e5f60002"
	group = "64b7f0c2a1b2c3d4e5f6aaaa"
)

func TestDecodeInbound_Call(t *testing.T) {
	req := require.New(t)

	// Given a call frame
	frame := []byte(`{"type":"call","payload":{"to":"` + bob + `","channel":"room-1"}}`)

	// When decoding it
	in, err := event.DecodeInbound(frame)

	// Then the typed event is returned
	req.NoError(err)
	req.Equal(event.Call{To: bob, Channel: "room-1"}, in)
	req.Equal("call", in.Name())
}

func TestDecodeInbound_IgnoresSpoofedSender(t *testing.T) {
	req := require.New(t)

	frame := []byte(`{"type":"typing","payload":{"userId":"` + alice + `","receiverId":"` + bob + `","typing":true}}`)

	in, err := event.DecodeInbound(frame)

	req.NoError(err)
	req.Equal(event.Typing{ReceiverID: bob, Typing: true}, in)
}

func TestDecodeInbound_Errors(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  error
	}{
		{"not json", `{`, event.ErrMalformed},
		{"unknown type", `{"type":"dance","payload":{}}`, event.ErrUnknownEvent},
		{"missing payload", `{"type":"call"}`, event.ErrMalformed},
		{"missing callee", `{"type":"call","payload":{}}`, event.ErrInvalidEvent},
		{"callee not an object id", `{"type":"reject_call","payload":{"to":"bob"}}`, event.ErrInvalidEvent},
		{"message without address", `{"type":"send_message","payload":{"text":"hi"}}`, event.ErrInvalidEvent},
		{
			"message with both addresses",
			`{"type":"send_message","payload":{"receiverId":"` + bob + `","chatId":"` + group + `","text":"hi"}}`,
			event.ErrInvalidEvent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := event.DecodeInbound([]byte(tt.frame))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeInbound_SendMessageToGroup(t *testing.T) {
	req := require.New(t)

	frame := []byte(`{"type":"send_message","payload":{"clientId":"c1","chatId":"` + group + `","text":"hello"}}`)

	in, err := event.DecodeInbound(frame)
	req.NoError(err)

	send, ok := in.(event.SendMessage)
	req.True(ok)
	msg := send.Message(alice)
	req.Equal(event.UserID(alice), msg.SenderID)
	req.Equal(event.ChatID(group), msg.ChatID)
	req.Empty(msg.ReceiverID)
	req.Equal("hello", msg.Text)
}

func TestEncode_Envelope(t *testing.T) {
	req := require.New(t)

	data, err := event.Encode(event.CallAccepted(bob, "room-1"))
	req.NoError(err)

	var got map[string]any
	req.NoError(json.Unmarshal(data, &got))
	req.Equal("call_accepted", got["type"])
	req.Equal(map[string]any{"from": bob, "channel": "room-1"}, got["payload"])
}

func TestOnlineUsers_EmptyRosterIsArray(t *testing.T) {
	data, err := event.Encode(event.OnlineUsers(nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"getOnlineUsers","payload":[]}`, string(data))
}

func TestNotification_Summary(t *testing.T) {
	tests := []struct {
		name string
		msg  event.Message
		want string
	}{
		{"text", event.Message{Text: "hi", Image: "http://x/img.png"}, "hi"},
		{"image", event.Message{Image: "http://x/img.png"}, event.ImageSummary},
		{"audio", event.Message{Audio: "http://x/a.webm"}, event.AudioSummary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := event.Notification(tt.msg)
			payload, ok := n.Payload.(event.NotificationPayload)
			require.True(t, ok)
			require.Equal(t, tt.want, payload.Summary)
		})
	}
}

func TestFrame_EncodesOnce(t *testing.T) {
	req := require.New(t)
	f := event.NewFrame(event.UserOnline(alice))

	first, err := f.Bytes()
	req.NoError(err)
	second, err := f.Bytes()
	req.NoError(err)

	req.JSONEq(`{"type":"user_online","payload":{"userId":"`+alice+`"}}`, string(first))
	req.Same(&first[0], &second[0])
}
