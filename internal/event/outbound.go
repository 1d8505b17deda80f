package event

// Kind is the wire name of an outbound event.
type Kind string

const (
	KindNewMessage      Kind = "newMessage"
	KindNotification    Kind = "notification"
	KindTyping          Kind = "typing"
	KindIncomingCall    Kind = "incoming_call"
	KindCallInitiated   Kind = "call_initiated"
	KindCallAccepted    Kind = "call_accepted"
	KindCallRejected    Kind = "call_rejected"
	KindCallEnded       Kind = "call_ended"
	KindCallError       Kind = "call_error"
	KindOnlineUsers     Kind = "getOnlineUsers"
	KindUserOnline      Kind = "user_online"
	KindUserOffline     Kind = "user_offline"
	KindChatCleared     Kind = "chatCleared"
	KindGroupUpdated    Kind = "groupUpdated"
	KindGroupDeleted    Kind = "groupDeleted"
	KindUserRemoved     Kind = "userRemovedFromChat"
	KindUserDeleted     Kind = "userDeleted"
	KindAccountDeleted  Kind = "accountDeleted"
	KindForceDisconnect Kind = "force_disconnect"
	KindMessageSent     Kind = "message_sent"
	KindMessageError    Kind = "message_error"
)

// Outbound is one event pushed to a client connection.
type Outbound struct {
	Kind    Kind `json:"type"`
	Payload any  `json:"payload,omitempty"`
}

// NotificationPayload is the short preview sent alongside a newMessage.
type NotificationPayload struct {
	From      UserID `json:"from"`
	ChatID    ChatID `json:"chatId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Summary   string `json:"summary"`
}

// TypingPayload reports a typing indicator change.
type TypingPayload struct {
	UserID UserID `json:"userId"`
	Typing bool   `json:"typing"`
}

// IncomingCallPayload rings the callee.
type IncomingCallPayload struct {
	From    UserID `json:"from"`
	Channel string `json:"channel"`
}

// CallInitiatedPayload confirms a ring to the caller.
type CallInitiatedPayload struct {
	To      UserID `json:"to"`
	Channel string `json:"channel"`
}

// CallAcceptedPayload tells the caller which channel to join.
type CallAcceptedPayload struct {
	From    UserID `json:"from"`
	Channel string `json:"channel"`
}

// CallRejectedPayload names who declined.
type CallRejectedPayload struct {
	From UserID `json:"from"`
}

// CallEndedPayload names who ended a call and why: "hangup" or "disconnected".
type CallEndedPayload struct {
	From   UserID `json:"from"`
	Reason string `json:"reason"`
}

// ErrorPayload is carried by call_error and force_disconnect.
type ErrorPayload struct {
	Message string `json:"message"`
}

// PresencePayload names a single user.
type PresencePayload struct {
	UserID UserID `json:"userId"`
}

// ChatClearedPayload names the conversation that was cleared from the
// receiver's point of view: the other user for a direct chat, the group id
// for a group chat.
type ChatClearedPayload struct {
	UserID string `json:"userId"`
}

// UserRemovedPayload names the user removed from a group chat.
type UserRemovedPayload struct {
	ChatID ChatID `json:"chatId"`
	UserID UserID `json:"userId"`
}

// MessageSentPayload acknowledges a socket-submitted message. ClientID is
// echoed back so the sender can match its optimistic copy.
type MessageSentPayload struct {
	ClientID string  `json:"clientId,omitempty"`
	Message  Message `json:"message"`
}

// MessageErrorPayload reports why a socket-submitted message was refused.
type MessageErrorPayload struct {
	ClientID string `json:"clientId,omitempty"`
	Reason   string `json:"reason"`
}

// NewMessage carries the stored message.
func NewMessage(m Message) Outbound {
	return Outbound{Kind: KindNewMessage, Payload: m}
}

// Notification summarizes m for clients that do not render the thread.
func Notification(m Message) Outbound {
	return Outbound{Kind: KindNotification, Payload: NotificationPayload{
		From:      m.SenderID,
		ChatID:    m.ChatID,
		MessageID: m.ID,
		Summary:   m.Summary(),
	}}
}

// TypingEvent reports that from started or stopped typing.
func TypingEvent(from UserID, typing bool) Outbound {
	return Outbound{Kind: KindTyping, Payload: TypingPayload{UserID: from, Typing: typing}}
}

// IncomingCall rings the callee.
func IncomingCall(from UserID, channel string) Outbound {
	return Outbound{Kind: KindIncomingCall, Payload: IncomingCallPayload{From: from, Channel: channel}}
}

// CallInitiated confirms the ring to the caller.
func CallInitiated(to UserID, channel string) Outbound {
	return Outbound{Kind: KindCallInitiated, Payload: CallInitiatedPayload{To: to, Channel: channel}}
}

// CallAccepted tells the caller that from picked up.
func CallAccepted(from UserID, channel string) Outbound {
	return Outbound{Kind: KindCallAccepted, Payload: CallAcceptedPayload{From: from, Channel: channel}}
}

// CallRejected tells the caller that from declined.
func CallRejected(from UserID) Outbound {
	return Outbound{Kind: KindCallRejected, Payload: CallRejectedPayload{From: from}}
}

// CallEnded reports the end of a call.
func CallEnded(from UserID, reason string) Outbound {
	return Outbound{Kind: KindCallEnded, Payload: CallEndedPayload{From: from, Reason: reason}}
}

// CallError reports a refused call operation to the user who issued it.
func CallError(message string) Outbound {
	return Outbound{Kind: KindCallError, Payload: ErrorPayload{Message: message}}
}

// OnlineUsers carries the full roster. An empty roster is sent as [] rather
// than null.
func OnlineUsers(ids []UserID) Outbound {
	if ids == nil {
		ids = []UserID{}
	}
	return Outbound{Kind: KindOnlineUsers, Payload: ids}
}

// UserOnline and UserOffline announce a single presence transition.
func UserOnline(id UserID) Outbound {
	return Outbound{Kind: KindUserOnline, Payload: PresencePayload{UserID: id}}
}

func UserOffline(id UserID) Outbound {
	return Outbound{Kind: KindUserOffline, Payload: PresencePayload{UserID: id}}
}

// ChatCleared names the conversation as the receiver sees it.
func ChatCleared(conversation string) Outbound {
	return Outbound{Kind: KindChatCleared, Payload: ChatClearedPayload{UserID: conversation}}
}

// GroupUpdated carries the group as stored.
func GroupUpdated(g Group) Outbound {
	return Outbound{Kind: KindGroupUpdated, Payload: g}
}

// GroupDeleted carries the bare group id, as clients expect.
func GroupDeleted(id ChatID) Outbound {
	return Outbound{Kind: KindGroupDeleted, Payload: id}
}

// UserRemoved tells the remaining members who left chat.
func UserRemoved(chat ChatID, user UserID) Outbound {
	return Outbound{Kind: KindUserRemoved, Payload: UserRemovedPayload{ChatID: chat, UserID: user}}
}

// UserDeleted tells other users to drop id from their lists.
func UserDeleted(id UserID) Outbound {
	return Outbound{Kind: KindUserDeleted, Payload: PresencePayload{UserID: id}}
}

// AccountDeleted tells the owner that their account is gone.
func AccountDeleted(id UserID) Outbound {
	return Outbound{Kind: KindAccountDeleted, Payload: PresencePayload{UserID: id}}
}

// ForceDisconnect precedes a server-initiated close.
func ForceDisconnect(reason string) Outbound {
	return Outbound{Kind: KindForceDisconnect, Payload: ErrorPayload{Message: reason}}
}

// MessageSent and MessageError answer a sendMessage frame.
func MessageSent(clientID string, m Message) Outbound {
	return Outbound{Kind: KindMessageSent, Payload: MessageSentPayload{ClientID: clientID, Message: m}}
}

func MessageError(clientID, reason string) Outbound {
	return Outbound{Kind: KindMessageError, Payload: MessageErrorPayload{ClientID: clientID, Reason: reason}}
}
