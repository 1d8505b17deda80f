package event

// Inbound is the closed set of events a client connection may send. The
// sender identity never travels in the payload; it is the connection's user.
type Inbound interface {
	Name() string
	inbound()
}

// Call rings another user.
type Call struct {
	To      UserID `json:"to" validate:"required,mongodb"`
	Channel string `json:"channel" validate:"max=128"`
}

// AcceptCall answers a ringing call; To is the original caller.
type AcceptCall struct {
	To      UserID `json:"to" validate:"required,mongodb"`
	Channel string `json:"channel" validate:"max=128"`
}

// RejectCall declines a ringing call; To is the other party.
type RejectCall struct {
	To UserID `json:"to" validate:"required,mongodb"`
}

// EndCall hangs up a ringing or accepted call.
type EndCall struct {
	To UserID `json:"to" validate:"required,mongodb"`
}

type Typing struct {
	ReceiverID UserID `json:"receiverId" validate:"required,mongodb"`
	Typing     bool   `json:"typing"`
}

// SendMessage carries a chat message addressed either to one user or to a
// group chat. ClientID is an opaque correlation id echoed back in the
// confirmation or error.
type SendMessage struct {
	ClientID   string `json:"clientId" validate:"max=64"`
	ReceiverID UserID `json:"receiverId" validate:"required_without=ChatID,excluded_with=ChatID,omitempty,mongodb"`
	ChatID     ChatID `json:"chatId" validate:"required_without=ReceiverID,omitempty,mongodb"`
	Text       string `json:"text" validate:"max=10000"`
	Image      string `json:"image" validate:"omitempty,url"`
	Audio      string `json:"audio" validate:"omitempty,url"`
}

// Message builds the message to hand to the delivery pipeline.
func (s SendMessage) Message(sender UserID) Message {
	return Message{
		SenderID:   sender,
		ReceiverID: s.ReceiverID,
		ChatID:     s.ChatID,
		Text:       s.Text,
		Image:      s.Image,
		Audio:      s.Audio,
	}
}

func (Call) Name() string        { return "call" }
func (AcceptCall) Name() string  { return "accept_call" }
func (RejectCall) Name() string  { return "reject_call" }
func (EndCall) Name() string     { return "end_call" }
func (Typing) Name() string      { return "typing" }
func (SendMessage) Name() string { return "send_message" }

func (Call) inbound()        {}
func (AcceptCall) inbound()  {}
func (RejectCall) inbound()  {}
func (EndCall) inbound()     {}
func (Typing) inbound()      {}
func (SendMessage) inbound() {}
