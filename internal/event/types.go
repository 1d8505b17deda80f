// Package event defines the closed set of realtime events exchanged with
// connected clients, the payloads they carry, and the delivery targets used
// when fanning them out.
package event

import "time"

// UserID identifies an authenticated user. In the chat store this is the hex
// form of a MongoDB ObjectID, but the core treats it as opaque.
type UserID string

// ChatID identifies a group chat.
type ChatID string

// Placeholders used as notification summaries for messages without text.
const (
	ImageSummary = "Sent an image"
	AudioSummary = "Sent a voice message"
)

// Message is a chat message as handed to, and returned by, the message store.
// Exactly one of ReceiverID (direct message) or ChatID (group message) is set.
type Message struct {
	ID         string    `json:"_id,omitempty"`
	SenderID   UserID    `json:"senderId"`
	ReceiverID UserID    `json:"receiverId,omitempty"`
	ChatID     ChatID    `json:"chatId,omitempty"`
	Text       string    `json:"text"`
	Image      string    `json:"image,omitempty"`
	Audio      string    `json:"audio,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IsEmpty reports whether the message carries no text and no media.
func (m Message) IsEmpty() bool {
	return m.Text == "" && m.Image == "" && m.Audio == ""
}

// Summary is the short text shown in a notification for this message.
func (m Message) Summary() string {
	switch {
	case m.Text != "":
		return m.Text
	case m.Image != "":
		return ImageSummary
	case m.Audio != "":
		return AudioSummary
	default:
		return ""
	}
}

// Group is the group chat document pushed to members when it changes.
type Group struct {
	ID          ChatID   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []UserID `json:"members"`
	Creator     UserID   `json:"creator"`
}
