package domain

import "time"

// Channel names the delivery channel a contact message was sent over.
type Channel string

const (
	ChannelEmail   Channel = "email"
	ChannelMessage Channel = "message"
)

func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelMessage
}

// Identity addresses a mailbox. The (name, role) pair is the only addressing
// key — there is no stable recipient id, so two accounts sharing a full name
// and role share a mailbox.
type Identity struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (i Identity) Equal(other Identity) bool {
	return i.Name == other.Name && i.Role == other.Role
}

// NotificationMessage is one peer-to-peer contact message. Messages are
// append-only: never mutated, never deleted.
type NotificationMessage struct {
	To      Identity  `json:"to"`
	From    Identity  `json:"from"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Channel Channel   `json:"channel"`
	SentAt  time.Time `json:"sentAt"`
}
