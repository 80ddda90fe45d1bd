package domain

import "time"

// SelfID is the sender id of messages written by the local user.
const SelfID = "me"

// Status is the delivery state of a self-sent message.
type Status string

const (
	StatusNone      Status = ""
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
)

// Valid reports whether s is one of the four delivery states.
func (s Status) Valid() bool {
	switch s {
	case StatusSending, StatusSent, StatusDelivered, StatusRead:
		return true
	}
	return false
}

// Message is one entry of a conversation.
// Status is empty for messages received in generated history.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Status    Status    `json:"status,omitempty"`
}

// IsSelf reports whether the local user wrote the message.
func (m Message) IsSelf() bool {
	return m.Sender == SelfID
}
