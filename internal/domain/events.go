package domain

import "time"

// Session event types pushed to stream subscribers.
const (
	EventSnapshot        = "snapshot"
	EventMessageAppended = "message_appended"
	EventStatusChanged   = "status_changed"
	EventTyping          = "typing"
	EventSessionClosed   = "session_closed"
	EventError           = "error"
	EventPong            = "pong"
)

// Client -> server stream frames.
const (
	FrameSendText = "send_text"
	FramePing     = "ping"
)

// Event describes one change to a conversation session.
type Event struct {
	Type          string    `json:"type"`
	ParticipantID string    `json:"participant_id"`
	SessionID     string    `json:"session_id,omitempty"`
	Message       *Message  `json:"message,omitempty"`
	Messages      []Message `json:"messages,omitempty"`
	Typing        *bool     `json:"typing,omitempty"`
	Error         string    `json:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Frame is a message a stream client sends to the server.
type Frame struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}
