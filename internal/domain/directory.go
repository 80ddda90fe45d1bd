package domain

import "time"

// Contact is an address-book entry.
type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	IsOnline  bool   `json:"is_online"`
	Status    string `json:"status,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ContactSection groups contacts under one index letter.
type ContactSection struct {
	Title    string    `json:"title"`
	Contacts []Contact `json:"contacts"`
}

// Chat is a row of the chat list.
type Chat struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	AvatarURL   string  `json:"avatar_url"`
	IsOnline    bool    `json:"is_online"`
	LastMessage Message `json:"last_message"`
	UnreadCount int     `json:"unread_count"`
}

type CallStatus string

const (
	CallOngoing   CallStatus = "ongoing"
	CallCompleted CallStatus = "completed"
	CallMissed    CallStatus = "missed"
	CallRejected  CallStatus = "rejected"
)

type CallDirection string

const (
	CallIncoming CallDirection = "incoming"
	CallOutgoing CallDirection = "outgoing"
)

type CallType string

const (
	CallAudio CallType = "audio"
	CallVideo CallType = "video"
)

// Call is a row of the call history. Duration is set only for completed calls.
type Call struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	AvatarURL string        `json:"avatar_url"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  *int          `json:"duration,omitempty"` // seconds
	Status    CallStatus    `json:"status"`
	Direction CallDirection `json:"direction"`
	Type      CallType      `json:"type"`
}
