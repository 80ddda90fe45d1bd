package domain

import "time"

// Profile is the flat user object kept in device storage.
type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// Screens the app can start on.
const (
	ScreenWelcome = "welcome"
	ScreenChats   = "chats"
)

// ContactMethod is how a sign-up code is delivered.
type ContactMethod string

const (
	MethodEmail ContactMethod = "email"
	MethodPhone ContactMethod = "phone"
)

// Challenge is an outstanding sign-up verification.
type Challenge struct {
	ID      string        `json:"id"`
	Method  ContactMethod `json:"method"`
	Contact string        `json:"contact"`
	SentAt  time.Time     `json:"sent_at"`
}
