package domain

import "errors"

var (
	ErrEmptyText          = errors.New("message text is empty")
	ErrSessionClosed      = errors.New("conversation session closed")
	ErrSessionNotFound    = errors.New("conversation session not found")
	ErrInvalidParticipant = errors.New("invalid participant id")

	ErrInvalidMethod     = errors.New("unsupported contact method")
	ErrInvalidContact    = errors.New("invalid contact")
	ErrInvalidName       = errors.New("full name must have at least 2 characters")
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrChallengeNotFound = errors.New("verification challenge not found")
	ErrResendTooSoon     = errors.New("verification code resend not available yet")
	ErrUnauthenticated   = errors.New("not authenticated")
)
