package handler

import (
	"github.com/sudo-hablu/chatter/internal/domain"
)

type StartOTPRequest struct {
	Method  domain.ContactMethod `json:"method" binding:"required"`
	Contact string               `json:"contact" binding:"required"`
}

type VerifyOTPRequest struct {
	Code string `json:"code" binding:"required"`
}

type CreateProfileRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type AppResponse struct {
	InitialScreen string          `json:"initial_screen"`
	Authenticated bool            `json:"authenticated"`
	Profile       *domain.Profile `json:"profile,omitempty"`
}

type ChallengeResponse struct {
	ID              string               `json:"id"`
	Method          domain.ContactMethod `json:"method"`
	Contact         string               `json:"contact"`
	ResendInSeconds int                  `json:"resend_in_seconds"`
	CanResend       bool                 `json:"can_resend"`
}

type ProfileResponse struct {
	Profile domain.Profile `json:"profile"`
	Token   string         `json:"token"`
}

type ConversationResponse struct {
	ParticipantID string           `json:"participant_id"`
	Contact       *domain.Contact  `json:"contact"`
	Messages      []domain.Message `json:"messages"`
	Typing        bool             `json:"typing"`
}
