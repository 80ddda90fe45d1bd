package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sudo-hablu/chatter/internal/auth"
	"github.com/sudo-hablu/chatter/internal/conversation"
	"github.com/sudo-hablu/chatter/internal/directory"
	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/internal/hub"
	"github.com/sudo-hablu/chatter/internal/metrics"
	"github.com/sudo-hablu/chatter/pkg/idgen"
	"github.com/sudo-hablu/chatter/pkg/log"
	"github.com/sudo-hablu/chatter/pkg/middleware"
	"github.com/sudo-hablu/chatter/pkg/response"
)

const paramParticipantID = "participant_id"

// Handler serves the app API.
type Handler struct {
	state          *auth.State
	verifier       *auth.Verifier
	directory      *directory.Directory
	conversations  *conversation.Manager
	hub            *hub.Hub
	ids            idgen.Generator
	authMiddleware *middleware.AuthMiddleware
}

func NewHandler(state *auth.State, verifier *auth.Verifier, dir *directory.Directory, conversations *conversation.Manager, h *hub.Hub, ids idgen.Generator) *Handler {
	return &Handler{
		state:          state,
		verifier:       verifier,
		directory:      dir,
		conversations:  conversations,
		hub:            h,
		ids:            ids,
		authMiddleware: middleware.NewAuthMiddleware(state),
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/app", h.GetApp)

		// Public routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/otp", h.StartOTP)
			authGroup.GET("/otp/:challenge_id", h.GetOTP)
			authGroup.POST("/otp/:challenge_id/resend", h.ResendOTP)
			authGroup.POST("/otp/:challenge_id/verify", h.VerifyOTP)
			authGroup.POST("/profile", h.CreateProfile)
			authGroup.POST("/logout", h.authMiddleware.RequireAuth(), h.Logout)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(h.authMiddleware.RequireAuth())
		{
			protected.GET("/me", h.GetMe)
			protected.GET("/chats", h.ListChats)
			protected.GET("/contacts", h.ListContacts)
			protected.GET("/contacts/new-chat", h.ListNewChatContacts)
			protected.GET("/calls", h.ListCalls)

			conv := protected.Group("/conversations/:" + paramParticipantID)
			{
				conv.POST("", h.OpenConversation)
				conv.DELETE("", h.CloseConversation)
				conv.GET("/messages", h.ListMessages)
				conv.POST("/messages", h.SendMessage)
				conv.GET("/ws", h.HandleWebSocket)
			}
		}
	}
}

// GetApp tells the client which screen to start on.
func (h *Handler) GetApp(c *gin.Context) {
	response.Success(c, AppResponse{
		InitialScreen: h.state.InitialScreen(),
		Authenticated: h.state.Authenticated(),
		Profile:       h.state.Profile(),
	})
}

func (h *Handler) challengeView(ch domain.Challenge) ChallengeResponse {
	left, err := h.verifier.Remaining(ch.ID)
	if err != nil {
		left = 0
	}
	return ChallengeResponse{
		ID:              ch.ID,
		Method:          ch.Method,
		Contact:         ch.Contact,
		ResendInSeconds: auth.Seconds(left),
		CanResend:       left == 0,
	}
}

// StartOTP sends a verification code to an email address or phone number.
func (h *Handler) StartOTP(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req StartOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid otp request")
		response.BadRequest(c, err.Error())
		return
	}

	ch, err := h.verifier.Start(ctx, req.Method, req.Contact)
	if err != nil {
		writeError(c, err, "failed to start verification")
		return
	}
	metrics.OTPChallenges.WithLabelValues(metrics.OTPStarted).Inc()

	response.Created(c, h.challengeView(ch))
}

// GetOTP reports the resend countdown of a challenge.
func (h *Handler) GetOTP(c *gin.Context) {
	id := c.Param("challenge_id")
	left, err := h.verifier.Remaining(id)
	if err != nil {
		writeError(c, err, "failed to read verification")
		return
	}
	response.Success(c, gin.H{
		"id":                id,
		"resend_in_seconds": auth.Seconds(left),
		"can_resend":        left == 0,
	})
}

func (h *Handler) ResendOTP(c *gin.Context) {
	ch, err := h.verifier.Resend(c.Request.Context(), c.Param("challenge_id"))
	if err != nil {
		writeError(c, err, "failed to resend code")
		return
	}
	metrics.OTPChallenges.WithLabelValues(metrics.OTPResent).Inc()
	response.Success(c, h.challengeView(ch))
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid verify request")
		response.BadRequest(c, err.Error())
		return
	}

	ch, err := h.verifier.Verify(ctx, c.Param("challenge_id"), req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCode) {
			metrics.OTPChallenges.WithLabelValues(metrics.OTPRejected).Inc()
		}
		writeError(c, err, "failed to verify code")
		return
	}
	metrics.OTPChallenges.WithLabelValues(metrics.OTPVerified).Inc()

	response.Success(c, gin.H{"verified": true, "contact": ch.Contact})
}

// CreateProfile finishes sign-up and signs the user in.
func (h *Handler) CreateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid profile request")
		response.BadRequest(c, err.Error())
		return
	}

	profile, token, err := h.state.CreateProfile(ctx, req.FullName, req.AvatarURL)
	if err != nil {
		writeError(c, err, "failed to create profile")
		return
	}

	response.Created(c, ProfileResponse{Profile: profile, Token: token})
}

func (h *Handler) Logout(c *gin.Context) {
	h.state.Logout(c.Request.Context())
	response.Success(c, AppResponse{InitialScreen: h.state.InitialScreen()})
}

func (h *Handler) GetMe(c *gin.Context) {
	profile := h.state.Profile()
	if profile == nil {
		response.NotFound(c, "profile not found")
		return
	}
	response.Success(c, profile)
}

func (h *Handler) ListChats(c *gin.Context) {
	response.Success(c, h.directory.Chats(c.Query("q")))
}

// ListContacts answers with the address book grouped by initial.
func (h *Handler) ListContacts(c *gin.Context) {
	response.Success(c, h.directory.ContactSections(c.Query("q")))
}

func (h *Handler) ListNewChatContacts(c *gin.Context) {
	response.Success(c, h.directory.NewChatContacts(c.Query("q")))
}

func (h *Handler) ListCalls(c *gin.Context) {
	response.Success(c, h.directory.Calls())
}

func conversationView(s *conversation.Session) ConversationResponse {
	return ConversationResponse{
		ParticipantID: s.ParticipantID(),
		Contact:       s.Contact(),
		Messages:      s.Messages(),
		Typing:        s.Typing(),
	}
}

func (h *Handler) OpenConversation(c *gin.Context) {
	s, err := h.conversations.Open(c.Request.Context(), c.Param(paramParticipantID))
	if err != nil {
		writeError(c, err, "failed to open conversation")
		return
	}
	response.Success(c, conversationView(s))
}

func (h *Handler) CloseConversation(c *gin.Context) {
	id := c.Param(paramParticipantID)
	if _, err := h.conversations.Get(id); err != nil {
		writeError(c, err, "failed to close conversation")
		return
	}
	h.conversations.Close(id)
	response.Success(c, gin.H{"participant_id": id, "closed": true})
}

func (h *Handler) ListMessages(c *gin.Context) {
	s, err := h.conversations.Get(c.Param(paramParticipantID))
	if err != nil {
		writeError(c, err, "failed to read conversation")
		return
	}
	response.Success(c, conversationView(s))
}

// SendMessage appends a message; delivery progress arrives on the stream.
func (h *Handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid send request")
		response.BadRequest(c, err.Error())
		return
	}

	s, err := h.conversations.Get(c.Param(paramParticipantID))
	if err != nil {
		writeError(c, err, "failed to send message")
		return
	}

	msg, err := s.SendText(req.Text)
	if err != nil {
		writeError(c, err, "failed to send message")
		return
	}
	l = log.Ctx(log.WithConversation(ctx, s.ParticipantID(), s.ID()))
	l.Debug().Str(log.FieldMessageID, msg.ID).Msg("message sent")

	response.Created(c, msg)
}

// writeError maps domain errors onto the response envelope.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrEmptyText),
		errors.Is(err, domain.ErrInvalidParticipant),
		errors.Is(err, domain.ErrInvalidMethod),
		errors.Is(err, domain.ErrInvalidContact),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidCode):
		response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrChallengeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrSessionClosed):
		response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrResendTooSoon):
		response.TooManyRequests(c, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		response.Unauthorized(c, err.Error())
	default:
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg(fallback)
		response.InternalError(c, fallback)
	}
}
