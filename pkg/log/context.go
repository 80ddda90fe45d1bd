package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Ctx returns the request logger, or the global one outside a request.
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return L()
}

// WithUser tags every later log line with the signed-in profile.
func WithUser(ctx context.Context, userID string) context.Context {
	l := Ctx(ctx)
	return WithLogger(ctx, l.With().Str(FieldUserID, userID).Logger())
}

// WithConversation tags log lines with the conversation being served.
// An empty sessionID is left out.
func WithConversation(ctx context.Context, participantID, sessionID string) context.Context {
	lc := Ctx(ctx).With().Str(FieldParticipantID, participantID)
	if sessionID != "" {
		lc = lc.Str(FieldSessionID, sessionID)
	}
	return WithLogger(ctx, lc.Logger())
}
