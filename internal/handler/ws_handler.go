package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/sudo-hablu/chatter/internal/conversation"
	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/internal/hub"
	"github.com/sudo-hablu/chatter/pkg/idgen"
	"github.com/sudo-hablu/chatter/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket streams a conversation: a snapshot first, then every
// session event. Clients may send text and pings over the same socket.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := h.conversations.Open(ctx, c.Param(paramParticipantID))
	if err != nil {
		writeError(c, err, "failed to open conversation")
		return
	}
	ctx = log.WithConversation(ctx, s.ParticipantID(), s.ID())
	l := log.Ctx(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(idgen.NewID(h.ids), s.ParticipantID(), s.ID(), h.hub, conn)
	h.hub.Register(client)
	// Events racing the snapshot may repeat messages it already holds;
	// clients apply them by message id.
	client.SendJSON(s.Snapshot())

	l.Info().Str(log.FieldClientID, client.ID).Msg("stream client connected")

	go client.WritePump()
	go client.ReadPump(h.frameHandler(l.With().Str(log.FieldClientID, client.ID).Logger(), s))
}

func (h *Handler) frameHandler(l zerolog.Logger, s *conversation.Session) func(*hub.Client, []byte) {
	return func(client *hub.Client, data []byte) {
		var frame domain.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			l.Debug().Err(err).Msg("invalid stream frame")
			client.SendJSON(errorEvent(s, "invalid frame format"))
			return
		}

		switch frame.Type {
		case domain.FrameSendText:
			if _, err := s.SendText(frame.Text); err != nil {
				l.Debug().Err(err).Msg("stream send rejected")
				client.SendJSON(errorEvent(s, err.Error()))
			}

		case domain.FramePing:
			client.SendJSON(domain.Event{
				Type:          domain.EventPong,
				ParticipantID: s.ParticipantID(),
				SessionID:     s.ID(),
				Timestamp:     time.Now().UTC(),
			})

		default:
			client.SendJSON(errorEvent(s, "unknown frame type"))
		}
	}
}

func errorEvent(s *conversation.Session, msg string) domain.Event {
	return domain.Event{
		Type:          domain.EventError,
		ParticipantID: s.ParticipantID(),
		SessionID:     s.ID(),
		Error:         msg,
		Timestamp:     time.Now().UTC(),
	}
}
