package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/pkg/log"
)

type Config struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
	SendBuffer     int           `mapstructure:"send_buffer"`
}

func DefaultConfig() Config {
	return Config{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 4096,
		SendBuffer:     256,
	}
}

// Hub fans conversation events out to the stream clients watching each
// participant.
type Hub struct {
	clients       map[string]*Client            // clientID -> client
	conversations map[string]map[string]*Client // participantID -> clientID -> client
	register      chan *Client
	unregister    chan *Client
	broadcast     chan *conversationMessage
	done          chan struct{}
	mu            sync.RWMutex
	config        Config
}

type conversationMessage struct {
	ParticipantID string
	SessionID     string // when set, only that session's clients
	Message       []byte
	Close         bool // drop the conversation's clients after delivering
}

func (m *conversationMessage) reaches(c *Client) bool {
	return m.SessionID == "" || c.SessionID == "" || c.SessionID == m.SessionID
}

func New(cfg Config) *Hub {
	return &Hub{
		clients:       make(map[string]*Client),
		conversations: make(map[string]map[string]*Client),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		broadcast:     make(chan *conversationMessage, 256),
		done:          make(chan struct{}),
		config:        cfg,
	}
}

func (h *Hub) Config() Config { return h.config }

// Run serves registrations and broadcasts until ctx is done, then drops
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				client.close()
				delete(h.clients, id)
			}
			h.conversations = make(map[string]map[string]*Client)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			if _, ok := h.conversations[client.ParticipantID]; !ok {
				h.conversations[client.ParticipantID] = make(map[string]*Client)
			}
			h.conversations[client.ParticipantID][client.ID] = client
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str(log.FieldClientID, client.ID).Str(log.FieldParticipantID, client.ParticipantID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				if watchers, ok := h.conversations[client.ParticipantID]; ok {
					delete(watchers, client.ID)
					if len(watchers) == 0 {
						delete(h.conversations, client.ParticipantID)
					}
				}
				delete(h.clients, client.ID)
				client.close()
			}
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str(log.FieldClientID, client.ID).Msg("client unregistered")

		case msg := <-h.broadcast:
			if msg.Close {
				h.closeConversation(msg)
				continue
			}
			h.mu.RLock()
			for _, client := range h.conversations[msg.ParticipantID] {
				if !msg.reaches(client) {
					continue
				}
				if !client.enqueue(msg.Message) {
					go h.Unregister(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish forwards a session event to the watchers of that session. A
// closed session also disconnects them, after the event itself. Clients of
// a newer session for the same participant are left alone.
func (h *Hub) Publish(e domain.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		l := log.L()
		l.Error().Err(err).Str(log.FieldParticipantID, e.ParticipantID).Msg("failed to encode event")
	} else {
		h.enqueue(&conversationMessage{ParticipantID: e.ParticipantID, SessionID: e.SessionID, Message: data}, false)
	}
	if e.Type == domain.EventSessionClosed {
		h.enqueue(&conversationMessage{ParticipantID: e.ParticipantID, SessionID: e.SessionID, Close: true}, true)
	}
}

// Broadcast queues v for every client of participantID. It never blocks;
// when the queue is full the event is dropped.
func (h *Hub) Broadcast(participantID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.enqueue(&conversationMessage{ParticipantID: participantID, Message: data}, false)
	return nil
}

// enqueue never blocks the caller. A full queue drops the message unless
// it must be delivered, in which case it is handed off to a goroutine.
func (h *Hub) enqueue(msg *conversationMessage, mustDeliver bool) {
	select {
	case h.broadcast <- msg:
		return
	default:
	}

	if !mustDeliver {
		l := log.L()
		l.Warn().Str(log.FieldParticipantID, msg.ParticipantID).Msg("broadcast queue full, dropping event")
		return
	}
	go func() {
		select {
		case h.broadcast <- msg:
		case <-h.done:
		}
	}()
}

func (h *Hub) closeConversation(msg *conversationMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	watchers := h.conversations[msg.ParticipantID]
	for id, client := range watchers {
		if !msg.reaches(client) {
			continue
		}
		delete(watchers, id)
		delete(h.clients, id)
		client.close()
	}
	if len(watchers) == 0 {
		delete(h.conversations, msg.ParticipantID)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) ConversationClientCount(participantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conversations[participantID])
}
