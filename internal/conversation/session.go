package conversation

import (
	"context"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/pkg/idgen"
)

// Listener observes session events. It is called with the session lock
// held, so it must not block or call back into the session.
type Listener func(domain.Event)

// SessionDeps are the collaborators a session is built with.
type SessionDeps struct {
	Simulator *Simulator
	IDs       idgen.Generator
	Clock     clockwork.Clock
	Listener  Listener
}

// Session is one open conversation with a participant.
type Session struct {
	id            string
	participantID string
	contact       *domain.Contact
	store         *Store
	sim           *Simulator
	ids           idgen.Generator
	clock         clockwork.Clock
	listener      Listener

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	pendingReplies int
	closed         bool
}

// NewSession opens a conversation seeded with history. The session lives
// until Close or until parent is done.
func NewSession(parent context.Context, participantID string, contact *domain.Contact, history []domain.Message, deps SessionDeps) *Session {
	ctx, cancel := context.WithCancel(parent)
	if deps.Listener == nil {
		deps.Listener = func(domain.Event) {}
	}
	return &Session{
		id:            idgen.NewID(deps.IDs),
		participantID: participantID,
		contact:       contact,
		store:         NewStore(history),
		sim:           deps.Simulator,
		ids:           deps.IDs,
		clock:         deps.Clock,
		listener:      deps.Listener,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// ID tells this session apart from earlier or later ones with the same
// participant.
func (s *Session) ID() string { return s.id }

func (s *Session) ParticipantID() string { return s.participantID }

// Contact is the counterparty's card shown in the conversation header.
func (s *Session) Contact() *domain.Contact { return s.contact }

// Messages returns the current list for rendering.
func (s *Session) Messages() []domain.Message { return s.store.Messages() }

// Typing reports whether the counterparty is composing a reply.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingReplies > 0
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// SendText appends a self-sent message with status sending and starts its
// simulated delivery.
func (s *Session) SendText(text string) (domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Message{}, domain.ErrEmptyText
	}

	s.mu.Lock()
	if s.closed || s.ctx.Err() != nil {
		s.mu.Unlock()
		return domain.Message{}, domain.ErrSessionClosed
	}

	msg, err := s.store.Append(domain.Message{
		ID:        idgen.NewID(s.ids),
		Text:      text,
		Timestamp: s.clock.Now().UTC(),
		Sender:    domain.SelfID,
		Status:    domain.StatusSending,
	})
	if err != nil {
		s.mu.Unlock()
		return domain.Message{}, err
	}
	s.emitLocked(domain.EventMessageAppended, &msg)
	s.mu.Unlock()

	s.sim.Simulate(s.ctx, sessionSink{s}, msg.ID)
	return msg, nil
}

// Snapshot is the event a new subscriber starts from.
func (s *Session) Snapshot() domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	typing := s.pendingReplies > 0
	return domain.Event{
		Type:          domain.EventSnapshot,
		ParticipantID: s.participantID,
		SessionID:     s.id,
		Messages:      s.store.Messages(),
		Typing:        &typing,
		Timestamp:     s.clock.Now().UTC(),
	}
}

// Close ends the session. Pending deliveries are dropped. Calling Close
// more than once is harmless.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	s.pendingReplies = 0
	s.emitLocked(domain.EventSessionClosed, nil)
}

func (s *Session) markSent(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.ctx.Err() != nil {
		return
	}
	msg, ok := s.store.UpdateStatus(messageID, domain.StatusSent)
	if !ok {
		return
	}
	s.emitLocked(domain.EventStatusChanged, &msg)

	s.pendingReplies++
	if s.pendingReplies == 1 {
		s.emitTypingLocked(true)
	}
}

func (s *Session) reply(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.ctx.Err() != nil {
		return
	}
	msg, err := s.store.Append(domain.Message{
		ID:        idgen.NewID(s.ids),
		Text:      text,
		Timestamp: s.clock.Now().UTC(),
		Sender:    s.participantID,
		Status:    domain.StatusRead,
	})
	if err != nil {
		return
	}

	if s.pendingReplies > 0 {
		s.pendingReplies--
	}
	s.emitLocked(domain.EventMessageAppended, &msg)
	if s.pendingReplies == 0 {
		s.emitTypingLocked(false)
	}
}

func (s *Session) emitLocked(eventType string, msg *domain.Message) {
	s.listener(domain.Event{
		Type:          eventType,
		ParticipantID: s.participantID,
		SessionID:     s.id,
		Message:       msg,
		Timestamp:     s.clock.Now().UTC(),
	})
}

func (s *Session) emitTypingLocked(typing bool) {
	s.listener(domain.Event{
		Type:          domain.EventTyping,
		ParticipantID: s.participantID,
		SessionID:     s.id,
		Typing:        &typing,
		Timestamp:     s.clock.Now().UTC(),
	})
}

// sessionSink keeps the simulator callbacks off the public Session API.
type sessionSink struct{ s *Session }

func (k sessionSink) MarkSent(messageID string) { k.s.markSent(messageID) }
func (k sessionSink) Reply(text string)         { k.s.reply(text) }
