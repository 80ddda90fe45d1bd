package conversation

import (
	"context"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/pkg/idgen"
	"github.com/sudo-hablu/chatter/pkg/log"
)

const DefaultHistorySize = 20

// HistorySource seeds a new session with earlier messages.
type HistorySource interface {
	Messages(count int, participantID string) []domain.Message
}

// ContactSource supplies the header card of a conversation.
type ContactSource interface {
	ContactByID(id string) *domain.Contact
}

type ManagerConfig struct {
	HistorySize int
}

// Manager owns the open sessions, one per participant id.
type Manager struct {
	cfg      ManagerConfig
	history  HistorySource
	contacts ContactSource
	sim      *Simulator
	ids      idgen.Generator
	clock    clockwork.Clock
	listener Listener

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	sessions map[string]*Session
	group    singleflight.Group
}

func NewManager(cfg ManagerConfig, history HistorySource, contacts ContactSource, sim *Simulator, ids idgen.Generator, clock clockwork.Clock, listener Listener) *Manager {
	if cfg.HistorySize < 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cfg:      cfg,
		history:  history,
		contacts: contacts,
		sim:      sim,
		ids:      ids,
		clock:    clock,
		listener: listener,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// Open returns the session for participantID, creating it on first use.
// Concurrent opens of the same id share one session.
func (m *Manager) Open(ctx context.Context, participantID string) (*Session, error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil, domain.ErrInvalidParticipant
	}
	if m.ctx.Err() != nil {
		return nil, domain.ErrSessionClosed
	}

	if s, err := m.Get(participantID); err == nil {
		return s, nil
	}

	v, err, _ := m.group.Do(participantID, func() (any, error) {
		m.mu.Lock()
		defer m.mu.Unlock()

		if s, ok := m.sessions[participantID]; ok {
			return s, nil
		}

		s := NewSession(m.ctx, participantID, m.contacts.ContactByID(participantID), m.history.Messages(m.cfg.HistorySize, participantID), SessionDeps{
			Simulator: m.sim,
			IDs:       m.ids,
			Clock:     m.clock,
			Listener:  m.listener,
		})
		m.sessions[participantID] = s

		l := log.Ctx(ctx)
		l.Info().
			Str(log.FieldParticipantID, participantID).
			Str(log.FieldSessionID, s.ID()).
			Int("history", s.store.Len()).
			Msg("conversation opened")
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (m *Manager) Get(participantID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[participantID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Close closes and forgets the session. Unknown ids are ignored.
func (m *Manager) Close(participantID string) {
	m.mu.Lock()
	s, ok := m.sessions[participantID]
	delete(m.sessions, participantID)
	m.mu.Unlock()

	if ok {
		s.Close()
		l := log.L()
		l.Info().Str(log.FieldParticipantID, participantID).Msg("conversation closed")
	}
}

// CloseAll tears down every session. Open fails afterwards.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	m.cancel()

	l := log.L()
	l.Info().Int("sessions", len(sessions)).Msg("all conversations closed")
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
