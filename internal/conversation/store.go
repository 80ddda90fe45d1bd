package conversation

import (
	"strings"
	"sync"

	"github.com/sudo-hablu/chatter/internal/domain"
)

// Store is the ordered message list of one conversation. Messages are only
// appended; the sole mutation of an existing message is its status.
type Store struct {
	mu       sync.RWMutex
	messages []domain.Message
	index    map[string]int // message id -> position
}

// NewStore returns a store holding a copy of seed.
func NewStore(seed []domain.Message) *Store {
	s := &Store{
		messages: make([]domain.Message, 0, len(seed)),
		index:    make(map[string]int, len(seed)),
	}
	for _, m := range seed {
		s.appendLocked(m)
	}
	return s
}

// Append adds m at the end and returns the stored copy. A self-sent message
// with blank text is rejected. A timestamp earlier than the last message's
// is raised to it so the list stays in time order.
func (s *Store) Append(m domain.Message) (domain.Message, error) {
	if m.IsSelf() && strings.TrimSpace(m.Text) == "" {
		return domain.Message{}, domain.ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(m), nil
}

func (s *Store) appendLocked(m domain.Message) domain.Message {
	if n := len(s.messages); n > 0 {
		if last := s.messages[n-1].Timestamp; m.Timestamp.Before(last) {
			m.Timestamp = last
		}
	}
	s.index[m.ID] = len(s.messages)
	s.messages = append(s.messages, m)
	return m
}

// UpdateStatus sets the status of message id. It reports false when no
// such message exists.
func (s *Store) UpdateStatus(id string, status domain.Status) (domain.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Message{}, false
	}
	s.messages[i].Status = status
	return s.messages[i], true
}

// Messages returns a snapshot of the list in append order.
func (s *Store) Messages() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *Store) Get(id string) (domain.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Message{}, false
	}
	return s.messages[i], true
}
