package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/internal/mockdata"
	"github.com/sudo-hablu/chatter/pkg/idgen"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) listen(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestSimulator(clock clockwork.Clock) *Simulator {
	gen := mockdata.NewSeeded(1, clock)
	return NewSimulator(SimulatorConfig{SentDelay: time.Second, ReplyDelay: 3 * time.Second}, clock, gen.Reply)
}

func newTestSession(t *testing.T, clock clockwork.Clock, history []domain.Message, rec *recorder) *Session {
	t.Helper()
	ids, err := idgen.New(idgen.Config{})
	require.NoError(t, err)

	s := NewSession(context.Background(), "contact_1", &domain.Contact{ID: "contact_1", Name: "Alice Smith"}, history, SessionDeps{
		Simulator: newTestSimulator(clock),
		IDs:       ids,
		Clock:     clock,
		Listener:  rec.listen,
	})
	t.Cleanup(s.Close)
	return s
}

func statusOf(s *Session, id string) domain.Status {
	m, _ := s.store.Get(id)
	return m.Status
}

func TestSendText_AppendsSending(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s := newTestSession(t, fc, nil, &recorder{})

	for _, text := range []string{"hi", "  padded  ", "multi\nline"} {
		before := s.store.Len()
		msg, err := s.SendText(text)
		require.NoError(t, err)

		assert.Equal(t, before+1, s.store.Len())
		assert.Equal(t, domain.SelfID, msg.Sender)
		assert.Equal(t, domain.StatusSending, msg.Status)
		assert.Equal(t, text, msg.Text)
		assert.NotEmpty(t, msg.ID)
	}
}

func TestSendText_RejectsBlank(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s := newTestSession(t, fc, nil, &recorder{})

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := s.SendText(text)
		assert.ErrorIs(t, err, domain.ErrEmptyText)
	}
	assert.Empty(t, s.Messages())
}

func TestSendText_DeliveryScenario(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	fc := clockwork.NewFakeClock()
	rec := &recorder{}
	s := newTestSession(t, fc, nil, rec)

	msg, err := s.SendText("hi")
	require.NoError(t, err)
	require.Len(t, s.Messages(), 1)
	assert.Equal(t, domain.StatusSending, s.Messages()[0].Status)
	assert.False(t, s.Typing())

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(999 * time.Millisecond)
	assert.Equal(t, domain.StatusSending, statusOf(s, msg.ID))

	fc.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return statusOf(s, msg.ID) == domain.StatusSent }, waitFor, tick)

	// only the status changed
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Text)
	assert.Equal(t, msg.ID, msgs[0].ID)
	assert.Equal(t, msg.Timestamp, msgs[0].Timestamp)
	assert.True(t, s.Typing())

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(3 * time.Second)
	require.Eventually(t, func() bool { return len(s.Messages()) == 2 }, waitFor, tick)

	msgs = s.Messages()
	assert.Equal(t, domain.StatusSent, msgs[0].Status)
	assert.Equal(t, "contact_1", msgs[1].Sender)
	assert.Equal(t, domain.StatusRead, msgs[1].Status)
	assert.Contains(t, mockdata.Replies, msgs[1].Text)
	assert.False(t, msgs[1].Timestamp.Before(msgs[0].Timestamp))
	assert.False(t, s.Typing())

	assert.Equal(t, []string{
		domain.EventMessageAppended,
		domain.EventStatusChanged,
		domain.EventTyping,
		domain.EventMessageAppended,
		domain.EventTyping,
	}, rec.types())
}

func TestSendText_ExactlyOneReplyPerMessage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	fc := clockwork.NewFakeClock()
	s := newTestSession(t, fc, nil, &recorder{})

	for _, text := range []string{"one", "two", "three"} {
		_, err := s.SendText(text)
		require.NoError(t, err)
	}

	require.NoError(t, fc.BlockUntilContext(ctx, 3))
	fc.Advance(time.Second)
	require.NoError(t, fc.BlockUntilContext(ctx, 3))
	assert.True(t, s.Typing())
	fc.Advance(3 * time.Second)

	require.Eventually(t, func() bool { return len(s.Messages()) == 6 }, waitFor, tick)
	assert.Never(t, func() bool { return len(s.Messages()) > 6 }, 50*time.Millisecond, tick)

	var replies int
	msgs := s.Messages()
	for i, m := range msgs {
		if m.IsSelf() {
			assert.Equal(t, domain.StatusSent, m.Status)
		} else {
			replies++
		}
		if i > 0 {
			assert.False(t, m.Timestamp.Before(msgs[i-1].Timestamp))
		}
	}
	assert.Equal(t, 3, replies)
	assert.False(t, s.Typing())
}

func TestSendText_KeepsHistoryOrder(t *testing.T) {
	fc := clockwork.NewFakeClock()
	history := mockdata.NewSeeded(3, fc).Messages(20, "contact_1")
	s := newTestSession(t, fc, history, &recorder{})

	msg, err := s.SendText("after history")
	require.NoError(t, err)

	msgs := s.Messages()
	require.Len(t, msgs, 21)
	assert.Equal(t, msg.ID, msgs[20].ID)
	assert.False(t, msgs[20].Timestamp.Before(msgs[19].Timestamp))
}

func TestClose_StopsLateUpdates(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	fc := clockwork.NewFakeClock()
	rec := &recorder{}
	s := newTestSession(t, fc, nil, rec)

	msg, err := s.SendText("bye")
	require.NoError(t, err)
	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	s.Close()
	s.Close()
	select {
	case <-s.Done():
	default:
		t.Fatal("session not done after Close")
	}

	fc.Advance(10 * time.Second)
	assert.Never(t, func() bool { return statusOf(s, msg.ID) != domain.StatusSending }, 100*time.Millisecond, tick)
	assert.Len(t, s.Messages(), 1)

	_, err = s.SendText("again")
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	assert.Equal(t, []string{domain.EventMessageAppended, domain.EventSessionClosed}, rec.types())
}

func TestClose_DuringTyping(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	fc := clockwork.NewFakeClock()
	s := newTestSession(t, fc, nil, &recorder{})

	_, err := s.SendText("hello")
	require.NoError(t, err)
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Second)
	require.Eventually(t, s.Typing, waitFor, tick)

	s.Close()
	assert.False(t, s.Typing())

	fc.Advance(5 * time.Second)
	assert.Never(t, func() bool { return len(s.Messages()) > 1 }, 100*time.Millisecond, tick)
}

func TestSnapshot(t *testing.T) {
	fc := clockwork.NewFakeClock()
	history := []domain.Message{{ID: "h1", Text: "hey", Sender: "contact_1", Timestamp: fc.Now()}}
	s := newTestSession(t, fc, history, &recorder{})

	snap := s.Snapshot()
	assert.Equal(t, domain.EventSnapshot, snap.Type)
	assert.Equal(t, "contact_1", snap.ParticipantID)
	require.NotNil(t, snap.Typing)
	assert.False(t, *snap.Typing)
	assert.Equal(t, history, snap.Messages)
	assert.Equal(t, "Alice Smith", s.Contact().Name)
}
