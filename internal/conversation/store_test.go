package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-hablu/chatter/internal/domain"
)

func TestStore_AppendRejectsBlankSelfText(t *testing.T) {
	s := NewStore(nil)

	_, err := s.Append(domain.Message{ID: "a", Text: "   ", Sender: domain.SelfID})
	assert.ErrorIs(t, err, domain.ErrEmptyText)
	assert.Zero(t, s.Len())

	// received messages are stored as given
	_, err = s.Append(domain.Message{ID: "b", Text: "", Sender: "contact_1"})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestStore_AppendKeepsTimeOrder(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewStore([]domain.Message{{ID: "h1", Text: "old", Timestamp: base, Sender: "c"}})

	got, err := s.Append(domain.Message{ID: "m1", Text: "hi", Timestamp: base.Add(-time.Hour), Sender: domain.SelfID})
	require.NoError(t, err)
	assert.Equal(t, base, got.Timestamp)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "h1", msgs[0].ID)
	assert.Equal(t, "m1", msgs[1].ID)
	assert.False(t, msgs[1].Timestamp.Before(msgs[0].Timestamp))
}

func TestStore_UpdateStatus(t *testing.T) {
	s := NewStore(nil)
	_, err := s.Append(domain.Message{ID: "m1", Text: "hi", Sender: domain.SelfID, Status: domain.StatusSending})
	require.NoError(t, err)

	updated, ok := s.UpdateStatus("m1", domain.StatusSent)
	require.True(t, ok)
	assert.Equal(t, domain.StatusSent, updated.Status)
	assert.Equal(t, "hi", updated.Text)

	_, ok = s.UpdateStatus("missing", domain.StatusRead)
	assert.False(t, ok)

	got, ok := s.Get("m1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusSent, got.Status)
}

func TestStore_MessagesIsACopy(t *testing.T) {
	s := NewStore([]domain.Message{{ID: "h1", Text: "x", Sender: "c"}})

	msgs := s.Messages()
	msgs[0].Text = "changed"

	got, _ := s.Get("h1")
	assert.Equal(t, "x", got.Text)
}
