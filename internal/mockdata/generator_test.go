package mockdata

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-hablu/chatter/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+1 \(\d{3}\) \d{3}-\d{4}$`)

func newTestGenerator(seed uint64) (*Generator, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	return NewSeeded(seed, clock), clock
}

func TestMessages_Chronological(t *testing.T) {
	g, clock := newTestGenerator(1)

	msgs := g.Messages(20, "contact_3")
	require.Len(t, msgs, 20)

	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].Timestamp.Before(msgs[i-1].Timestamp), "message %d out of order", i)
	}
	assert.False(t, msgs[len(msgs)-1].Timestamp.After(clock.Now()))
	assert.True(t, msgs[0].Timestamp.After(clock.Now().Add(-20*time.Hour)))
}

func TestMessages_SendersAndStatus(t *testing.T) {
	g, _ := newTestGenerator(2)

	msgs := g.Messages(10, "contact_1")
	// reversed, so msg_0 is last
	assert.Equal(t, "msg_0", msgs[len(msgs)-1].ID)
	assert.Equal(t, "msg_9", msgs[0].ID)

	for _, m := range msgs {
		var idx int
		_, err := fmt.Sscanf(m.ID, "msg_%d", &idx)
		require.NoError(t, err)
		if idx%2 == 0 {
			assert.Equal(t, "contact_1", m.Sender)
			assert.Equal(t, domain.StatusNone, m.Status)
		} else {
			assert.Equal(t, domain.SelfID, m.Sender)
			assert.True(t, m.Status.Valid())
		}
		assert.NotEmpty(t, m.Text)
	}
}

func TestMessages_ConversationFlow(t *testing.T) {
	g, _ := newTestGenerator(3)

	msgs := g.Messages(8, "contact_0")
	byID := make(map[string]string, len(msgs))
	for _, m := range msgs {
		byID[m.ID] = m.Text
	}

	assert.Contains(t, greetings, byID["msg_0"])
	assert.Contains(t, greetings, byID["msg_1"])
	assert.Contains(t, smallTalk, byID["msg_4"])
	assert.Contains(t, closings, byID["msg_7"])
}

func TestMessages_Deterministic(t *testing.T) {
	a, _ := newTestGenerator(42)
	b, _ := newTestGenerator(42)

	assert.Equal(t, a.Messages(15, "x"), b.Messages(15, "x"))
}

func TestChats(t *testing.T) {
	g, _ := newTestGenerator(4)

	chats := g.Chats(15)
	require.Len(t, chats, 15)
	for i, c := range chats {
		assert.Equal(t, "contact_"+strconv.Itoa(i), c.ID)
		assert.Contains(t, avatarURLs, c.AvatarURL)
		assert.Contains(t, chatPreviews, c.LastMessage.Text)
		assert.LessOrEqual(t, c.UnreadCount, 10)
		if c.LastMessage.IsSelf() {
			assert.Zero(t, c.UnreadCount)
			assert.True(t, c.LastMessage.Status.Valid())
		} else {
			assert.Equal(t, c.ID, c.LastMessage.Sender)
		}
	}
}

func TestContacts_SortedByName(t *testing.T) {
	g, _ := newTestGenerator(5)

	contacts := g.Contacts(25)
	require.Len(t, contacts, 25)
	assert.True(t, sort.SliceIsSorted(contacts, func(i, j int) bool {
		return strings.ToLower(contacts[i].Name) < strings.ToLower(contacts[j].Name)
	}))
	for _, c := range contacts {
		assert.Regexp(t, phonePattern, c.Phone)
		if c.Status != "" {
			assert.Contains(t, contactStatuses, c.Status)
		}
		parts := strings.Split(c.Name, " ")
		require.Len(t, parts, 2)
		assert.Contains(t, firstNames, parts[0])
		assert.Contains(t, lastNames, parts[1])
	}
}

func TestCalls_DurationOnlyWhenCompleted(t *testing.T) {
	g, _ := newTestGenerator(6)

	for _, c := range g.Calls(200) {
		if c.Status == domain.CallCompleted {
			require.NotNil(t, c.Duration)
			assert.GreaterOrEqual(t, *c.Duration, 0)
			assert.Less(t, *c.Duration, 600)
		} else {
			assert.Nil(t, c.Duration)
		}
		assert.Contains(t, []domain.CallType{domain.CallAudio, domain.CallVideo}, c.Type)
		assert.Contains(t, []domain.CallDirection{domain.CallIncoming, domain.CallOutgoing}, c.Direction)
	}
}

func TestContactByID(t *testing.T) {
	g, _ := newTestGenerator(7)

	assert.Nil(t, g.ContactByID(""))

	c := g.ContactByID("contact_9")
	require.NotNil(t, c)
	assert.Equal(t, "contact_9", c.ID)
	assert.Contains(t, contactStatuses, c.Status)
	assert.Regexp(t, phonePattern, c.Phone)
}

func TestReply(t *testing.T) {
	g, _ := newTestGenerator(8)
	for i := 0; i < 50; i++ {
		assert.Contains(t, Replies, g.Reply())
	}
	assert.Len(t, Replies, 10)
}

func TestWeightedStatusCoversAll(t *testing.T) {
	g, _ := newTestGenerator(9)

	seen := map[domain.Status]int{}
	for i := 0; i < 2000; i++ {
		seen[g.MessageStatus()]++
	}
	assert.Len(t, seen, 4)
	assert.Greater(t, seen[domain.StatusRead], seen[domain.StatusSending])
}
