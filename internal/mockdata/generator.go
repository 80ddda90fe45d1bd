// Package mockdata generates the sample people, chats, calls and message
// history the app runs on.
package mockdata

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sudo-hablu/chatter/internal/domain"
)

// Generator draws sample data from the fixed lists. It is safe for
// concurrent use.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	clock clockwork.Clock
}

// New returns a generator using rng for every random draw.
func New(rng *rand.Rand, clock clockwork.Clock) *Generator {
	return &Generator{rng: rng, clock: clock}
}

// NewSeeded returns a generator with a deterministic source.
func NewSeeded(seed uint64, clock clockwork.Clock) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), clock)
}

func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

func (g *Generator) float() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

func (g *Generator) pick(list []string) string {
	return list[g.intN(len(list))]
}

// weighted returns an index drawn from weights that sum to 1.
func (g *Generator) weighted(weights []float64) int {
	r := g.float()
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

func (g *Generator) Name() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

func (g *Generator) Avatar() string {
	return g.pick(avatarURLs)
}

func (g *Generator) ContactStatus() string {
	return g.pick(contactStatuses)
}

// Reply picks one of Replies uniformly.
func (g *Generator) Reply() string {
	return g.pick(Replies)
}

// PhoneNumber formats a random North American number.
func (g *Generator) PhoneNumber() string {
	return fmt.Sprintf("+1 (%d) %d-%d", g.intN(900)+100, g.intN(900)+100, g.intN(9000)+1000)
}

func (g *Generator) MessageStatus() domain.Status {
	statuses := []domain.Status{domain.StatusSending, domain.StatusSent, domain.StatusDelivered, domain.StatusRead}
	return statuses[g.weighted(messageStatusWeights)]
}

func (g *Generator) CallStatus() domain.CallStatus {
	statuses := []domain.CallStatus{domain.CallOngoing, domain.CallCompleted, domain.CallMissed, domain.CallRejected}
	return statuses[g.weighted(callStatusWeights)]
}

// recentTimestamp is a minute-aligned offset within the last week.
func (g *Generator) recentTimestamp() time.Time {
	minutes := g.intN(60 * 24 * 7)
	return g.clock.Now().Add(-time.Duration(minutes) * time.Minute).UTC()
}

// conversationText follows greeting, small talk, closing for longer threads.
func (g *Generator) conversationText(index, total int) string {
	switch {
	case total <= 5:
		return g.pick(chatPreviews)
	case index < 2:
		return g.pick(greetings)
	case index < total-2:
		return g.pick(smallTalk)
	default:
		return g.pick(closings)
	}
}

// Messages returns count history messages with participantID in
// chronological order. Senders alternate and each message is up to an hour
// older than the one after it.
func (g *Generator) Messages(count int, participantID string) []domain.Message {
	messages := make([]domain.Message, 0, count)
	current := g.clock.Now().UTC()

	for i := 0; i < count; i++ {
		sender := domain.SelfID
		if i%2 == 0 {
			sender = participantID
		}

		var status domain.Status
		if sender == domain.SelfID {
			status = g.MessageStatus()
		}

		current = current.Add(-time.Duration(g.intN(60*60*1000)) * time.Millisecond)

		messages = append(messages, domain.Message{
			ID:        fmt.Sprintf("msg_%d", i),
			Text:      g.conversationText(i, count),
			Timestamp: current,
			Sender:    sender,
			Status:    status,
		})
	}

	slices.Reverse(messages)
	return messages
}

// Chats returns count chat-list rows for contact_0..contact_{count-1}.
func (g *Generator) Chats(count int) []domain.Chat {
	chats := make([]domain.Chat, 0, count)
	for i := 0; i < count; i++ {
		isOnline := g.float() > 0.6
		unread := 0
		if g.float() > 0.6 {
			unread = g.intN(10) + 1
		}

		id := fmt.Sprintf("contact_%d", i)
		sender := id
		if g.float() > 0.5 {
			sender = domain.SelfID
		}

		var status domain.Status
		if sender == domain.SelfID {
			status = g.MessageStatus()
			unread = 0
		}

		chats = append(chats, domain.Chat{
			ID:        id,
			Name:      g.Name(),
			AvatarURL: g.Avatar(),
			IsOnline:  isOnline,
			LastMessage: domain.Message{
				ID:        fmt.Sprintf("msg_%d", i),
				Text:      g.pick(chatPreviews),
				Timestamp: g.recentTimestamp(),
				Sender:    sender,
				Status:    status,
			},
			UnreadCount: unread,
		})
	}
	return chats
}

// Contacts returns count contacts sorted by name.
func (g *Generator) Contacts(count int) []domain.Contact {
	contacts := make([]domain.Contact, 0, count)
	for i := 0; i < count; i++ {
		c := domain.Contact{
			ID:        fmt.Sprintf("contact_%d", i),
			Name:      g.Name(),
			AvatarURL: g.Avatar(),
			IsOnline:  g.float() > 0.7,
		}
		if g.float() > 0.3 {
			c.Status = g.ContactStatus()
		}
		c.Phone = g.PhoneNumber()
		contacts = append(contacts, c)
	}

	SortContacts(contacts)
	return contacts
}

// Calls returns count call-history rows.
func (g *Generator) Calls(count int) []domain.Call {
	calls := make([]domain.Call, 0, count)
	for i := 0; i < count; i++ {
		direction := domain.CallOutgoing
		if g.float() > 0.5 {
			direction = domain.CallIncoming
		}
		status := g.CallStatus()
		callType := domain.CallAudio
		if g.float() > 0.7 {
			callType = domain.CallVideo
		}

		var duration *int
		if status == domain.CallCompleted {
			d := g.intN(600)
			duration = &d
		}

		calls = append(calls, domain.Call{
			ID:        fmt.Sprintf("call_%d", i),
			Name:      g.Name(),
			AvatarURL: g.Avatar(),
			Timestamp: g.recentTimestamp(),
			Duration:  duration,
			Status:    status,
			Direction: direction,
			Type:      callType,
		})
	}
	return calls
}

// ContactByID makes up a contact card for id. It returns nil for an empty id.
func (g *Generator) ContactByID(id string) *domain.Contact {
	if id == "" {
		return nil
	}
	return &domain.Contact{
		ID:        id,
		Name:      g.Name(),
		AvatarURL: g.Avatar(),
		IsOnline:  g.float() > 0.5,
		Status:    g.ContactStatus(),
		Phone:     g.PhoneNumber(),
	}
}

// SortContacts orders contacts by name, case-insensitively.
func SortContacts(contacts []domain.Contact) {
	slices.SortStableFunc(contacts, func(a, b domain.Contact) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}
