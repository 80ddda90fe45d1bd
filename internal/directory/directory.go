// Package directory holds the chat list, address book and call history
// generated at startup.
package directory

import (
	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/internal/mockdata"
)

type Config struct {
	Chats           int `mapstructure:"chats"`
	Contacts        int `mapstructure:"contacts"`
	NewChatContacts int `mapstructure:"new_chat_contacts"`
	Calls           int `mapstructure:"calls"`
}

func DefaultConfig() Config {
	return Config{Chats: 15, Contacts: 25, NewChatContacts: 15, Calls: 12}
}

// Directory is read-only after New.
type Directory struct {
	gen *mockdata.Generator

	chats           []domain.Chat
	contacts        []domain.Contact
	newChatContacts []domain.Contact
	calls           []domain.Call
	cards           map[string]*domain.Contact
}

func New(cfg Config, gen *mockdata.Generator) *Directory {
	d := &Directory{
		gen:             gen,
		chats:           gen.Chats(cfg.Chats),
		contacts:        gen.Contacts(cfg.Contacts),
		newChatContacts: gen.Contacts(cfg.NewChatContacts),
		calls:           gen.Calls(cfg.Calls),
		cards:           make(map[string]*domain.Contact),
	}

	// chat rows and address book share contact_<n> ids; the chat row wins
	// so a conversation header matches the list it was opened from.
	for i := range d.contacts {
		c := d.contacts[i]
		d.cards[c.ID] = &c
	}
	for _, ch := range d.chats {
		card := domain.Contact{ID: ch.ID, Name: ch.Name, AvatarURL: ch.AvatarURL, IsOnline: ch.IsOnline}
		if known, ok := d.cards[ch.ID]; ok {
			card.Status, card.Phone, card.Email = known.Status, known.Phone, known.Email
		}
		d.cards[ch.ID] = &card
	}
	return d
}

func (d *Directory) Chats(query string) []domain.Chat {
	return FilterChats(d.chats, query)
}

func (d *Directory) Contacts(query string) []domain.Contact {
	return FilterContacts(d.contacts, query)
}

func (d *Directory) ContactSections(query string) []domain.ContactSection {
	return GroupContacts(d.Contacts(query))
}

// NewChatContacts lists the people a new conversation can be started with.
func (d *Directory) NewChatContacts(query string) []domain.Contact {
	return FilterContacts(d.newChatContacts, query)
}

func (d *Directory) Calls() []domain.Call {
	out := make([]domain.Call, len(d.calls))
	copy(out, d.calls)
	return out
}

// ContactByID returns the card for id. Ids outside the directory get a
// freshly generated card on every lookup. Nil for an empty id.
func (d *Directory) ContactByID(id string) *domain.Contact {
	if id == "" {
		return nil
	}
	if c, ok := d.cards[id]; ok {
		card := *c
		return &card
	}
	return d.gen.ContactByID(id)
}
