package directory

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/internal/mockdata"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FilterContacts keeps the contacts whose name contains query, ignoring
// case. An empty query keeps everything.
func FilterContacts(contacts []domain.Contact, query string) []domain.Contact {
	out := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		if query == "" || containsFold(c.Name, query) {
			out = append(out, c)
		}
	}
	return out
}

// FilterChats keeps the chats whose name or last message text contains
// query, ignoring case.
func FilterChats(chats []domain.Chat, query string) []domain.Chat {
	out := make([]domain.Chat, 0, len(chats))
	for _, c := range chats {
		if query == "" || containsFold(c.Name, query) || containsFold(c.LastMessage.Text, query) {
			out = append(out, c)
		}
	}
	return out
}

// GroupContacts buckets contacts by the upper-cased first letter of their
// name. Sections and the contacts inside them are sorted.
func GroupContacts(contacts []domain.Contact) []domain.ContactSection {
	buckets := make(map[string][]domain.Contact)
	for _, c := range contacts {
		title := "#"
		if r, _ := utf8.DecodeRuneInString(c.Name); r != utf8.RuneError {
			title = string(unicode.ToUpper(r))
		}
		buckets[title] = append(buckets[title], c)
	}

	sections := make([]domain.ContactSection, 0, len(buckets))
	for title, list := range buckets {
		mockdata.SortContacts(list)
		sections = append(sections, domain.ContactSection{Title: title, Contacts: list})
	}
	slices.SortFunc(sections, func(a, b domain.ContactSection) int {
		return strings.Compare(a.Title, b.Title)
	})
	return sections
}
