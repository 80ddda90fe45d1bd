package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sudo-hablu/chatter/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,14}$`)
)

const minNameLength = 2

func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

func ValidPhone(s string) bool { return phonePattern.MatchString(s) }

// ValidName requires at least two characters once surrounding space is removed.
func ValidName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= minNameLength
}

// ValidateContact checks contact against the rules of method.
func ValidateContact(method domain.ContactMethod, contact string) error {
	switch method {
	case domain.MethodEmail:
		if !ValidEmail(contact) {
			return domain.ErrInvalidContact
		}
	case domain.MethodPhone:
		if !ValidPhone(contact) {
			return domain.ErrInvalidContact
		}
	default:
		return domain.ErrInvalidMethod
	}
	return nil
}
