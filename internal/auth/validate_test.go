package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sudo-hablu/chatter/internal/domain"
)

func TestValidEmail(t *testing.T) {
	for _, s := range []string{"a@b.co", "first.last@example.com", "x+y@sub.domain.org"} {
		assert.True(t, ValidEmail(s), s)
	}
	for _, s := range []string{"", "plain", "a@b", "a b@c.d", "@b.co", "a@@b.co"} {
		assert.False(t, ValidEmail(s), s)
	}
}

func TestValidPhone(t *testing.T) {
	for _, s := range []string{"1234567890", "+12345678901", "12345678901234"} {
		assert.True(t, ValidPhone(s), s)
	}
	for _, s := range []string{"", "123456789", "123456789012345", "+1 234 567 8901", "12345abcde"} {
		assert.False(t, ValidPhone(s), s)
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Al"))
	assert.True(t, ValidName("  Jo  "))
	assert.False(t, ValidName(" J "))
	assert.False(t, ValidName(""))
}

func TestValidateContact(t *testing.T) {
	assert.NoError(t, ValidateContact(domain.MethodEmail, "me@example.com"))
	assert.NoError(t, ValidateContact(domain.MethodPhone, "+15551234567"))
	assert.ErrorIs(t, ValidateContact(domain.MethodEmail, "+15551234567"), domain.ErrInvalidContact)
	assert.ErrorIs(t, ValidateContact(domain.MethodPhone, "me@example.com"), domain.ErrInvalidContact)
	assert.ErrorIs(t, ValidateContact("pigeon", "x"), domain.ErrInvalidMethod)
}
