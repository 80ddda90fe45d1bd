package auth

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/pkg/idgen"
	"github.com/sudo-hablu/chatter/pkg/log"
)

type OTPConfig struct {
	CodeLength  int
	ResendAfter time.Duration
	VerifyDelay time.Duration
	// Expiry drops challenges not resent or verified for this long.
	Expiry time.Duration
}

func DefaultOTPConfig() OTPConfig {
	return OTPConfig{
		CodeLength:  4,
		ResendAfter: 60 * time.Second,
		VerifyDelay: 1500 * time.Millisecond,
		Expiry:      10 * time.Minute,
	}
}

// Verifier tracks sign-up verification challenges. No code is actually
// delivered; any well-formed code verifies.
type Verifier struct {
	cfg   OTPConfig
	clock clockwork.Clock
	ids   idgen.Generator

	mu         sync.Mutex
	challenges map[string]domain.Challenge
}

func NewVerifier(cfg OTPConfig, clock clockwork.Clock, ids idgen.Generator) *Verifier {
	def := DefaultOTPConfig()
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = def.CodeLength
	}
	if cfg.ResendAfter < 0 {
		cfg.ResendAfter = def.ResendAfter
	}
	if cfg.VerifyDelay < 0 {
		cfg.VerifyDelay = def.VerifyDelay
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = def.Expiry
	}
	if cfg.Expiry < cfg.ResendAfter {
		cfg.Expiry = cfg.ResendAfter
	}
	return &Verifier{
		cfg:        cfg,
		clock:      clock,
		ids:        ids,
		challenges: make(map[string]domain.Challenge),
	}
}

// Start opens a challenge for contact after validating it for method.
func (v *Verifier) Start(ctx context.Context, method domain.ContactMethod, contact string) (domain.Challenge, error) {
	contact = strings.TrimSpace(contact)
	if err := ValidateContact(method, contact); err != nil {
		return domain.Challenge{}, err
	}

	c := domain.Challenge{
		ID:      idgen.NewID(v.ids),
		Method:  method,
		Contact: contact,
		SentAt:  v.clock.Now().UTC(),
	}

	v.mu.Lock()
	swept := v.sweepLocked()
	v.challenges[c.ID] = c
	v.mu.Unlock()

	l := log.Ctx(ctx)
	if swept > 0 {
		l.Debug().Int("count", swept).Msg("expired verification challenges dropped")
	}
	l.Info().Str(log.FieldChallengeID, c.ID).Str("method", string(method)).Msg("verification code sent")
	return c, nil
}

func (v *Verifier) expiredLocked(c domain.Challenge) bool {
	return v.clock.Since(c.SentAt) >= v.cfg.Expiry
}

func (v *Verifier) sweepLocked() int {
	n := 0
	for id, c := range v.challenges {
		if v.expiredLocked(c) {
			delete(v.challenges, id)
			n++
		}
	}
	return n
}

// lookupLocked finds a live challenge, dropping it when expired.
func (v *Verifier) lookupLocked(id string) (domain.Challenge, bool) {
	c, ok := v.challenges[id]
	if !ok {
		return domain.Challenge{}, false
	}
	if v.expiredLocked(c) {
		delete(v.challenges, id)
		return domain.Challenge{}, false
	}
	return c, true
}

// Pending is the number of challenges currently held.
func (v *Verifier) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.challenges)
}

// Remaining is the time left before a resend is allowed.
func (v *Verifier) Remaining(id string) (time.Duration, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	c, ok := v.lookupLocked(id)
	if !ok {
		return 0, domain.ErrChallengeNotFound
	}
	return v.remainingLocked(c), nil
}

func (v *Verifier) remainingLocked(c domain.Challenge) time.Duration {
	left := v.cfg.ResendAfter - v.clock.Since(c.SentAt)
	if left < 0 {
		return 0
	}
	return left
}

// Seconds rounds a countdown up to whole seconds for display.
func Seconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// Resend restarts the countdown once it has run out.
func (v *Verifier) Resend(ctx context.Context, id string) (domain.Challenge, error) {
	v.mu.Lock()
	c, ok := v.lookupLocked(id)
	if !ok {
		v.mu.Unlock()
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}
	if v.remainingLocked(c) > 0 {
		v.mu.Unlock()
		return domain.Challenge{}, domain.ErrResendTooSoon
	}
	c.SentAt = v.clock.Now().UTC()
	v.challenges[id] = c
	v.mu.Unlock()

	l := log.Ctx(ctx)
	l.Info().Str(log.FieldChallengeID, id).Msg("verification code resent")
	return c, nil
}

// Verify accepts a code of exactly CodeLength digits after VerifyDelay and
// consumes the challenge.
func (v *Verifier) Verify(ctx context.Context, id, code string) (domain.Challenge, error) {
	if !v.wellFormed(code) {
		return domain.Challenge{}, domain.ErrInvalidCode
	}

	v.mu.Lock()
	_, ok := v.lookupLocked(id)
	v.mu.Unlock()
	if !ok {
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}

	if v.cfg.VerifyDelay > 0 {
		select {
		case <-ctx.Done():
			return domain.Challenge{}, ctx.Err()
		case <-v.clock.After(v.cfg.VerifyDelay):
		}
	}

	v.mu.Lock()
	c, ok := v.challenges[id]
	delete(v.challenges, id)
	v.mu.Unlock()
	if !ok {
		// verified concurrently
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}

	l := log.Ctx(ctx)
	l.Info().Str(log.FieldChallengeID, id).Msg("verification code accepted")
	return c, nil
}

func (v *Verifier) wellFormed(code string) bool {
	if len(code) != v.cfg.CodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
