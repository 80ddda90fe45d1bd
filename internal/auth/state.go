package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/internal/kvstore"
	"github.com/sudo-hablu/chatter/pkg/log"
)

// Storage keys.
const (
	KeyProfile = "userProfile"
	KeyToken   = "userToken"
)

const avatarFallbackURL = "https://ui-avatars.com/api/?name="

type StateConfig struct {
	ProfileDelay time.Duration
}

// State is the signed-in user, backed by device storage. Build one in main
// and hand it to whoever needs it.
type State struct {
	cfg   StateConfig
	store kvstore.Store
	clock clockwork.Clock

	mu      sync.RWMutex
	profile *domain.Profile
	token   string
}

func NewState(cfg StateConfig, store kvstore.Store, clock clockwork.Clock) *State {
	return &State{cfg: cfg, store: store, clock: clock}
}

// Load reads the persisted profile and token. Read errors and corrupt data
// are logged and leave the user signed out.
func (s *State) Load(ctx context.Context) {
	l := log.Ctx(ctx)

	var profile *domain.Profile
	raw, err := s.store.Get(ctx, KeyProfile)
	switch {
	case err == nil:
		var p domain.Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			l.Warn().Err(err).Str(log.FieldStorageKey, KeyProfile).Msg("ignoring corrupt stored profile")
		} else {
			profile = &p
		}
	case !errors.Is(err, kvstore.ErrNotFound):
		l.Warn().Err(err).Str(log.FieldStorageKey, KeyProfile).Msg("failed to read stored profile")
	}

	token, err := s.store.Get(ctx, KeyToken)
	if err != nil {
		token = ""
		if !errors.Is(err, kvstore.ErrNotFound) {
			l.Warn().Err(err).Str(log.FieldStorageKey, KeyToken).Msg("failed to read stored token")
		}
	}

	s.mu.Lock()
	s.profile = profile
	s.token = token
	s.mu.Unlock()

	l.Info().Bool("authenticated", token != "").Bool("has_profile", profile != nil).Msg("app state loaded")
}

// CreateProfile finishes sign-up: it builds the profile, waits the
// configured delay and persists profile and token.
func (s *State) CreateProfile(ctx context.Context, fullName, avatarURL string) (domain.Profile, string, error) {
	fullName = strings.TrimSpace(fullName)
	if !ValidName(fullName) {
		return domain.Profile{}, "", domain.ErrInvalidName
	}

	if s.cfg.ProfileDelay > 0 {
		select {
		case <-ctx.Done():
			return domain.Profile{}, "", ctx.Err()
		case <-s.clock.After(s.cfg.ProfileDelay):
		}
	}

	now := s.clock.Now().UTC()
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		avatarURL = avatarFallbackURL + url.QueryEscape(fullName)
	}
	profile := domain.Profile{
		ID:        fmt.Sprintf("user_%d", now.UnixMilli()),
		FullName:  fullName,
		AvatarURL: avatarURL,
		CreatedAt: now,
	}
	token := fmt.Sprintf("mock-token-%d", now.UnixMilli())

	raw, err := json.Marshal(profile)
	if err != nil {
		return domain.Profile{}, "", fmt.Errorf("failed to encode profile: %w", err)
	}

	l := log.Ctx(ctx)
	if err := s.store.Set(ctx, KeyProfile, string(raw)); err != nil {
		l.Error().Err(err).Str(log.FieldStorageKey, KeyProfile).Msg("failed to save profile")
		return domain.Profile{}, "", fmt.Errorf("failed to save profile: %w", err)
	}
	if err := s.store.Set(ctx, KeyToken, token); err != nil {
		l.Error().Err(err).Str(log.FieldStorageKey, KeyToken).Msg("failed to save token")
		return domain.Profile{}, "", fmt.Errorf("failed to save token: %w", err)
	}

	s.mu.Lock()
	s.profile = &profile
	s.token = token
	s.mu.Unlock()

	l.Info().Str(log.FieldUserID, profile.ID).Msg("profile created")
	return profile, token, nil
}

// Logout removes the token and the profile. Storage failures are logged;
// the in-memory state is cleared either way.
func (s *State) Logout(ctx context.Context) {
	l := log.Ctx(ctx)
	for _, key := range []string{KeyToken, KeyProfile} {
		if err := s.store.Delete(ctx, key); err != nil {
			l.Warn().Err(err).Str(log.FieldStorageKey, key).Msg("failed to delete stored value")
		}
	}

	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	l.Info().Msg("logged out")
}

// Profile returns a copy of the current profile, or nil.
func (s *State) Profile() *domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *State) Authenticated() bool {
	return s.Token() != ""
}

// CheckToken reports whether token is the current session token.
func (s *State) CheckToken(token string) bool {
	current := s.Token()
	if current == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(current), []byte(token)) == 1
}

// InitialScreen is where the app opens: the chat list when signed in,
// otherwise the welcome screen.
func (s *State) InitialScreen() string {
	if s.Authenticated() {
		return domain.ScreenChats
	}
	return domain.ScreenWelcome
}

// Close releases the backing store.
func (s *State) Close() error {
	return s.store.Close()
}

// ValidateToken resolves token to the profile id when it is the current
// session token.
func (s *State) ValidateToken(token string) (string, bool) {
	if !s.CheckToken(token) {
		return "", false
	}
	if p := s.Profile(); p != nil {
		return p.ID, true
	}
	return "", true
}
