// Package session keeps the signed-in user of the local app.
//
// The current user email is persisted in the auth_prefs namespace under
// "current_user_email" and mirrored in a latest-value signal so the auth
// service can react to every change. Cached avatar references live next to
// it under "avatar_<sanitized email>".
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/dreamias/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/dreamias/internal/common"
	"github.com/dmitrijs2005/dreamias/internal/signal"
)

const (
	currentUserKey  = "current_user_email"
	avatarKeyPrefix = "avatar_"
)

// Store is the durable single-value session plus the per-account avatar
// cache. An empty email means nobody is signed in.
type Store struct {
	prefs   prefs.Repository
	current *signal.Signal[string]

	// serializes writes so persisted and published values stay in order
	mu sync.Mutex
}

// NewStore loads the persisted session, so a restarted process resumes it.
func NewStore(ctx context.Context, repo prefs.Repository) (*Store, error) {
	email, _, err := repo.Get(ctx, currentUserKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Store{prefs: repo, current: signal.New(email)}, nil
}

// ObserveCurrentUser yields the current email immediately and then every
// change. Superseded values may be skipped by a slow reader. The channel
// is closed when ctx is done.
func (s *Store) ObserveCurrentUser(ctx context.Context) <-chan string {
	return s.current.Subscribe(ctx)
}

// CurrentUser returns the signed-in email or "".
func (s *Store) CurrentUser() string {
	return s.current.Get()
}

// SetCurrentUser persists email as the session and publishes it.
// Setting the same email again is a no-op for observers.
func (s *Store) SetCurrentUser(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prefs.Set(ctx, currentUserKey, email); err != nil {
		return err
	}
	s.publish(email)
	return nil
}

// ClearCurrentUser removes the session. Observers see "" even when the
// persisted value could not be removed; that error is still returned.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.prefs.Delete(ctx, currentUserKey)
	s.publish("")
	return err
}

// SetAvatarRef caches ref for email; a nil ref removes the entry.
func (s *Store) SetAvatarRef(ctx context.Context, email string, ref *string) error {
	if ref == nil {
		return s.prefs.Delete(ctx, AvatarKey(email))
	}
	return s.prefs.Set(ctx, AvatarKey(email), *ref)
}

// GetAvatarRef reads the cached avatar of email.
func (s *Store) GetAvatarRef(ctx context.Context, email string) (string, bool, error) {
	return s.prefs.Get(ctx, AvatarKey(email))
}

// AvatarKey is the auth_prefs key of the avatar cached for email.
func AvatarKey(email string) string {
	return avatarKeyPrefix + common.SanitizeKey(email)
}

func (s *Store) publish(email string) {
	if s.current.Get() == email {
		return
	}
	s.current.Set(email)
}
