// Package services contains the application services of the local client.
// This file defines the authentication service: registration, login,
// logout and profile updates against the local account table and the
// session store, plus the AuthState signal derived from them.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/dreamias/internal/client/models"
	"github.com/dmitrijs2005/dreamias/internal/client/repositories/users"
	"github.com/dmitrijs2005/dreamias/internal/common"
	"github.com/dmitrijs2005/dreamias/internal/cryptox"
	"github.com/dmitrijs2005/dreamias/internal/dbx"
	"github.com/dmitrijs2005/dreamias/internal/logging"
	"github.com/dmitrijs2005/dreamias/internal/signal"
)

// SessionStore is the part of session.Store the service depends on.
type SessionStore interface {
	ObserveCurrentUser(ctx context.Context) <-chan string
	CurrentUser() string
	SetCurrentUser(ctx context.Context, email string) error
	ClearCurrentUser(ctx context.Context) error
	SetAvatarRef(ctx context.Context, email string, ref *string) error
	GetAvatarRef(ctx context.Context, email string) (string, bool, error)
}

// AuthService is the only component that combines the account table and the
// session store.
//
// Every operation returns nil or an *AuthError and also reflects its outcome
// in the AuthState signal. When operations overlap, only the most recently
// started one updates IsLoading and ErrorMessage.
type AuthService struct {
	db       *sql.DB
	sessions SessionStore
	log      logging.Logger

	state  *signal.Signal[AuthState]
	gen    atomic.Uint64
	loaded atomic.Bool

	users func(db dbx.DBTX) users.Repository
	now   func() time.Time
}

// NewAuthService wires the service to the local database and session store.
// Call Run to start deriving AuthState from the session.
func NewAuthService(db *sql.DB, sessions SessionStore, log logging.Logger) *AuthService {
	return &AuthService{
		db:       db,
		sessions: sessions,
		log:      log.With("component", "auth"),
		state:    signal.New(initialState()),
		users: func(db dbx.DBTX) users.Repository {
			return users.NewSQLiteRepository(db)
		},
		now: time.Now,
	}
}

// State returns the latest AuthState.
func (a *AuthService) State() AuthState {
	return a.state.Get()
}

// Subscribe yields the current AuthState and every later one (latest wins).
func (a *AuthService) Subscribe(ctx context.Context) <-chan AuthState {
	return a.state.Subscribe(ctx)
}

// Run re-reads the account every time the session changes and republishes
// AuthState. It blocks until ctx is done.
func (a *AuthService) Run(ctx context.Context) {
	for email := range a.sessions.ObserveCurrentUser(ctx) {
		a.refresh(ctx, email)
	}
}

// Register validates the input, creates the account and signs it in.
func (a *AuthService) Register(ctx context.Context, email, username string, targetYear int, password []byte) error {
	gen := a.begin()
	err := a.register(ctx, strings.TrimSpace(email), strings.TrimSpace(username), targetYear, password)
	a.finish(gen, err, msgRegisterFailed)
	return err
}

func (a *AuthService) register(ctx context.Context, email, username string, targetYear int, password []byte) error {
	if err := validateRegistration(email, username, targetYear, password); err != nil {
		return err
	}

	repo := a.users(a.db)

	_, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return newAuthError(common.ErrorAlreadyExists, msgAccountExists)
	case !errors.Is(err, common.ErrorNotFound):
		return a.internalError(ctx, "lookup before register", err, msgRegisterFailed)
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		Email:        email,
		Username:     username,
		TargetYear:   targetYear,
		PasswordHash: cryptox.HashPassword(password, salt),
		Salt:         salt,
		CreatedAt:    a.now().UTC().Truncate(time.Millisecond),
	}

	if err := repo.Insert(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, common.ErrorAlreadyExists) {
			return newAuthError(common.ErrorAlreadyExists, msgAccountExists)
		}
		return a.internalError(ctx, "insert account", err, msgRegisterFailed)
	}

	if err := a.sessions.SetCurrentUser(ctx, email); err != nil {
		return a.internalError(ctx, "set session", err, msgRegisterFailed)
	}

	a.log.Info(ctx, "account registered", "email", email)
	return nil
}

// Login checks the password of an existing account and signs it in.
// A failed login leaves the current session untouched.
func (a *AuthService) Login(ctx context.Context, email string, password []byte) error {
	gen := a.begin()
	err := a.login(ctx, strings.TrimSpace(email), password)
	a.finish(gen, err, msgLoginFailed)
	return err
}

func (a *AuthService) login(ctx context.Context, email string, password []byte) error {
	if err := validateLogin(email, password); err != nil {
		return err
	}

	user, err := a.users(a.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return newAuthError(common.ErrorNotFound, msgNoAccountForEmail)
		}
		return a.internalError(ctx, "lookup before login", err, msgLoginFailed)
	}

	if !cryptox.VerifyPassword(password, user.Salt, user.PasswordHash) {
		a.log.Warn(ctx, "login rejected", "email", email)
		return newAuthError(common.ErrorUnauthorized, msgIncorrectPassword)
	}

	if err := a.sessions.SetCurrentUser(ctx, user.Email); err != nil {
		return a.internalError(ctx, "set session", err, msgLoginFailed)
	}

	a.log.Info(ctx, "logged in", "email", user.Email)
	return nil
}

// Logout clears the session. It always succeeds from the caller's point of
// view; a failure to persist the cleared session is only logged.
func (a *AuthService) Logout(ctx context.Context) {
	if err := a.sessions.ClearCurrentUser(ctx); err != nil {
		a.log.Error(ctx, "clear session failed", "error", err)
	}
	a.state.Update(func(s AuthState) AuthState {
		return s.signedOut()
	})
	a.log.Info(ctx, "logged out")
}

// UpdateProfile rewrites the display name, target year and avatar of an
// existing account. A nil avatarURL removes the avatar. The same name and
// year rules as registration apply.
func (a *AuthService) UpdateProfile(ctx context.Context, email, username string, targetYear int, avatarURL *string) error {
	a.state.Update(func(s AuthState) AuthState {
		s.IsProfileSaving = true
		s.ProfileMessage = ""
		s.ProfileMessageIsError = false
		return s
	})

	username = strings.TrimSpace(username)
	err := a.updateProfile(ctx, email, username, targetYear, avatarURL)

	var updated *models.User
	if err == nil {
		updated, _ = a.users(a.db).FindByEmail(ctx, email)
	}

	a.state.Update(func(s AuthState) AuthState {
		s.IsProfileSaving = false
		if err != nil {
			s.ProfileMessage = errorMessage(err, msgUpdateFailed)
			s.ProfileMessageIsError = true
			return s
		}
		s.ProfileMessage = msgProfileUpdated
		s.ProfileMessageIsError = false
		if s.CurrentUserEmail != email {
			return s
		}
		if updated == nil {
			// re-read failed; fall back to what was written
			updated = &models.User{Username: username, TargetYear: targetYear, AvatarURL: avatarURL}
		}
		s.CurrentUserName = updated.Username
		s.TargetYear = updated.TargetYear
		s.AvatarURL = derefOr(updated.AvatarURL, "")
		return s
	})
	return err
}

func (a *AuthService) updateProfile(ctx context.Context, email, username string, targetYear int, avatarURL *string) error {
	if err := validateProfile(username, targetYear); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.users(tx)
		if _, err := repo.FindByEmail(ctx, email); err != nil {
			return err
		}
		return repo.UpdateProfile(ctx, email, username, targetYear, avatarURL)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return newAuthError(common.ErrorNotFound, msgNoAccount)
		}
		return a.internalError(ctx, "update profile", err, msgUpdateFailed)
	}

	if err := a.sessions.SetAvatarRef(ctx, email, avatarURL); err != nil {
		a.log.Warn(ctx, "avatar cache not updated", "email", email, "error", err)
	}

	a.log.Info(ctx, "profile updated", "email", email)
	return nil
}

// ClearError drops the current error message, e.g. on the next user input.
func (a *AuthService) ClearError() {
	a.state.Update(func(s AuthState) AuthState {
		s.ErrorMessage = ""
		return s
	})
}

// ClearProfileMessage drops the result message of the last profile update.
func (a *AuthService) ClearProfileMessage() {
	a.state.Update(func(s AuthState) AuthState {
		s.ProfileMessage = ""
		s.ProfileMessageIsError = false
		return s
	})
}

// refresh derives AuthState for the session value email.
func (a *AuthService) refresh(ctx context.Context, email string) {
	first := a.loaded.CompareAndSwap(false, true)

	if email == "" {
		a.state.Update(func(s AuthState) AuthState {
			if first {
				s.IsLoading = false
			}
			if a.sessions.CurrentUser() != "" {
				// signed in again since; leave it to the operation that did it
				return s
			}
			return s.signedOut()
		})
		return
	}

	cachedAvatar, _, cerr := a.sessions.GetAvatarRef(ctx, email)
	if cerr != nil {
		a.log.Warn(ctx, "read cached avatar", "email", email, "error", cerr)
	}

	user, err := a.users(a.db).FindByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		// the session points at an account that no longer exists
		a.log.Warn(ctx, "session without account, signing out", "email", email)
		if err := a.sessions.ClearCurrentUser(ctx); err != nil {
			a.log.Error(ctx, "clear session failed", "error", err)
		}
		a.state.Update(func(s AuthState) AuthState {
			s = s.signedOut()
			s.AvatarURL = cachedAvatar
			s.IsLoading = false
			s.ErrorMessage = msgSessionExpired
			return s
		})
		return
	}
	if err != nil {
		a.log.Error(ctx, "load session account", "email", email, "error", err)
		a.state.Update(func(s AuthState) AuthState {
			if first {
				s.IsLoading = false
			}
			s.ErrorMessage = msgSessionLoadFailed
			return s
		})
		return
	}

	if a.sessions.CurrentUser() != email {
		// superseded while reading; the newer value will be delivered next
		if first {
			a.state.Update(func(s AuthState) AuthState {
				s.IsLoading = false
				return s
			})
		}
		return
	}

	a.state.Update(func(s AuthState) AuthState {
		if s.CurrentUserEmail != email {
			s.IsProfileSaving = false
			s.ProfileMessage = ""
			s.ProfileMessageIsError = false
		}
		if first {
			s.IsLoading = false
		}
		s.IsAuthenticated = true
		s.CurrentUserEmail = user.Email
		s.CurrentUserName = user.Username
		s.TargetYear = user.TargetYear
		s.CreatedAt = user.CreatedAt
		s.AvatarURL = derefOr(user.AvatarURL, cachedAvatar)
		return s
	})
}

// begin starts a new generation and marks the state as loading.
func (a *AuthService) begin() uint64 {
	gen := a.gen.Add(1)
	a.state.Update(func(s AuthState) AuthState {
		s.IsLoading = true
		s.ErrorMessage = ""
		return s
	})
	return gen
}

// finish publishes the outcome of generation gen unless a newer operation
// has started since.
func (a *AuthService) finish(gen uint64, err error, fallback string) {
	email := a.sessions.CurrentUser()

	a.state.Update(func(s AuthState) AuthState {
		if a.gen.Load() != gen {
			return s
		}
		s.IsLoading = false
		if err != nil {
			s.ErrorMessage = errorMessage(err, fallback)
			return s
		}
		if s.CurrentUserEmail != email {
			s = s.signedOut()
			s.AvatarURL = ""
			s.CurrentUserEmail = email
		}
		s.IsAuthenticated = true
		s.ErrorMessage = ""
		return s
	})
}

func (a *AuthService) internalError(ctx context.Context, op string, err error, msg string) error {
	a.log.Error(ctx, op+" failed", "error", err)
	return &AuthError{Kind: common.ErrorInternal, Message: msg, Err: err}
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
