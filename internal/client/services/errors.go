package services

import (
	"errors"

	"github.com/dmitrijs2005/dreamias/internal/common"
)

// User-facing messages. They are shown verbatim by the presentation layer.
const (
	msgInvalidEmail      = "Please enter a valid email"
	msgNameRequired      = "Please enter your name"
	msgInvalidTargetYear = "Please enter a valid target year"
	msgProfileTargetYear = "Enter a valid target year (2024-2100)"
	msgPasswordTooShort  = "Password should be at least 6 characters"
	msgPasswordRequired  = "Password cannot be empty"
	msgAccountExists     = "Account already exists for this email"
	msgNoAccountForEmail = "No account found for this email"
	msgNoAccount         = "No account found"
	msgIncorrectPassword = "Incorrect password"
	msgRegisterFailed    = "Registration failed"
	msgLoginFailed       = "Login failed"
	msgUpdateFailed      = "Unable to update profile"
	msgProfileUpdated    = "Profile updated"
	msgSessionExpired    = "Session expired, please sign in again"
	msgSessionLoadFailed = "Unable to load your account"
)

// AuthError is the failure value returned by every AuthService operation.
//
// Kind is one of the common sentinels (ErrorValidation, ErrorAlreadyExists,
// ErrorNotFound, ErrorUnauthorized, ErrorInternal) so callers can branch
// with errors.Is; Message is the text to show the user. Err keeps the
// underlying storage error, if any.
type AuthError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newAuthError(kind error, msg string) *AuthError {
	return &AuthError{Kind: kind, Message: msg}
}

// errorMessage returns the user-facing text of err, or fallback when err
// is not an AuthError.
func errorMessage(err error, fallback string) string {
	var ae *AuthError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// IsValidation reports whether err was rejected before touching storage.
func IsValidation(err error) bool {
	return errors.Is(err, common.ErrorValidation)
}
