package services

import "time"

// AuthState is the snapshot published to the presentation layer.
// Empty strings and zero values mean "absent".
type AuthState struct {
	IsAuthenticated  bool
	IsLoading        bool
	ErrorMessage     string
	CurrentUserEmail string
	CurrentUserName  string

	TargetYear int
	CreatedAt  time.Time
	// AvatarURL is the account's avatar, falling back to the cached one.
	AvatarURL string

	IsProfileSaving       bool
	ProfileMessage        string
	ProfileMessageIsError bool
}

// initialState is published until the session has been read once.
func initialState() AuthState {
	return AuthState{IsLoading: true}
}

// signedOut drops everything tied to the previous user. The avatar is
// kept on purpose so the sign-in screen can still show it.
func (s AuthState) signedOut() AuthState {
	return AuthState{
		IsLoading:    s.IsLoading,
		ErrorMessage: s.ErrorMessage,
		AvatarURL:    s.AvatarURL,
	}
}
