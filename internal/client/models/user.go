// Package models defines the client-side records persisted in the local
// database.
package models

import "time"

// User is a local account, one row per distinct email.
type User struct {
	// Email is the primary key; it never changes after creation.
	Email string

	// Username is the display name.
	Username string

	// TargetYear is the exam year the user is preparing for (2024–2100).
	TargetYear int

	// PasswordHash is base64(SHA-256(Salt + ":" + password)).
	PasswordHash string
	// Salt is the random per-account salt generated at registration.
	Salt string

	// CreatedAt is set once at registration. Stored with millisecond precision.
	CreatedAt time.Time

	// AvatarURL references a locally stored image; nil when unset.
	AvatarURL *string
}
