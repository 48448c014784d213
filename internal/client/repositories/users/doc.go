// Package users implements the local account table on SQLite.
//
// Rows live in the "users" table created by the embedded migrations.
// CreatedAt is stored as Unix milliseconds; AvatarURL maps to a nullable
// column.
package users
