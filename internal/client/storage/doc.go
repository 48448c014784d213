// Package storage bootstraps the local SQLite database of the app.
//
// Open creates the database file if needed, applies the embedded goose
// migrations (see internal/client/migrations) and returns the handle
// together with the repositories built on it. The process owns a single
// Database for its whole lifetime; the services receive it explicitly.
package storage
