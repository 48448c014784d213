// Package cli provides the interactive Dream IAS command-line client.
//
// It wires configuration, the local SQLite database, the session store and
// the authentication service, then runs a small REPL on top of them.
//
// Key features:
//   - Register / Login / Logout against local accounts
//   - Profile view and editing (name, target year, avatar image)
//   - Session resume: a signed-in user stays signed in across restarts
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and watchState for details.
package cli
