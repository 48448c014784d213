// Package prefs is the durable key/value namespace behind the session
// store ("auth_prefs" table).
package prefs

import (
	"context"
)

// Repository is a string key/value store with upsert semantics.
// Get reports ok=false for a missing key; Delete of a missing key is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
