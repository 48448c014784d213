package users

import (
	"context"

	"github.com/dmitrijs2005/dreamias/internal/client/models"
)

// Repository persists local accounts keyed by email.
//
// Contract:
//   - FindByEmail returns common.ErrorNotFound when no row exists.
//   - Insert returns common.ErrorAlreadyExists when the email is taken; the
//     check is the table's primary key, so concurrent inserts of one email
//     leave exactly one row.
//   - UpdateProfile rewrites only username, target year and avatar and
//     returns common.ErrorNotFound when no row matched.
//   - Delete is idempotent.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, email, username string, targetYear int, avatarURL *string) error
	Delete(ctx context.Context, email string) error
}
