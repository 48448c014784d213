package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dreamias/internal/client/models"
	"github.com/dmitrijs2005/dreamias/internal/common"
	"github.com/dmitrijs2005/dreamias/internal/dbx"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT email, username, target_year, password_hash, salt, created_at, avatar_url
		FROM users WHERE email = ? LIMIT 1`

	var (
		u         models.User
		createdAt int64
		avatar    sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&u.Email, &u.Username, &u.TargetYear, &u.PasswordHash, &u.Salt, &createdAt, &avatar,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user[%s]: %w", email, err)
	}

	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	if avatar.Valid {
		u.AvatarURL = &avatar.String
	}
	return &u, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, u *models.User) error {
	const q = `
		INSERT INTO users (email, username, target_year, password_hash, salt, created_at, avatar_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		u.Email, u.Username, u.TargetYear, u.PasswordHash, u.Salt, u.CreatedAt.UnixMilli(), nullString(u.AvatarURL),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("failed to insert user[%s]: %w", u.Email, err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateProfile(ctx context.Context, email, username string, targetYear int, avatarURL *string) error {
	const q = `UPDATE users SET username = ?, target_year = ?, avatar_url = ? WHERE email = ?`

	res, err := r.db.ExecContext(ctx, q, username, targetYear, nullString(avatarURL), email)
	if err != nil {
		return fmt.Errorf("failed to update user[%s]: %w", email, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user[%s]: %w", email, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email)
	if err != nil {
		return fmt.Errorf("failed to delete user[%s]: %w", email, err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
