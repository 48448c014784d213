package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/dreamias/internal/client/migrations"
	"github.com/dmitrijs2005/dreamias/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/dreamias/internal/client/repositories/users"

	_ "modernc.org/sqlite"
)

type Database struct {
	DB    *sql.DB
	Users users.Repository
	Prefs prefs.Repository
}

// Close closes the underlying handle.
func (d *Database) Close() error {
	return d.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
// A plain file path gets a busy timeout so concurrent writers wait instead
// of failing with SQLITE_BUSY.
func Open(ctx context.Context, dsn string) (*Database, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps in-memory
	// databases from splitting across connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Database{
		DB:    db,
		Users: users.NewSQLiteRepository(db),
		Prefs: prefs.NewSQLiteRepository(db),
	}, nil
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_pragma=busy_timeout(5000)"
}
