package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/dreamias/internal/client/avatars"
	"github.com/dmitrijs2005/dreamias/internal/client/config"
	"github.com/dmitrijs2005/dreamias/internal/client/services"
	"github.com/dmitrijs2005/dreamias/internal/client/session"
	"github.com/dmitrijs2005/dreamias/internal/client/storage"
	"github.com/dmitrijs2005/dreamias/internal/filex"
	"github.com/dmitrijs2005/dreamias/internal/logging"
)

// authService is the part of services.AuthService the CLI drives.
type authService interface {
	Register(ctx context.Context, email, username string, targetYear int, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, email, username string, targetYear int, avatarURL *string) error
	State() services.AuthState
	Subscribe(ctx context.Context) <-chan services.AuthState
	Run(ctx context.Context)
	ClearError()
	ClearProfileMessage()
}

type avatarStore interface {
	Save(email, srcPath string) (string, error)
}

type App struct {
	config      *config.Config
	db          *storage.Database
	authService authService
	avatars     avatarStore
	log         logging.Logger
	reader      *bufio.Reader

	mu  sync.Mutex
	out io.Writer
}

// NewApp opens the local database under cfg and wires the services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.DBPath()
	if _, err := filex.EnsureDir(filepath.Dir(dbPath), ""); err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		return nil, err
	}

	sessions, err := session.NewStore(ctx, db.Prefs)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	av, err := avatars.NewStore(cfg.DataDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:      cfg,
		db:          db,
		authService: services.NewAuthService(db.DB, sessions, log),
		avatars:     av,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run starts the REPL and closes the database when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.log.Error(ctx, "close database", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.State().IsAuthenticated
}

// printf writes to the user. It is safe to call from the state watcher.
func (a *App) printf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}
