package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/dreamias/internal/client/services"
)

func (a *App) getStatus() string {
	st := a.authService.State()
	if !st.IsAuthenticated || st.CurrentUserEmail == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", st.CurrentUserEmail)
}

// Root starts session tracking, reports the restored session and runs the
// REPL until the user exits. Background goroutines are stopped before it
// returns.
func (a *App) Root(ctx context.Context) {
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.printf("Welcome to Dream IAS Elite (type 'help' for commands)\n")

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.authService.Run(ctx)
	}()

	st := a.waitLoaded(ctx)
	if st.ErrorMessage != "" {
		a.printf("%s\n", st.ErrorMessage)
		a.authService.ClearError()
	}
	if st.IsAuthenticated {
		a.printf("Signed in as %s\n", st.CurrentUserEmail)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.watchState(ctx)
	}()

	runREPL(ctx, a, a.getStatus, a.reader)
}

// waitLoaded blocks until the first session read has finished.
func (a *App) waitLoaded(ctx context.Context) services.AuthState {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for st := range a.authService.Subscribe(ctx) {
		if !st.IsLoading {
			return st
		}
	}
	return a.authService.State()
}

// watchState reports sign-outs the user did not ask for, such as a session
// whose account disappeared.
func (a *App) watchState(ctx context.Context) {
	prev := a.authService.State()
	for next := range a.authService.Subscribe(ctx) {
		if msg := describeTransition(prev, next); msg != "" {
			a.printf("%s\n", msg)
		}
		prev = next
	}
}

func describeTransition(prev, next services.AuthState) string {
	if prev.IsAuthenticated && !next.IsAuthenticated && next.ErrorMessage != "" {
		return next.ErrorMessage
	}
	return ""
}
