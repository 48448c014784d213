package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dreamias/internal/client/services"
	"github.com/dmitrijs2005/dreamias/internal/common"
)

// getSimpleText, getPassword and getYear are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getYear       = GetYear
)

// Register prompts for email, name, target year and password and creates the
// account. On success the new account is signed in.
//
// The password byte slice is wiped before returning. Service errors are
// printed as their user-facing message and returned unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	year, err := getYear(a.reader, yearPrompt(), 0, a.out)
	if err != nil {
		return a.fail(err)
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, email, name, year, password); err != nil {
		return a.fail(err)
	}

	a.printf("Welcome, %s!\n", strings.TrimSpace(name))
	return nil
}

// Login prompts for credentials and signs in. A failed attempt keeps any
// existing session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return a.fail(err)
	}

	a.printf("Signed in as %s\n", a.authService.State().CurrentUserEmail)
	return nil
}

// Logout ends the current session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Not signed in\n")
		return nil
	}
	a.authService.Logout(ctx)
	a.printf("Signed out\n")
	return nil
}

// fail prints err as the user sees it, clears the service error and returns err.
func (a *App) fail(err error) error {
	a.printf("Error: %s\n", err.Error())
	a.authService.ClearError()
	return err
}

func yearPrompt() string {
	return fmt.Sprintf("Target year (%d-%d)", services.MinTargetYear, services.MaxTargetYear)
}
