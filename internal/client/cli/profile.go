package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dreamias/internal/common"
)

const removeAvatar = "-"

// Profile prints the signed-in account.
func (a *App) Profile(ctx context.Context) error {
	st := a.authService.State()
	if !st.IsAuthenticated {
		a.printf("Not signed in\n")
		return nil
	}

	a.printf("Email:        %s\n", st.CurrentUserEmail)
	a.printf("Name:         %s\n", st.CurrentUserName)
	a.printf("Target year:  %d\n", st.TargetYear)
	if !st.CreatedAt.IsZero() {
		a.printf("Member since: %s\n", st.CreatedAt.Local().Format("2006-01-02"))
	}
	if st.AvatarURL != "" {
		a.printf("Avatar:       %s\n", st.AvatarURL)
	}
	return nil
}

// EditProfile prompts for a new name, target year and avatar image.
// Empty answers keep the current values; "-" as the avatar path removes it.
func (a *App) EditProfile(ctx context.Context) error {
	st := a.authService.State()
	if !st.IsAuthenticated {
		a.printf("Please sign in first\n")
		return common.ErrorUnauthorized
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", st.CurrentUserName), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = st.CurrentUserName
	}

	year, err := getYear(a.reader, fmt.Sprintf("%s [%d]", yearPrompt(), st.TargetYear), st.TargetYear, a.out)
	if err != nil {
		return a.fail(err)
	}

	path, err := getSimpleText(a.reader, "Avatar image path (empty keeps current, - removes)", a.out)
	if err != nil {
		return err
	}

	var avatar *string
	switch path {
	case "":
		if st.AvatarURL != "" {
			current := st.AvatarURL
			avatar = &current
		}
	case removeAvatar:
	default:
		ref, err := a.avatars.Save(st.CurrentUserEmail, path)
		if err != nil {
			a.log.Warn(ctx, "save avatar", "path", path, "error", err)
			return a.fail(fmt.Errorf("unable to use image %s", path))
		}
		avatar = &ref
	}

	err = a.authService.UpdateProfile(ctx, st.CurrentUserEmail, name, year, avatar)

	if msg := a.authService.State().ProfileMessage; msg != "" {
		a.printf("%s\n", msg)
	}
	a.authService.ClearProfileMessage()
	return err
}
