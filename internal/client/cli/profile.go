package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bookgenie/bookgenie-cli/internal/client/models"
	"github.com/bookgenie/bookgenie-cli/internal/client/resources"
)

// Profile fetches and prints the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.profile.Get(ctx, a.token())
	if err != nil {
		a.fail("Fetching profile failed", err)
		return err
	}

	fmt.Fprintf(a.out, "%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
	fmt.Fprintf(a.out, "Subscription: %s\n", u.SubscriptionLevel)
	if u.AcademicLevel != "" {
		fmt.Fprintf(a.out, "Academic level: %s\n", u.AcademicLevel)
	}
	if u.Department != "" {
		fmt.Fprintf(a.out, "Department: %s\n", u.Department)
	}
	if u.Avatar != "" {
		fmt.Fprintf(a.out, "Avatar: %s\n", u.Avatar)
	}
	return nil
}

// EditProfile updates the profile, blank prompts keeping current values.
// The cached session identity is refreshed afterwards so the prompt and
// dashboard reflect the change immediately.
func (a *App) EditProfile(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		u = &models.User{}
	}

	firstName, err := GetSimpleText(a.reader, prompt("Enter first name", u.FirstName), a.out)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(a.reader, prompt("Enter last name", u.LastName), a.out)
	if err != nil {
		return err
	}
	academicLevel, err := GetSimpleText(a.reader, prompt("Enter academic level", u.AcademicLevel), a.out)
	if err != nil {
		return err
	}
	department, err := GetSimpleText(a.reader, prompt("Enter department", u.Department), a.out)
	if err != nil {
		return err
	}

	form := resources.ProfileForm{
		FirstName:     orKeep(firstName, u.FirstName),
		LastName:      orKeep(lastName, u.LastName),
		AcademicLevel: orKeep(academicLevel, u.AcademicLevel),
		Department:    orKeep(department, u.Department),
	}

	if _, err := a.profile.Update(ctx, form, a.token()); err != nil {
		a.fail("Updating profile failed", err)
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")

	if _, err := a.session.RefreshUser(ctx); err != nil {
		a.log.Warn(ctx, "refreshing cached identity", "error", err)
	}
	return nil
}

// UploadAvatar replaces the profile picture with the given image file.
func (a *App) UploadAvatar(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		a.fail("Opening file failed", err)
		return err
	}
	defer f.Close()

	if _, err := a.profile.UploadAvatar(ctx, filepath.Base(path), f, a.token()); err != nil {
		a.fail("Uploading avatar failed", err)
		return err
	}
	fmt.Fprintln(a.out, "Avatar updated.")

	if _, err := a.session.RefreshUser(ctx); err != nil {
		a.log.Warn(ctx, "refreshing cached identity", "error", err)
	}
	return nil
}

// RemoveAvatar deletes the profile picture.
func (a *App) RemoveAvatar(ctx context.Context) error {
	if _, err := a.profile.DeleteAvatar(ctx, a.token()); err != nil {
		a.fail("Removing avatar failed", err)
		return err
	}
	fmt.Fprintln(a.out, "Avatar removed.")

	if _, err := a.session.RefreshUser(ctx); err != nil {
		a.log.Warn(ctx, "refreshing cached identity", "error", err)
	}
	return nil
}

// Upgrade files a subscription upgrade request for the signed-in user.
func (a *App) Upgrade(ctx context.Context, level string) error {
	if _, err := a.requests.RequestUpgrade(ctx, models.SubscriptionLevel(level), a.token()); err != nil {
		a.fail("Requesting upgrade failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Upgrade to %s requested. An administrator will review it.\n", level)
	return nil
}
