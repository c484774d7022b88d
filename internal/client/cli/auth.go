package cli

import (
	"context"
	"fmt"

	"github.com/bookgenie/bookgenie-cli/internal/client/session"
	"github.com/bookgenie/bookgenie-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create a new account.
// A successful registration signs the user in immediately; the password byte
// slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}
	academicLevel, err := getSimpleText(a.reader, "Enter academic level (e.g. undergraduate)", a.out)
	if err != nil {
		return err
	}

	user, err := a.session.Register(ctx, session.Registration{
		Email:         email,
		Password:      string(password),
		FirstName:     firstName,
		LastName:      lastName,
		AcademicLevel: academicLevel,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
	a.syncRole(ctx)
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// token is persisted and the tab set is re-gated for the signed-in role.
// The password is wiped before returning.
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

	user, err := a.session.Login(ctx, session.Credentials{
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
	a.syncRole(ctx)
	return nil
}

// Logout discards the session locally. No server round trip is made.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	a.syncRole(ctx)
	return nil
}

// WhoAmI prints the cached identity and session status.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintf(a.out, "Not signed in (%s)\n", a.session.Status())
		return nil
	}
	fmt.Fprintf(a.out, "%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
	fmt.Fprintf(a.out, "Role: %s, subscription: %s\n", u.Role, u.SubscriptionLevel)
	return nil
}

// syncRole re-gates the tab set after a sign-in or sign-out.
func (a *App) syncRole(ctx context.Context) {
	if a.router != nil {
		a.router.SetRole(ctx, a.currentRole())
	}
}
