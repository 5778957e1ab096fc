package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cropcare/internal/client/models"
	"github.com/dmitrijs2005/cropcare/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for profile fields and a password and creates the
// account, which also logs it in. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	labels := []string{
		"Enter email",
		"Enter full name",
		"Enter phone (optional)",
		"Enter location (optional)",
		"Enter farm size (optional)",
		"Enter crop types, comma separated (optional)",
	}
	answers := make([]string, len(labels))
	for i, label := range labels {
		v, err := getSimpleText(a.reader, label, a.out)
		if err != nil {
			return err
		}
		answers[i] = v
	}

	profile := models.Profile{
		Email:     answers[0],
		Name:      answers[1],
		Phone:     answers[2],
		Location:  answers[3],
		FarmSize:  answers[4],
		CropTypes: models.SplitList(answers[5]),
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.session.Register(ctx, profile, password)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Account created. Welcome, %s!", acc.Name))
	return nil
}

// Login prompts for credentials and starts a session.
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

	acc, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", acc.Name))
	return nil
}

// Logout ends the session. It succeeds when nobody is logged in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the current profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		return common.ErrNoActiveSession
	}
	printlnFn(formatAccount(u))
	return nil
}
