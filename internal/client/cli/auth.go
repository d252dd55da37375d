package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/lawlink/internal/client/api"
	"github.com/dmitrijs2005/lawlink/internal/client/models"
	"github.com/dmitrijs2005/lawlink/internal/client/services"
	"github.com/dmitrijs2005/lawlink/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// parseRole normalizes the free-form account type answer. Unrecognized
// input is passed through so validation can report it.
func parseRole(s string) models.Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client":
		return models.RoleClient
	case "lawyer":
		return models.RoleLawyer
	default:
		return models.Role(s)
	}
}

// Register prompts for the registration form and creates an account.
// Lawyer accounts are asked for the extra professional fields. On success
// the user is told to confirm the account with the emailed one-time code.
func (a *App) Register(ctx context.Context) error {
	role, err := getSimpleText(a.reader, "Account type: Client or Lawyer", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p := services.RegisterParams{
		Username: username,
		Email:    email,
		Password: string(password),
		Role:     parseRole(role),
	}

	if p.Role == models.RoleLawyer {
		if p.PhoneNumber, err = getSimpleText(a.reader, "Enter phone number", os.Stdout); err != nil {
			return err
		}
		if p.Address, err = getSimpleText(a.reader, "Enter address", os.Stdout); err != nil {
			return err
		}
		if p.BarRegistrationNumber, err = getSimpleText(a.reader, "Enter bar registration number", os.Stdout); err != nil {
			return err
		}
	}

	confirmEmail, err := a.sessions.Register(ctx, p)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Registered. A verification code was sent to %s; run 'verify' to confirm.\n", confirmEmail)
	return nil
}

// Login prompts for credentials and authenticates. On success the prompt
// reflects the signed-in identity and role-specific commands unlock.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	identity, err := a.sessions.Login(ctx, email, string(password))
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Welcome, %s (%s)\n", identity.Username, identity.Role)
	return nil
}

// VerifyOTP prompts for the emailed one-time code and activates the account.
// A confirmed account still has to login afterwards.
func (a *App) VerifyOTP(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.sessions.VerifyOTP(ctx, email, code); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Println("Account verified. You can login now.")
	return nil
}

// ResendOTP requests a new one-time code, honoring the client-side cooldown.
func (a *App) ResendOTP(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.sessions.ResendOTP(ctx, email); err != nil {
		if errors.Is(err, services.ErrResendCooldown) {
			fmt.Println(err.Error())
		} else {
			fmt.Println(api.ErrorMessage(err))
		}
		return err
	}

	fmt.Println("A new verification code was sent.")
	return nil
}

// Logout clears the persisted session and returns the REPL to the
// unauthenticated command set.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}
	fmt.Println("Logged out")
	return nil
}
