package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hikelog/internal/client/models"
)

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) askSecret(prompt string) (string, error) {
	return GetPassword(a.reader, prompt, a.out)
}

// askFile reads an optional local path; empty means no file.
func (a *App) askFile(prompt string) (*models.File, error) {
	path, err := a.ask(prompt + " (path, empty to skip)")
	if err != nil || path == "" {
		return nil, err
	}
	return &models.File{URI: path}, nil
}

// Register prompts for a new account and signs in with it.
func (a *App) Register(ctx context.Context, _ []string) error {
	var req models.RegisterRequest
	var err error

	if req.Username, err = a.ask("Username"); err != nil {
		return err
	}
	if req.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if req.Password, err = a.askSecret("Password"); err != nil {
		return err
	}
	if req.Phone, err = a.ask("Phone (optional)"); err != nil {
		return err
	}
	if req.Avatar, err = a.askFile("Avatar"); err != nil {
		return err
	}

	u, err := a.auth.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Username)
	return nil
}

// Login accepts either an email or a username as the identifier.
func (a *App) Login(ctx context.Context, _ []string) error {
	id, err := a.ask("Email or username")
	if err != nil {
		return err
	}
	password, err := a.askSecret("Password")
	if err != nil {
		return err
	}

	req := models.LoginRequest{Password: password}
	if strings.Contains(id, "@") {
		req.Email = id
	} else {
		req.Username = id
	}

	u, err := a.auth.Login(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", u.Username)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// WhoAmI fetches the profile of the signed-in user from the backend.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

func (a *App) PublicProfile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fieldError("username", "exactly one username is required")
	}
	u, err := a.auth.PublicProfile(ctx, args[0])
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

// EditProfile updates email, phone and avatar; empty answers keep the
// current value.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	var req models.UpdateProfileRequest
	var err error

	if req.Email, err = a.ask("New email (empty to keep)"); err != nil {
		return err
	}
	if req.Phone, err = a.ask("New phone (empty to keep)"); err != nil {
		return err
	}
	if req.Avatar, err = a.askFile("New avatar"); err != nil {
		return err
	}

	u, err := a.auth.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	printUser(a.out, u)
	return nil
}

func (a *App) ChangePassword(ctx context.Context, _ []string) error {
	var req models.ChangePasswordRequest
	var err error

	if req.OldPassword, err = a.askSecret("Current password"); err != nil {
		return err
	}
	if req.NewPassword, err = a.askSecret("New password"); err != nil {
		return err
	}
	if req.ConfirmPassword, err = a.askSecret("Repeat new password"); err != nil {
		return err
	}

	msg, err := a.auth.ChangePassword(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
