// Package services contains the hikelog client use cases. Each service
// validates its input, issues one backend call through client.Client and,
// for auth, keeps the session store in step with the result.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hikelog/internal/client/client"
	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/dmitrijs2005/hikelog/internal/client/validate"
)

// ErrNotSignedIn is returned by RestoreSession when there is no usable
// session.
var ErrNotSignedIn = errors.New("not signed in")

// SessionStore is the part of *session.Store the auth service drives.
type SessionStore interface {
	Save(ctx context.Context, token string, u *models.User) error
	SetUser(ctx context.Context, u *models.User) error
	GetToken(ctx context.Context) (string, bool)
	GetUser(ctx context.Context) (*models.User, bool)
	ClearAll(ctx context.Context) error
	IsExpired(token string) bool
}

// AuthService defines the account operations.
//
// Contract:
//   - Register, Login: create or open a session; the token and user are
//     stored together on success.
//   - Logout: clear the stored session; safe to call when signed out.
//   - RestoreSession: startup check; an expired token is cleared.
//   - Profile, UpdateProfile: keep the cached user current.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, bool)
	Profile(ctx context.Context) (*models.User, error)
	PublicProfile(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (string, error)
}

type authService struct {
	client  client.Client
	session SessionStore
}

func NewAuthService(client client.Client, session SessionStore) AuthService {
	return &authService{client: client, session: session}
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	resp, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.open(ctx, resp)
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	resp, err := a.client.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.open(ctx, resp)
}

// open stores the session carried by an auth response.
func (a *authService) open(ctx context.Context, resp *models.AuthResponse) (*models.User, error) {
	if resp.Token == "" || resp.User == nil {
		return nil, &gateway.Error{Kind: gateway.KindUnexpected, Message: "auth response without token or user"}
	}
	if err := a.session.Save(ctx, resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return resp.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.ClearAll(ctx)
}

// RestoreSession returns the signed-in user, or ErrNotSignedIn. A missing
// cached user is fetched from the backend.
func (a *authService) RestoreSession(ctx context.Context) (*models.User, error) {
	token, ok := a.session.GetToken(ctx)
	if !ok {
		return nil, ErrNotSignedIn
	}
	if a.session.IsExpired(token) {
		if err := a.session.ClearAll(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNotSignedIn
	}

	if u, ok := a.session.GetUser(ctx); ok {
		return u, nil
	}

	u, err := a.Profile(ctx)
	if errors.Is(err, gateway.ErrUnauthorized) {
		return nil, ErrNotSignedIn
	}
	return u, err
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, bool) {
	if _, ok := a.session.GetToken(ctx); !ok {
		return nil, false
	}
	return a.session.GetUser(ctx)
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	u, err := a.client.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.session.SetUser(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return u, nil
}

func (a *authService) PublicProfile(ctx context.Context, username string) (*models.User, error) {
	if err := validate.Struct(usernameParam{Username: username}); err != nil {
		return nil, err
	}
	return a.client.PublicProfile(ctx, username)
}

// UpdateProfile applies req and returns the refreshed profile.
func (a *authService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	if req.Email == "" && req.Phone == "" && req.Avatar == nil {
		return nil, nothingToUpdate()
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := a.client.UpdateProfile(ctx, req); err != nil {
		return nil, err
	}
	return a.Profile(ctx)
}

func (a *authService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	resp, err := a.client.ChangePassword(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
