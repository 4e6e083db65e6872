package services

import (
	"context"
	"fmt"

	"storysync/internal/client/gateway"
	"storysync/internal/client/session"
	"storysync/internal/logging"
)

// AuthService wraps account operations and keeps the persisted session in
// step with them.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (*gateway.LoginResult, error)
	Logout(ctx context.Context) error
	Authenticated() bool
}

type authService struct {
	gw      gateway.Client
	session *session.Session
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given gateway and
// session.
func NewAuthService(gw gateway.Client, sess *session.Session, log logging.Logger) AuthService {
	return &authService{gw: gw, session: sess, log: log}
}

func (a *authService) Register(ctx context.Context, name, email, password string) error {
	return a.gw.Register(ctx, name, email, password)
}

func (a *authService) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	res, err := a.gw.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.session.SetToken(res.Token); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	a.log.Info(ctx, "logged in", "name", res.Name)
	return res, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) Authenticated() bool {
	return a.session.Authenticated()
}
