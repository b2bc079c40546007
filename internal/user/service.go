package user

import (
	"context"

	"github.com/berkaynayman/qr-menu/internal/logger"
	"go.uber.org/zap"
)

// Client is the slice of the backend API this package needs. Satisfied
// by the REST client.
type Client interface {
	Register(ctx context.Context, params RegisterParams) (string, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	Profile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
}

type Service interface {
	Register(ctx context.Context, params RegisterParams) (string, error)
	Login(ctx context.Context, email, password string) (Session, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams, passwordConfirm string) (*Profile, error)
}

type service struct {
	client Client
	store  *Store
}

func NewService(client Client, store *Store) Service {
	return &service{client: client, store: store}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", params.Email),
	)

	if params.Email == "" {
		log.Warn("registration rejected", zap.Error(ErrEmailRequired))
		return "", ErrEmailRequired
	}

	msg, err := s.client.Register(ctx, params)
	if err != nil {
		log.Error("registration failed", zap.Error(err))
		return "", err
	}

	log.Info("registration completed")
	return msg, nil
}

// Login exchanges credentials for a session and persists it. A failed
// login leaves the store untouched: no token is written and the caller
// stays logged out.
func (s *service) Login(ctx context.Context, email, password string) (Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("email", email),
	)

	token, u, err := s.client.Login(ctx, email, password)
	if err != nil {
		log.Warn("login failed", zap.Error(err))
		return Session{}, err
	}

	if err := s.store.SetSession(u, token); err != nil {
		log.Error("failed to persist credentials", zap.Error(err))
		return Session{}, err
	}

	log.Info("login completed", zap.String("user_id", u.ID))
	return s.store.Snapshot(), nil
}

func (s *service) Logout(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Logout"),
	)

	if err := s.store.Clear(); err != nil {
		log.Error("failed to clear credentials", zap.Error(err))
		return err
	}

	log.Info("logged out")
	return nil
}

func (s *service) Profile(ctx context.Context) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Profile"),
	)

	p, err := s.client.Profile(ctx)
	if err != nil {
		log.Error("failed to fetch profile", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// UpdateProfile checks the password confirmation locally before the
// REST call; a mismatch never reaches the network.
func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams, passwordConfirm string) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProfile"),
	)

	if params.Password != nil && *params.Password != passwordConfirm {
		log.Warn("profile update rejected", zap.Error(ErrPasswordMismatch))
		return nil, ErrPasswordMismatch
	}

	p, err := s.client.UpdateProfile(ctx, params)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile updated")
	return p, nil
}
