package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/secure_notes/internal/hash"
	"github.com/Skotchmaster/secure_notes/internal/logging"
	"github.com/Skotchmaster/secure_notes/internal/models"
	"github.com/Skotchmaster/secure_notes/internal/mykafka"
	"github.com/Skotchmaster/secure_notes/internal/repo"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password, so
// a login failure never reveals whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	Repo     *repo.GormRepo
	Tokens   *TokenService
	Producer *mykafka.Producer
}

func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, repo.ErrEmailTaken
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	l.Info("user_created", "user_id", user.ID)
	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
	})

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.Tokens.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
	})

	return pair, nil
}

// Refresh exchanges a valid refresh token for a brand new pair. There is no
// revocation store: the old refresh token stays usable until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.Tokens.DecodeRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return s.Tokens.IssuePair(user.ID)
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
