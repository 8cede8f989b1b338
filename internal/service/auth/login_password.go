package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/insight-backend/internal/domain"
)

// LoginWithPassword issues a token pair for the account registered under
// input.Email. An unknown address and a wrong password both yield
// ErrUnauthorized so callers cannot probe for accounts.
func (s *Service) LoginWithPassword(ctx context.Context, input LoginPasswordInput) (*AuthResult, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.checkCredentials(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithPassword issue tokens: %w", err)
	}
	s.log.InfoContext(ctx, "login", slog.String("user_id", user.ID.String()))
	return result, nil
}

func (s *Service) checkCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.log.WarnContext(ctx, "login failed", slog.String("reason", "unknown email"))
		return nil, domain.ErrUnauthorized
	case err != nil:
		return nil, fmt.Errorf("auth.LoginWithPassword get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.WarnContext(ctx, "login failed",
			slog.String("reason", "wrong password"),
			slog.String("user_id", user.ID.String()))
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
