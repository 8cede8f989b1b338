package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/insight-backend/internal/domain"
)

// Register creates an account and signs it in. The user row and its first
// refresh token are written in one transaction. A taken email or username
// is ErrAlreadyExists; the unique constraints decide, not a pre-check.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	input.Username = domain.NormalizeName(input.Username)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}
	now := time.Now()
	candidate := &domain.User{
		ID:               uuid.New(),
		Email:            input.Email,
		Username:         input.Username,
		PasswordHash:     string(hash),
		PhoneNumber:      input.PhoneNumber,
		Address:          input.Address,
		SecurityQuestion: input.SecurityQuestion,
		SecurityAnswer:   input.SecurityAnswer,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var result *AuthResult
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		user, err := s.users.Create(ctx, candidate)
		if err != nil {
			return err
		}
		result, err = s.issueTokens(ctx, user)
		return err
	})
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		s.log.InfoContext(ctx, "registration rejected", slog.String("reason", "duplicate"))
		return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
	case err != nil:
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", result.User.ID.String()))
	return result, nil
}
