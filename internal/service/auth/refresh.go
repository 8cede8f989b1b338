package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/insight-backend/internal/auth"
	"github.com/heartmarshall/insight-backend/internal/domain"
)

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked in the same transaction that stores its replacement, so a token
// can be exchanged at most once.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *AuthResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		token, err := s.tokens.GetByHash(ctx, auth.HashToken(input.RefreshToken))
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.log.WarnContext(ctx, "unknown or rotated refresh token presented")
			return domain.ErrUnauthorized
		case err != nil:
			return fmt.Errorf("get token: %w", err)
		case !token.Active(time.Now()):
			return domain.ErrUnauthorized
		}

		user, err := s.users.GetByID(ctx, token.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh token of a deleted user",
				slog.String("user_id", token.UserID.String()))
			return domain.ErrUnauthorized
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		if err := s.tokens.RevokeByID(ctx, token.ID); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
		result, err = s.issueTokens(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}
	return result, nil
}
