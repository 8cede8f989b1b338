package auth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/insight-backend/internal/domain"
)

const resetSubject = "PASSWORD RESET LINK REQUEST: Jumper Media"

// RequestPasswordReset mails a reset link to a known address. Delivery
// failures are logged and do not fail the request.
func (s *Service) RequestPasswordReset(ctx context.Context, input ResetRequestInput) error {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return fmt.Errorf("auth.RequestPasswordReset get user: %w", err)
	}

	token, err := s.jwt.GenerateResetToken(user.Email)
	if err != nil {
		return fmt.Errorf("auth.RequestPasswordReset generate token: %w", err)
	}

	link := s.resetLink(token)
	body := fmt.Sprintf(`<p>Password Reset Link:</p><p><a href="%s">%s</a></p>`,
		html.EscapeString(link), html.EscapeString(link))

	if err := s.mail.Send(ctx, user.Email, resetSubject, body); err != nil {
		s.log.ErrorContext(ctx, "password reset email not sent",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return nil
	}

	s.log.InfoContext(ctx, "password reset email sent",
		slog.String("user_id", user.ID.String()))
	return nil
}

func (s *Service) resetLink(token string) string {
	return strings.TrimRight(s.cfg.ResetURLBase, "/") + "/reset/password?token=" + url.QueryEscape(token)
}

// ResetPassword replaces the password of the user a reset token was issued
// for and revokes all of that user's refresh tokens.
func (s *Service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	email, err := s.jwt.ValidateResetToken(input.Token)
	if err != nil {
		s.log.WarnContext(ctx, "invalid password reset token", slog.String("error", err.Error()))
		return domain.NewValidationError("token", "invalid or expired")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword hash password: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.UpdatePassword(txCtx, user.Email, string(hash)); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if err := s.tokens.RevokeAllByUser(txCtx, user.ID); err != nil {
			return fmt.Errorf("revoke tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("auth.ResetPassword: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("auth.ResetPassword: %w", err)
	}

	s.log.InfoContext(ctx, "password reset", slog.String("user_id", user.ID.String()))
	return nil
}
