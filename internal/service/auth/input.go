package auth

import (
	"net/mail"

	"github.com/heartmarshall/insight-backend/internal/domain"
)

// RegisterInput holds parameters for password registration.
type RegisterInput struct {
	Username         string
	Email            string
	Password         string
	PhoneNumber      *string
	Address          *string
	SecurityQuestion *string
	SecurityAnswer   *string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	} else if len(i.Username) > 50 {
		errs = append(errs, domain.FieldError{Field: "username", Message: "too long"})
	}

	errs = appendEmailErrors(errs, i.Email)
	errs = appendPasswordErrors(errs, "password", i.Password)

	if i.PhoneNumber != nil && len(*i.PhoneNumber) > 15 {
		errs = append(errs, domain.FieldError{Field: "phone_number", Message: "too long"})
	}
	if i.Address != nil && len(*i.Address) > 255 {
		errs = append(errs, domain.FieldError{Field: "address", Message: "too long"})
	}
	if i.SecurityQuestion != nil && len(*i.SecurityQuestion) > 255 {
		errs = append(errs, domain.FieldError{Field: "security_question", Message: "too long"})
	}
	if i.SecurityAnswer != nil && len(*i.SecurityAnswer) > 255 {
		errs = append(errs, domain.FieldError{Field: "security_answer", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginPasswordInput holds parameters for email + password login.
type LoginPasswordInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginPasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.RefreshToken == "" {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "required"})
	} else if len(i.RefreshToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ResetRequestInput holds the email a reset link is requested for.
type ResetRequestInput struct {
	Email string
}

// Validate validates the reset request input.
func (i ResetRequestInput) Validate() error {
	if errs := appendEmailErrors(nil, i.Email); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ResetPasswordInput holds a reset token and the replacement password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// Validate validates the reset password input.
func (i ResetPasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.Token == "" {
		errs = append(errs, domain.FieldError{Field: "token", Message: "required"})
	} else if len(i.Token) > 4096 {
		errs = append(errs, domain.FieldError{Field: "token", Message: "too long"})
	}
	errs = appendPasswordErrors(errs, "new_password", i.NewPassword)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendEmailErrors(errs []domain.FieldError, email string) []domain.FieldError {
	switch {
	case email == "":
		return append(errs, domain.FieldError{Field: "email", Message: "required"})
	case len(email) > 100:
		return append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}
	return errs
}

// bcrypt ignores input past 72 bytes.
func appendPasswordErrors(errs []domain.FieldError, field, password string) []domain.FieldError {
	switch {
	case password == "":
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	case len(password) < 8:
		return append(errs, domain.FieldError{Field: field, Message: "too short"})
	case len(password) > 72:
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}
