package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated dashboard user.
type User struct {
	ID               uuid.UUID `db:"id"`
	Email            string    `db:"email"`
	Username         string    `db:"username"`
	PasswordHash     string    `db:"password_hash"`
	PhoneNumber      *string   `db:"phone_number"`
	Address          *string   `db:"address"`
	SecurityQuestion *string   `db:"security_question"`
	SecurityAnswer   *string   `db:"security_answer"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// Active reports whether the token can still be exchanged at now: it has
// not been revoked and its expiry lies strictly after now.
func (t *RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
