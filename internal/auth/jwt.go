package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token purposes carried in the "purpose" claim.
const (
	PurposeAccess        = "access"
	PurposePasswordReset = "password_reset"
)

// ErrWrongPurpose is returned when a token is valid but was issued for another use.
var ErrWrongPurpose = errors.New("token issued for another purpose")

// JWTManager handles JWT access and password-reset token generation and
// validation, plus refresh token generation and hashing.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	resetTTL  time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL, resetTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		resetTTL:  resetTTL,
	}
}

type claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// GenerateAccessToken creates a signed HS256 JWT with user ID as subject.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.sign(userID.String(), PurposeAccess, m.accessTTL)
}

// ValidateAccessToken parses and validates a JWT access token and returns
// the user ID. Reset tokens are rejected with ErrWrongPurpose.
func (m *JWTManager) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	subject, err := m.parse(tokenString, PurposeAccess)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject UUID: %w", err)
	}
	return userID, nil
}

// GenerateResetToken creates a short-lived password reset token for email.
func (m *JWTManager) GenerateResetToken(email string) (string, error) {
	return m.sign(email, PurposePasswordReset, m.resetTTL)
}

// ValidateResetToken validates a password reset token and returns the email
// it was issued for.
func (m *JWTManager) ValidateResetToken(tokenString string) (string, error) {
	return m.parse(tokenString, PurposePasswordReset)
}

func (m *JWTManager) sign(subject, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Purpose: purpose,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) parse(tokenString, purpose string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if c.Purpose != purpose {
		return "", ErrWrongPurpose
	}
	if c.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return c.Subject, nil
}

// GenerateRefreshToken creates a cryptographically random refresh token.
// Returns both the raw token (to send to client) and its SHA-256 hash (to store in DB).
func (m *JWTManager) GenerateRefreshToken() (raw string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate random bytes: %w", err)
	}

	raw = base64.RawURLEncoding.EncodeToString(b)
	return raw, HashToken(raw), nil
}

// HashToken computes the SHA-256 hash of a token and returns it as a hex string.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
