package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the JWT payload issued after a verified magic link or a
// demo sign-in.
type SessionClaims struct {
	Email string `json:"email"`
	Demo  bool   `json:"demo"`
	jwt.RegisteredClaims
}

// MagicLinkToken is a single-use sign-in token. Only a bcrypt hash of the
// secret half is stored.
type MagicLinkToken struct {
	ID         string
	Email      string
	SecretHash []byte
	ExpiresAt  time.Time
}

// RequestLinkRequest is the magic-link initiation payload.
type RequestLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyLinkRequest exchanges an emailed token for a session.
type VerifyLinkRequest struct {
	Token string `json:"token" validate:"required"`
}

// SessionResponse carries an issued session token.
type SessionResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email,omitempty"`
	Demo      bool      `json:"demo"`
	ExpiresAt time.Time `json:"expires_at"`
}
