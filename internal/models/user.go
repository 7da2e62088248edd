package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User mirrors the profile the identity provider hands us on sign-in.
// UID is the provider's opaque, stable key; it is the owner key for all
// cart operations.
type User struct {
	ID        uuid.UUID `json:"id"`
	UID       string    `json:"uid" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SyncUserRequest carries the provider profile after a Google/Facebook
// sign-in. Token verification happens upstream; we trust the shape here.
type SyncUserRequest struct {
	UID      string `json:"uid" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

type SessionResponse struct {
	Success    bool   `json:"success"`
	Token      string `json:"token,omitempty"`
	ExpiresIn  int    `json:"expires_in,omitempty"`
	User       *User  `json:"user,omitempty"`
	RetryAfter int    `json:"retry_after,omitempty"`
	Message    string `json:"message,omitempty"`
}

// JWT claims for the session token minted after profile sync.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}
