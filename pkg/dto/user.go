package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate represents the data needed to register a new user.
type UserCreate struct {
	DNI      string
	Username string
	Email    string
	Password string
}

// UserUpdate represents the fields that can change after registration.
// Nil fields are left untouched.
type UserUpdate struct {
	DNI      *string
	Username *string
	Email    *string
	Password *string
}

// UserRead is a read-optimized view of a user. The credential hash is
// deliberately not copied into it.
type UserRead struct {
	ID        uuid.UUID `json:"id"`
	DNI       string    `json:"dni"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
