// Package user holds the user entity owning bank accounts.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/utils"
)

// Entity labels used in not-found errors.
const (
	Entity          = "Usuario"
	EntityForUpdate = "Usuario para actualizar"
)

// User represents a registered customer. DNI, username and email are
// unique; Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        uuid.UUID
	DNI       string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a User with a hashed password and current timestamps.
func New(dni, username, email, password string) (*User, error) {
	if dni == "" {
		return nil, errors.New("dni cannot be empty")
	}
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		DNI:       dni,
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewFromData creates a User from raw data. Used for store hydration only;
// it bypasses validation and hashing.
func NewFromData(
	id uuid.UUID,
	dni, username, email, password string,
	created, updated time.Time,
) *User {
	return &User{
		ID:        id,
		DNI:       dni,
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}
