// Package dto defines the create/read/update shapes exchanged between the
// services, the repositories and the API layer. "Ignore" rules of the
// original mapping layer are expressed simply as fields not copied.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountRead is a read-optimized view of an account.
type AccountRead struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"account_number"`
	UserID    uuid.UUID `json:"user_id"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountCreate is the input for opening a new account.
type AccountCreate struct {
	UserID  uuid.UUID
	Balance float64
}

// AccountUpdate is the administrative override payload. Nil fields are
// left untouched. Applying it never writes a ledger record, unlike
// deposits and withdrawals, which always do.
type AccountUpdate struct {
	Balance *float64
}
