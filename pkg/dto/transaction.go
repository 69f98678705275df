package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionRead is a read-optimized view of one ledger row. The account
// number fields are resolved from the linked accounts at query time, they
// are not stored redundantly; either may be empty for deposits and
// withdrawals or when the linked account was deleted.
type TransactionRead struct {
	ID                  uuid.UUID `json:"id"`
	Amount              float64   `json:"amount"`
	Description         string    `json:"description"`
	SourceAccountNumber string    `json:"source_account_number,omitempty"`
	TargetAccountNumber string    `json:"target_account_number,omitempty"`
	CreatedAt           time.Time `json:"transaction_date"`
}

// TransferRequest is the input for moving funds between two accounts.
type TransferRequest struct {
	SourceAccountNumber string
	TargetAccountNumber string
	Amount              float64
}
