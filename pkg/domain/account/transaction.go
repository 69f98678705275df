package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/money"
)

// EntityTransaction is the entity label used in not-found errors.
const EntityTransaction = "Transacción"

// Transaction represents one immutable row of the ledger.
//
// Exactly one of SourceAccountID/TargetAccountID is nil for a deposit
// (target set) or a withdrawal (source set); a transfer sets both.
// Amount is always strictly positive. A transaction is never updated or
// deleted once created.
type Transaction struct {
	ID              uuid.UUID
	Amount          money.Money
	Description     string
	SourceAccountID *uuid.UUID
	TargetAccountID *uuid.UUID
	CreatedAt       time.Time
}

// NewDeposit builds the ledger record for a cash deposit into target.
func NewDeposit(target *Account, amount money.Money) *Transaction {
	id := target.ID
	return &Transaction{
		ID:              uuid.New(),
		Amount:          amount,
		Description:     "Depósito en efectivo a la cuenta " + target.Number,
		TargetAccountID: &id,
		CreatedAt:       time.Now().UTC(),
	}
}

// NewWithdrawal builds the ledger record for a cash withdrawal from source.
func NewWithdrawal(source *Account, amount money.Money) *Transaction {
	id := source.ID
	return &Transaction{
		ID:              uuid.New(),
		Amount:          amount,
		Description:     "Retiro de efectivo de la cuenta " + source.Number,
		SourceAccountID: &id,
		CreatedAt:       time.Now().UTC(),
	}
}

// NewTransfer builds the single ledger record covering both sides of a
// transfer from source to target.
func NewTransfer(source, target *Account, amount money.Money) *Transaction {
	sid, tid := source.ID, target.ID
	return &Transaction{
		ID:              uuid.New(),
		Amount:          amount,
		Description:     "Transferencia de " + source.Number + " a " + target.Number,
		SourceAccountID: &sid,
		TargetAccountID: &tid,
		CreatedAt:       time.Now().UTC(),
	}
}
