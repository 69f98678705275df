// Package account holds the account aggregate and its ledger transactions.
package account

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/money"
)

// Entity labels used in not-found errors, matching the wording callers see.
const (
	EntityAccount = "Cuenta bancaria"
	EntitySource  = "Cuenta de origen"
	EntityTarget  = "Cuenta de destino"
)

var (
	// ErrNumberFormat is returned when an account number does not match the
	// "45" + 8 digits + "-" + 2 digits format.
	ErrNumberFormat = errors.New("invalid account number format")
	// ErrNegativeBalance is returned when a balance would go below zero.
	ErrNegativeBalance = errors.New("balance cannot be negative")
	// ErrOwnerRequired is returned when an account is built without an owner.
	ErrOwnerRequired = errors.New("owner user id is required")
)

var numberPattern = regexp.MustCompile(`^45\d{8}-\d{2}$`)

// ValidNumber reports whether s matches the account number format:
// the fixed "45" prefix, eight random digits, a dash and two more digits.
func ValidNumber(s string) bool {
	return numberPattern.MatchString(s)
}

// Account represents a bank account owned by a user.
//
// Invariants:
//   - Number is globally unique and immutable once assigned.
//   - UserID is immutable after creation.
//   - Balance is never negative at any committed point.
type Account struct {
	ID        uuid.UUID
	Number    string
	UserID    uuid.UUID
	Balance   money.Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances so that
// only valid accounts are ever observable.
type Builder struct {
	id        uuid.UUID
	number    string
	userID    uuid.UUID
	balance   money.Money
	createdAt time.Time
	updatedAt time.Time
}

// New creates a Builder with a fresh UUID and creation timestamp.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the identity. Used for store hydration.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithNumber sets the account number. Mandatory.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithBalance sets the balance. Defaults to zero.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp. Used for store hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp. Used for store hydration.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates all invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, ErrOwnerRequired
	}
	if !ValidNumber(b.number) {
		return nil, ErrNumberFormat
	}
	if b.balance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	return &Account{
		ID:        b.id,
		Number:    b.number,
		UserID:    b.userID,
		Balance:   b.balance,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}
