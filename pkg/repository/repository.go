// Package repository defines the data-access contracts the services depend
// on. Implementations live in infra/repository.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/domain/account"
	"github.com/mvallejo/bancore/pkg/domain/user"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/money"
)

// AccountRepository defines account data access. Lookup methods return
// (nil, nil) when the account is absent; classifying absence as a business
// error is the service's job.
type AccountRepository interface {
	Create(ctx context.Context, a *account.Account) error
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByNumber(ctx context.Context, number string) (*account.Account, error)
	// GetByNumberForUpdate loads the account holding a row lock until the
	// surrounding unit of work commits. Serializes concurrent balance
	// mutations on the same account.
	GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error)
	List(ctx context.Context) ([]*account.Account, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines ledger data access. The ledger is
// append-only: rows are created, never updated or deleted. Read methods
// resolve the source/target account numbers from the linked accounts.
type TransactionRepository interface {
	Create(ctx context.Context, tx *account.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)
	// ListOutgoing returns rows where the account is the source, in
	// persistence order.
	ListOutgoing(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error)
	// ListIncoming returns rows where the account is the target, in
	// persistence order.
	ListIncoming(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error)
}

// UserRepository defines user data access.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByDNI(ctx context.Context, dni string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
