package repository

import "context"

// UnitOfWork is the transactional boundary for one business operation.
//
// All repositories obtained from the UnitOfWork passed to Do share the same
// store session, so the balance read, balance write and ledger write of a
// money movement commit together or not at all. If fn returns an error the
// whole unit is rolled back and no intermediate state is visible to other
// operations.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork given to
	// fn is bound to that transaction.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// Repository accessors bound to the current transaction/session.
	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	UserRepository() (UserRepository, error)
}
