// Package repository implements the unit of work over a GORM session.
package repository

import (
	"context"

	"github.com/mvallejo/bancore/infra/repository/account"
	"github.com/mvallejo/bancore/infra/repository/transaction"
	"github.com/mvallejo/bancore/infra/repository/user"
	"github.com/mvallejo/bancore/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. All repositories handed out inside Do share the transaction
// session, so the reads, balance writes and ledger append of one business
// operation commit or roll back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a database transaction, providing a UoW bound to it.
// Returning an error from fn rolls the whole unit back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the bare connection
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// AccountRepository returns an account repository bound to the current
// session.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return account.New(u.session()), nil
}

// TransactionRepository returns a ledger repository bound to the current
// session.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return transaction.New(u.session()), nil
}

// UserRepository returns a user repository bound to the current session.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return user.New(u.session()), nil
}
