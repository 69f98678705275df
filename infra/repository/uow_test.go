package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	domainaccount "github.com/mvallejo/bancore/pkg/domain/account"
	"github.com/mvallejo/bancore/pkg/money"
	"github.com/mvallejo/bancore/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func testAccount(t *testing.T) *domainaccount.Account {
	t.Helper()
	a, err := domainaccount.New().
		WithUserID(uuid.New()).
		WithNumber("4512345678-01").
		WithBalance(money.Must(100)).
		Build()
	require.NoError(t, err)
	return a
}

func testWithdrawal(t *testing.T) *domainaccount.Transaction {
	t.Helper()
	return domainaccount.NewWithdrawal(testAccount(t), money.Must(10))
}

func TestUoW_DoCommits(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(err, boom)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RepositoriesShareTransaction(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "transactions" (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		accounts, err := inner.AccountRepository()
		if err != nil {
			return err
		}
		ledger, err := inner.TransactionRepository()
		if err != nil {
			return err
		}
		// Both writes land inside the single BEGIN/COMMIT above.
		if err := accounts.Create(context.Background(), testAccount(t)); err != nil {
			return err
		}
		return ledger.Create(context.Background(), testWithdrawal(t))
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}
