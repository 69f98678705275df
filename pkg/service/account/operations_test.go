package account_test

import (
	"context"
	"testing"

	"github.com/mvallejo/bancore/internal/fixtures"
	"github.com/mvallejo/bancore/pkg/domain"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeposit(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	a := store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	svc := newService(store)

	view, err := svc.Deposit(context.Background(), "4512345678-11", 50.00)
	require.NoError(t, err)
	assert.InEpsilon(t, 150.00, view.Balance, 1e-9)
	assert.True(t, store.Accounts[a.ID].Balance.Equals(money.Must(150)))

	require.Len(t, store.Transactions, 1)
	tx := store.Transactions[0]
	assert.Nil(t, tx.SourceAccountID)
	require.NotNil(t, tx.TargetAccountID)
	assert.Equal(t, a.ID, *tx.TargetAccountID)
	assert.True(t, tx.Amount.Equals(money.Must(50)))
	assert.Equal(t, "Depósito en efectivo a la cuenta 4512345678-11", tx.Description)
}

func TestDeposit_RejectsNonPositiveAmounts(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	a := store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	svc := newService(store)

	for _, amount := range []float64{0, -10} {
		_, err := svc.Deposit(context.Background(), "4512345678-11", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
		assert.Contains(t, err.Error(), "El monto debe ser un valor positivo.")
	}
	assert.True(t, store.Accounts[a.ID].Balance.Equals(money.Must(100)))
	assert.Empty(t, store.Transactions)
}

func TestDeposit_UnknownAccount(t *testing.T) {
	svc := newService(fixtures.NewStore())
	_, err := svc.Deposit(context.Background(), "4500000000-00", 10)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Cuenta bancaria", nf.Entity)
	assert.Equal(t, "4500000000-00", nf.Identifier)
}

func TestWithdraw(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	a := store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	svc := newService(store)

	view, err := svc.Withdraw(context.Background(), "4512345678-11", 40.00)
	require.NoError(t, err)
	assert.InEpsilon(t, 60.00, view.Balance, 1e-9)

	require.Len(t, store.Transactions, 1)
	tx := store.Transactions[0]
	require.NotNil(t, tx.SourceAccountID)
	assert.Equal(t, a.ID, *tx.SourceAccountID)
	assert.Nil(t, tx.TargetAccountID)
	assert.Equal(t, "Retiro de efectivo de la cuenta 4512345678-11", tx.Description)
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	a := store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	svc := newService(store)

	_, err := svc.Withdraw(context.Background(), "4512345678-11", 100.01)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Contains(t, err.Error(), "Saldo insuficiente para realizar el retiro.")

	// Nothing changed: balance intact, no ledger row.
	assert.True(t, store.Accounts[a.ID].Balance.Equals(money.Must(100)))
	assert.Empty(t, store.Transactions)
}

func TestWithdraw_ExactBalance(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	a := store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	svc := newService(store)

	view, err := svc.Withdraw(context.Background(), "4512345678-11", 100.00)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, view.Balance, 1e-9)
	assert.True(t, store.Accounts[a.ID].Balance.Equals(money.Must(0)))
}

func TestTransfer(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	src := store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	dst := store.SeedAccount(owner.ID, "4587654321-22", money.Must(20))
	svc := newService(store)

	view, err := svc.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountNumber: "4512345678-11",
		TargetAccountNumber: "4587654321-22",
		Amount:              30.00,
	})
	require.NoError(t, err)
	assert.Equal(t, "4512345678-11", view.SourceAccountNumber)
	assert.Equal(t, "4587654321-22", view.TargetAccountNumber)
	assert.InEpsilon(t, 30.00, view.Amount, 1e-9)
	assert.Equal(t, "Transferencia de 4512345678-11 a 4587654321-22", view.Description)

	// Conservation: total across both accounts is unchanged.
	assert.True(t, store.Accounts[src.ID].Balance.Equals(money.Must(70)))
	assert.True(t, store.Accounts[dst.ID].Balance.Equals(money.Must(50)))

	// A transfer is a single ledger row referencing both sides.
	require.Len(t, store.Transactions, 1)
	tx := store.Transactions[0]
	require.NotNil(t, tx.SourceAccountID)
	require.NotNil(t, tx.TargetAccountID)
	assert.Equal(t, src.ID, *tx.SourceAccountID)
	assert.Equal(t, dst.ID, *tx.TargetAccountID)
}

func TestTransfer_SameAccount(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	svc := newService(store)

	_, err := svc.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountNumber: "4512345678-11",
		TargetAccountNumber: "4512345678-11",
		Amount:              10,
	})
	require.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Contains(t, err.Error(), "La cuenta de origen y destino no pueden ser la misma.")
	assert.Empty(t, store.Transactions)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	src := store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	dst := store.SeedAccount(owner.ID, "4587654321-22", money.Must(20))
	svc := newService(store)

	_, err := svc.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountNumber: "4512345678-11",
		TargetAccountNumber: "4587654321-22",
		Amount:              150.00,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Contains(t, err.Error(), "Saldo insuficiente en la cuenta de origen.")

	assert.True(t, store.Accounts[src.ID].Balance.Equals(money.Must(100)))
	assert.True(t, store.Accounts[dst.ID].Balance.Equals(money.Must(20)))
	assert.Empty(t, store.Transactions)
}

func TestTransfer_SourceResolvedBeforeTarget(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	store.SeedAccount(owner.ID, "4587654321-22", money.Must(20))
	svc := newService(store)

	// Both sides missing: the source failure is the one reported.
	_, err := svc.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountNumber: "4500000000-00",
		TargetAccountNumber: "4500000000-01",
		Amount:              10,
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Cuenta de origen", nf.Entity)
	assert.Equal(t, "4500000000-00", nf.Identifier)
}

func TestTransfer_TargetNotFound(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	svc := newService(store)

	_, err := svc.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountNumber: "4512345678-11",
		TargetAccountNumber: "4500000000-01",
		Amount:              10,
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Cuenta de destino", nf.Entity)
	assert.Empty(t, store.Transactions)
}

func TestTransfer_RejectsNonPositiveAmounts(t *testing.T) {
	store := fixtures.NewStore()
	owner := store.SeedUser()
	store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	store.SeedAccount(owner.ID, "4587654321-22", money.Must(20))
	svc := newService(store)

	_, err := svc.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountNumber: "4512345678-11",
		TargetAccountNumber: "4587654321-22",
		Amount:              -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}
