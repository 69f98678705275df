package account

import (
	"context"

	"github.com/mvallejo/bancore/pkg/domain"
	domainaccount "github.com/mvallejo/bancore/pkg/domain/account"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/money"
	"github.com/mvallejo/bancore/pkg/repository"
)

func positiveAmount(amount float64) (money.Money, error) {
	if amount <= 0 {
		return money.Money{}, domain.NewInvalidOperation(
			"El monto debe ser un valor positivo.")
	}
	m, err := money.New(amount)
	if err != nil {
		return money.Money{}, domain.NewInvalidOperation(err.Error())
	}
	return m, nil
}

// Deposit adds funds to the account identified by number and appends a
// target-only ledger record. Returns the updated account view.
func (s *Service) Deposit(
	ctx context.Context,
	number string,
	amount float64,
) (view *dto.AccountRead, err error) {
	m, err := positiveAmount(amount)
	if err != nil {
		return nil, err
	}
	var recorded *dto.TransactionRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumberForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NewNotFound(domainaccount.EntityAccount, number)
		}
		newBalance, err := a.Balance.Add(m)
		if err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, a.ID, newBalance); err != nil {
			return err
		}
		tx := domainaccount.NewDeposit(a, m)
		if err = ledger.Create(ctx, tx); err != nil {
			return err
		}
		a.Balance = newBalance
		view = toAccountRead(a)
		recorded = &dto.TransactionRead{
			ID:                  tx.ID,
			Amount:              tx.Amount.Float64(),
			Description:         tx.Description,
			TargetAccountNumber: a.Number,
			CreatedAt:           tx.CreatedAt,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("deposit failed", "accountNumber", number, "error", err)
		return nil, err
	}
	s.logger.Info("deposit completed",
		"accountNumber", number, "amount", m.String())
	s.publish(ctx, recorded)
	return view, nil
}

// Withdraw removes funds from the account identified by number and appends
// a source-only ledger record. Fails with ErrInsufficientFunds, performing
// no writes, when the balance does not cover the amount.
func (s *Service) Withdraw(
	ctx context.Context,
	number string,
	amount float64,
) (view *dto.AccountRead, err error) {
	m, err := positiveAmount(amount)
	if err != nil {
		return nil, err
	}
	var recorded *dto.TransactionRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumberForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NewNotFound(domainaccount.EntityAccount, number)
		}
		if a.Balance.LessThan(m) {
			return domain.NewInsufficientFunds(
				"Saldo insuficiente para realizar el retiro.")
		}
		newBalance, err := a.Balance.Sub(m)
		if err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, a.ID, newBalance); err != nil {
			return err
		}
		tx := domainaccount.NewWithdrawal(a, m)
		if err = ledger.Create(ctx, tx); err != nil {
			return err
		}
		a.Balance = newBalance
		view = toAccountRead(a)
		recorded = &dto.TransactionRead{
			ID:                  tx.ID,
			Amount:              tx.Amount.Float64(),
			Description:         tx.Description,
			SourceAccountNumber: a.Number,
			CreatedAt:           tx.CreatedAt,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("withdrawal failed", "accountNumber", number, "error", err)
		return nil, err
	}
	s.logger.Info("withdrawal completed",
		"accountNumber", number, "amount", m.String())
	s.publish(ctx, recorded)
	return view, nil
}

// Transfer moves funds from the source account to the target account,
// debiting and crediting inside one unit of work and appending a single
// two-sided ledger record. Returns the view built from that record.
//
// The source is resolved before the target so a missing source
// short-circuits the target lookup. Row locks are then taken on both
// accounts in lexicographic account-number order, so two concurrent
// transfers moving funds in opposite directions between the same pair
// cannot deadlock.
func (s *Service) Transfer(
	ctx context.Context,
	req dto.TransferRequest,
) (view *dto.TransactionRead, err error) {
	m, err := positiveAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if req.SourceAccountNumber == req.TargetAccountNumber {
		return nil, domain.NewInvalidOperation(
			"La cuenta de origen y destino no pueden ser la misma.")
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		// Resolution order is part of the contract: source first.
		ok, err := accounts.ExistsByNumber(ctx, req.SourceAccountNumber)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFound(domainaccount.EntitySource, req.SourceAccountNumber)
		}
		ok, err = accounts.ExistsByNumber(ctx, req.TargetAccountNumber)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFound(domainaccount.EntityTarget, req.TargetAccountNumber)
		}
		source, target, err := lockPair(ctx, accounts,
			req.SourceAccountNumber, req.TargetAccountNumber)
		if err != nil {
			return err
		}
		if source.Balance.LessThan(m) {
			return domain.NewInsufficientFunds(
				"Saldo insuficiente en la cuenta de origen.")
		}
		debited, err := source.Balance.Sub(m)
		if err != nil {
			return err
		}
		credited, err := target.Balance.Add(m)
		if err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, source.ID, debited); err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, target.ID, credited); err != nil {
			return err
		}
		tx := domainaccount.NewTransfer(source, target, m)
		if err = ledger.Create(ctx, tx); err != nil {
			return err
		}
		view = &dto.TransactionRead{
			ID:                  tx.ID,
			Amount:              tx.Amount.Float64(),
			Description:         tx.Description,
			SourceAccountNumber: source.Number,
			TargetAccountNumber: target.Number,
			CreatedAt:           tx.CreatedAt,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("transfer failed",
			"source", req.SourceAccountNumber,
			"target", req.TargetAccountNumber,
			"error", err)
		return nil, err
	}
	s.logger.Info("transfer completed",
		"source", req.SourceAccountNumber,
		"target", req.TargetAccountNumber,
		"amount", m.String())
	s.publish(ctx, view)
	return view, nil
}

// lockPair acquires row locks on both accounts in lexicographic
// account-number order and returns them as (source, target). Either may
// come back missing if a concurrent delete won the race between the
// existence check and the lock.
func lockPair(
	ctx context.Context,
	accounts repository.AccountRepository,
	sourceNumber, targetNumber string,
) (source, target *domainaccount.Account, err error) {
	first, second := sourceNumber, targetNumber
	if second < first {
		first, second = second, first
	}
	a, err := accounts.GetByNumberForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := accounts.GetByNumberForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	byNumber := map[string]*domainaccount.Account{}
	for _, acc := range []*domainaccount.Account{a, b} {
		if acc != nil {
			byNumber[acc.Number] = acc
		}
	}
	source = byNumber[sourceNumber]
	target = byNumber[targetNumber]
	if source == nil {
		return nil, nil, domain.NewNotFound(domainaccount.EntitySource, sourceNumber)
	}
	if target == nil {
		return nil, nil, domain.NewNotFound(domainaccount.EntityTarget, targetNumber)
	}
	return source, target, nil
}
