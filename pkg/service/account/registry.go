package account

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/domain"
	domainaccount "github.com/mvallejo/bancore/pkg/domain/account"
	domainuser "github.com/mvallejo/bancore/pkg/domain/user"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/money"
	"github.com/mvallejo/bancore/pkg/repository"
)

// maxNumberAttempts caps the generate-and-check loop for account numbers.
// Collisions are vanishingly rare with 10^8 candidates per prefix, the cap
// only guards against a pathological store.
const maxNumberAttempts = 10

// CreateAccount opens a new account for an existing user with the given
// initial balance. The account number is generated with a bounded retry
// loop against the store's uniqueness check.
func (s *Service) CreateAccount(
	ctx context.Context,
	create dto.AccountCreate,
) (view *dto.AccountRead, err error) {
	logger := s.logger.With("userID", create.UserID)
	if create.Balance < 0 {
		return nil, domain.NewInvalidOperation(
			"El saldo inicial de la cuenta no puede ser negativo.")
	}
	balance, err := money.New(create.Balance)
	if err != nil {
		return nil, domain.NewInvalidOperation(err.Error())
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		ok, err := users.Exists(ctx, create.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFound(domainuser.Entity, create.UserID.String())
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		number, err := generateUniqueNumber(ctx, accounts)
		if err != nil {
			return err
		}
		a, err := domainaccount.New().
			WithUserID(create.UserID).
			WithNumber(number).
			WithBalance(balance).
			Build()
		if err != nil {
			return err
		}
		if err = accounts.Create(ctx, a); err != nil {
			return err
		}
		view = toAccountRead(a)
		return nil
	})
	if err != nil {
		logger.Error("account creation failed", "error", err)
		return nil, err
	}
	logger.Info("account created", "accountNumber", view.Number)
	return view, nil
}

// generateUniqueNumber produces a candidate account number and retries
// until the store reports it unused, up to maxNumberAttempts.
func generateUniqueNumber(
	ctx context.Context,
	accounts repository.AccountRepository,
) (string, error) {
	for range maxNumberAttempts {
		candidate := randomNumber()
		taken, err := accounts.ExistsByNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique account number after %d attempts",
		maxNumberAttempts)
}

// randomNumber builds an account number: the fixed "45" prefix, eight
// random digits, a dash and two more random digits.
func randomNumber() string {
	var sb strings.Builder
	sb.WriteString("45")
	for range 8 {
		sb.WriteByte(byte('0' + rand.IntN(10)))
	}
	sb.WriteByte('-')
	sb.WriteByte(byte('0' + rand.IntN(10)))
	sb.WriteByte(byte('0' + rand.IntN(10)))
	return sb.String()
}

// GetAccount retrieves an account by id.
func (s *Service) GetAccount(
	ctx context.Context,
	id uuid.UUID,
) (view *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NewNotFound(domainaccount.EntityAccount, id.String())
		}
		view = toAccountRead(a)
		return nil
	})
	return
}

// GetAccountByNumber retrieves an account by its account number.
func (s *Service) GetAccountByNumber(
	ctx context.Context,
	number string,
) (view *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NewNotFound(domainaccount.EntityAccount, number)
		}
		view = toAccountRead(a)
		return nil
	})
	return
}

// ListAccounts returns all accounts.
func (s *Service) ListAccounts(
	ctx context.Context,
) (views []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		all, err := accounts.List(ctx)
		if err != nil {
			return err
		}
		views = make([]*dto.AccountRead, 0, len(all))
		for _, a := range all {
			views = append(views, toAccountRead(a))
		}
		return nil
	})
	return
}

// UpdateAccount is the administrative balance override. Unlike deposits and
// withdrawals it writes no ledger record.
func (s *Service) UpdateAccount(
	ctx context.Context,
	id uuid.UUID,
	update dto.AccountUpdate,
) (view *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NewNotFound(domainaccount.EntityAccount, id.String())
		}
		if update.Balance != nil {
			if *update.Balance < 0 {
				return domain.NewInvalidOperation(
					"El saldo de la cuenta debe ser cero o positivo.")
			}
			balance, err := money.New(*update.Balance)
			if err != nil {
				return domain.NewInvalidOperation(err.Error())
			}
			if err = accounts.UpdateBalance(ctx, a.ID, balance); err != nil {
				return err
			}
			a.Balance = balance
		}
		view = toAccountRead(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account updated", "accountID", id)
	return view, nil
}

// DeleteAccount removes an account. Ledger rows referencing it keep their
// history with the account link cleared by the store.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ok, err := accounts.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFound(domainaccount.EntityAccount, id.String())
		}
		return accounts.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("account deleted", "accountID", id)
	return nil
}
