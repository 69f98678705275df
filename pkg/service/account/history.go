package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/domain"
	domainaccount "github.com/mvallejo/bancore/pkg/domain/account"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/repository"
)

// GetHistory returns the ledger history of the account identified by
// number: its outgoing rows first, then its incoming rows. Each list keeps
// persistence order; the two lists are not re-sorted against each other.
func (s *Service) GetHistory(
	ctx context.Context,
	number string,
) (entries []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NewNotFound("Cuenta Bancaria", number)
		}
		outgoing, err := ledger.ListOutgoing(ctx, a.ID)
		if err != nil {
			return err
		}
		incoming, err := ledger.ListIncoming(ctx, a.ID)
		if err != nil {
			return err
		}
		entries = make([]*dto.TransactionRead, 0, len(outgoing)+len(incoming))
		entries = append(entries, outgoing...)
		entries = append(entries, incoming...)
		return nil
	})
	return
}

// GetTransaction retrieves a single ledger row by id.
func (s *Service) GetTransaction(
	ctx context.Context,
	id uuid.UUID,
) (view *dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		view, err = ledger.Get(ctx, id)
		if err != nil {
			return err
		}
		if view == nil {
			return domain.NewNotFound(domainaccount.EntityTransaction, id.String())
		}
		return nil
	})
	return
}
