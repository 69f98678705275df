// Package account provides the business logic for accounts and money
// movement: account creation with unique number generation, deposits,
// withdrawals, transfers and per-account transaction history.
//
// Every operation runs inside a single unit of work so that balance reads,
// balance writes and ledger writes commit together. Operations on the same
// account are serialized through row locks taken by the repositories.
package account

import (
	"context"
	"log/slog"

	domainaccount "github.com/mvallejo/bancore/pkg/domain/account"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/repository"
)

// TransactionPublisher receives committed ledger rows for downstream
// consumers. Publishing is fire-and-forget: it runs after the unit of work
// commits and never fails the operation.
type TransactionPublisher interface {
	TransactionCompleted(ctx context.Context, tx *dto.TransactionRead)
}

// Service provides business logic for account operations including
// creation, deposits, withdrawals, transfers and history.
type Service struct {
	uow       repository.UnitOfWork
	publisher TransactionPublisher
	logger    *slog.Logger
}

// NewService creates a Service. publisher may be nil when no event sink is
// configured.
func NewService(
	uow repository.UnitOfWork,
	publisher TransactionPublisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) publish(ctx context.Context, tx *dto.TransactionRead) {
	if s.publisher == nil || tx == nil {
		return
	}
	s.publisher.TransactionCompleted(ctx, tx)
}

func toAccountRead(a *domainaccount.Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:        a.ID,
		Number:    a.Number,
		UserID:    a.UserID,
		Balance:   a.Balance.Float64(),
		CreatedAt: a.CreatedAt,
	}
}
