// Package transaction implements the append-only ledger repository on
// Postgres via GORM.
package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	domainaccount "github.com/mvallejo/bancore/pkg/domain/account"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/money"
	"github.com/mvallejo/bancore/pkg/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// New creates a ledger repository bound to the given session.
func New(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// row is the read projection: a ledger record with the source and target
// account numbers resolved. Numbers are empty for the unused side and for
// accounts deleted after the record was written.
type row struct {
	ID                  uuid.UUID
	Amount              int64
	Description         string
	SourceAccountNumber string
	TargetAccountNumber string
	CreatedAt           time.Time
}

const readColumns = `transactions.id, transactions.amount, transactions.description,
	COALESCE(sa.account_number, '') AS source_account_number,
	COALESCE(ta.account_number, '') AS target_account_number,
	transactions.created_at`

func (r *transactionRepository) readQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select(readColumns).
		Joins("LEFT JOIN accounts sa ON sa.id = transactions.source_account_id").
		Joins("LEFT JOIN accounts ta ON ta.id = transactions.target_account_id")
}

func toRead(rw *row) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:                  rw.ID,
		Amount:              money.FromCents(rw.Amount).Float64(),
		Description:         rw.Description,
		SourceAccountNumber: rw.SourceAccountNumber,
		TargetAccountNumber: rw.TargetAccountNumber,
		CreatedAt:           rw.CreatedAt,
	}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domainaccount.Transaction) error {
	m := Transaction{
		ID:              tx.ID,
		Amount:          tx.Amount.Cents(),
		Description:     tx.Description,
		SourceAccountID: tx.SourceAccountID,
		TargetAccountID: tx.TargetAccountID,
		CreatedAt:       tx.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	var rw row
	err := r.readQuery(ctx).Where("transactions.id = ?", id).Take(&rw).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toRead(&rw), nil
}

func (r *transactionRepository) ListOutgoing(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	return r.list(ctx, "transactions.source_account_id = ?", accountID)
}

func (r *transactionRepository) ListIncoming(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	return r.list(ctx, "transactions.target_account_id = ?", accountID)
}

func (r *transactionRepository) list(ctx context.Context, cond string, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	var rows []row
	err := r.readQuery(ctx).
		Where(cond, accountID).
		Order("transactions.seq").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, toRead(&rows[i]))
	}
	return result, nil
}
