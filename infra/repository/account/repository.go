// Package account implements the account repository on Postgres via GORM.
package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	domainaccount "github.com/mvallejo/bancore/pkg/domain/account"
	"github.com/mvallejo/bancore/pkg/money"
	"github.com/mvallejo/bancore/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// New creates an account repository bound to the given session.
func New(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func toDomain(m *Account) (*domainaccount.Account, error) {
	return domainaccount.New().
		WithID(m.ID).
		WithNumber(m.Number).
		WithUserID(m.UserID).
		WithBalance(money.FromCents(m.Balance)).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}

func toModel(a *domainaccount.Account) *Account {
	return &Account{
		ID:        a.ID,
		Number:    a.Number,
		UserID:    a.UserID,
		Balance:   a.Balance.Cents(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *accountRepository) Create(ctx context.Context, a *domainaccount.Account) error {
	return r.db.WithContext(ctx).Create(toModel(a)).Error
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*domainaccount.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m)
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*domainaccount.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).First(&m, "account_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m)
}

// GetByNumberForUpdate locks the row with SELECT ... FOR UPDATE. The lock
// is released when the surrounding transaction ends.
func (r *accountRepository) GetByNumberForUpdate(ctx context.Context, number string) (*domainaccount.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "account_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m)
}

func (r *accountRepository) List(ctx context.Context) ([]*domainaccount.Account, error) {
	var models []Account
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*domainaccount.Account, 0, len(models))
	for i := range models {
		a, err := toDomain(&models[i])
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

func (r *accountRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *accountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).Where("account_number = ?", number).Count(&count).Error
	return count > 0, err
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error {
	result := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Updates(map[string]any{
		"balance":    balance.Cents(),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id).Error
}
