// Package fixtures provides in-memory fakes of the repository contracts
// for service and handler tests. The fake unit of work snapshots state
// before each Do call and restores it on error, mirroring the rollback
// semantics of the real store.
package fixtures

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/domain/account"
	"github.com/mvallejo/bancore/pkg/domain/user"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/money"
	"github.com/mvallejo/bancore/pkg/repository"
)

// Store is the shared in-memory state behind the fake repositories.
type Store struct {
	mu           sync.Mutex
	Accounts     map[uuid.UUID]*account.Account
	Transactions []*account.Transaction
	Users        map[uuid.UUID]*user.User
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		Accounts: map[uuid.UUID]*account.Account{},
		Users:    map[uuid.UUID]*user.User{},
	}
}

// SeedUser adds a user and returns it. The credential hash is a dummy
// value so the seed stays free of bcrypt cost.
func (s *Store) SeedUser() *user.User {
	now := time.Now().UTC()
	u := user.NewFromData(uuid.New(),
		"12345678", "tester", "tester@example.com", "$2a$14$notarealhash",
		now, now)
	s.Users[u.ID] = u
	return u
}

// SeedAccount adds an account with the given number and balance for owner.
func (s *Store) SeedAccount(owner uuid.UUID, number string, balance money.Money) *account.Account {
	a, err := account.New().
		WithUserID(owner).
		WithNumber(number).
		WithBalance(balance).
		Build()
	if err != nil {
		panic(err)
	}
	s.Accounts[a.ID] = a
	return a
}

func (s *Store) snapshot() *Store {
	clone := NewStore()
	for id, a := range s.Accounts {
		c := *a
		clone.Accounts[id] = &c
	}
	for id, u := range s.Users {
		c := *u
		clone.Users[id] = &c
	}
	clone.Transactions = append([]*account.Transaction(nil), s.Transactions...)
	return clone
}

func (s *Store) restore(from *Store) {
	s.Accounts = from.Accounts
	s.Users = from.Users
	s.Transactions = from.Transactions
}

// UnitOfWork is a fake repository.UnitOfWork over a Store.
type UnitOfWork struct {
	Store *Store
}

// NewUnitOfWork creates a fake unit of work over store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{Store: store}
}

// Do runs fn, restoring the pre-call state when fn fails.
func (u *UnitOfWork) Do(_ context.Context, fn func(repository.UnitOfWork) error) error {
	u.Store.mu.Lock()
	defer u.Store.mu.Unlock()
	before := u.Store.snapshot()
	if err := fn(u); err != nil {
		u.Store.restore(before)
		return err
	}
	return nil
}

// AccountRepository implements repository.UnitOfWork.
func (u *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepo{store: u.Store}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepo{store: u.Store}, nil
}

// UserRepository implements repository.UnitOfWork.
func (u *UnitOfWork) UserRepository() (repository.UserRepository, error) {
	return &userRepo{store: u.Store}, nil
}

type accountRepo struct {
	store *Store
}

func (r *accountRepo) Create(_ context.Context, a *account.Account) error {
	c := *a
	r.store.Accounts[a.ID] = &c
	return nil
}

func (r *accountRepo) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := r.store.Accounts[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *accountRepo) GetByNumber(_ context.Context, number string) (*account.Account, error) {
	for _, a := range r.store.Accounts {
		if a.Number == number {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *accountRepo) GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error) {
	return r.GetByNumber(ctx, number)
}

func (r *accountRepo) List(_ context.Context) ([]*account.Account, error) {
	out := make([]*account.Account, 0, len(r.store.Accounts))
	for _, a := range r.store.Accounts {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r *accountRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.store.Accounts[id]
	return ok, nil
}

func (r *accountRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	for _, a := range r.store.Accounts {
		if a.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *accountRepo) UpdateBalance(_ context.Context, id uuid.UUID, balance money.Money) error {
	if a, ok := r.store.Accounts[id]; ok {
		a.Balance = balance
	}
	return nil
}

func (r *accountRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.Accounts, id)
	return nil
}

type transactionRepo struct {
	store *Store
}

func (r *transactionRepo) Create(_ context.Context, tx *account.Transaction) error {
	c := *tx
	r.store.Transactions = append(r.store.Transactions, &c)
	return nil
}

func (r *transactionRepo) resolveNumber(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	if a, ok := r.store.Accounts[*id]; ok {
		return a.Number
	}
	return ""
}

func (r *transactionRepo) toRead(tx *account.Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:                  tx.ID,
		Amount:              tx.Amount.Float64(),
		Description:         tx.Description,
		SourceAccountNumber: r.resolveNumber(tx.SourceAccountID),
		TargetAccountNumber: r.resolveNumber(tx.TargetAccountID),
		CreatedAt:           tx.CreatedAt,
	}
}

func (r *transactionRepo) Get(_ context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	for _, tx := range r.store.Transactions {
		if tx.ID == id {
			return r.toRead(tx), nil
		}
	}
	return nil, nil
}

func (r *transactionRepo) ListOutgoing(_ context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	var out []*dto.TransactionRead
	for _, tx := range r.store.Transactions {
		if tx.SourceAccountID != nil && *tx.SourceAccountID == accountID {
			out = append(out, r.toRead(tx))
		}
	}
	return out, nil
}

func (r *transactionRepo) ListIncoming(_ context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	var out []*dto.TransactionRead
	for _, tx := range r.store.Transactions {
		if tx.TargetAccountID != nil && *tx.TargetAccountID == accountID {
			out = append(out, r.toRead(tx))
		}
	}
	return out, nil
}

type userRepo struct {
	store *Store
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	c := *u
	r.store.Users[u.ID] = &c
	return nil
}

func (r *userRepo) Get(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.store.Users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *userRepo) List(_ context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(r.store.Users))
	for _, u := range r.store.Users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *userRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.store.Users[id]
	return ok, nil
}

func (r *userRepo) ExistsByDNI(_ context.Context, dni string) (bool, error) {
	for _, u := range r.store.Users {
		if u.DNI == dni {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.store.Users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Update(_ context.Context, id uuid.UUID, update dto.UserUpdate) error {
	u, ok := r.store.Users[id]
	if !ok {
		return nil
	}
	if update.DNI != nil {
		u.DNI = *update.DNI
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.Users, id)
	// store cascade: a user's accounts go with the user
	for aid, a := range r.store.Accounts {
		if a.UserID == id {
			delete(r.store.Accounts, aid)
		}
	}
	return nil
}
