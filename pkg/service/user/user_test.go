package user_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/mvallejo/bancore/internal/fixtures"
	"github.com/mvallejo/bancore/pkg/domain"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/money"
	usersvc "github.com/mvallejo/bancore/pkg/service/user"
	"github.com/mvallejo/bancore/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(store *fixtures.Store) *usersvc.Service {
	return usersvc.New(fixtures.NewUnitOfWork(store), slog.Default())
}

func TestRegister(t *testing.T) {
	store := fixtures.NewStore()
	svc := newService(store)

	view, err := svc.Register(context.Background(), dto.UserCreate{
		DNI:      "87654321",
		Username: "maria",
		Email:    "maria@example.com",
		Password: "s3cret!pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", view.Username)

	stored := store.Users[view.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret!pass", stored.Password, "password must be hashed")
	assert.True(t, utils.CheckPasswordHash("s3cret!pass", stored.Password))
}

func TestRegister_DuplicateDNI(t *testing.T) {
	store := fixtures.NewStore()
	seeded := store.SeedUser()
	svc := newService(store)

	_, err := svc.Register(context.Background(), dto.UserCreate{
		DNI:      seeded.DNI,
		Username: "other",
		Email:    "other@example.com",
		Password: "pass1234",
	})
	require.ErrorIs(t, err, domain.ErrDuplicated)
	var dup *domain.DuplicatedError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "DNI", dup.Entity)
	assert.Equal(t, seeded.DNI, dup.Identifier)
	assert.Len(t, store.Users, 1)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := fixtures.NewStore()
	seeded := store.SeedUser()
	svc := newService(store)

	_, err := svc.Register(context.Background(), dto.UserCreate{
		DNI:      "99999999",
		Username: "other",
		Email:    seeded.Email,
		Password: "pass1234",
	})
	var dup *domain.DuplicatedError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Email", dup.Entity)
	assert.Len(t, store.Users, 1)
}

func TestGet_NotFound(t *testing.T) {
	svc := newService(fixtures.NewStore())

	missing := uuid.New()
	_, err := svc.Get(context.Background(), missing)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Usuario", nf.Entity)
	assert.Equal(t, missing.String(), nf.Identifier)
}

func TestUpdate(t *testing.T) {
	store := fixtures.NewStore()
	seeded := store.SeedUser()
	svc := newService(store)

	newEmail := "renamed@example.com"
	view, err := svc.Update(context.Background(), seeded.ID, dto.UserUpdate{
		Email: &newEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, newEmail, view.Email)
	assert.Equal(t, seeded.Username, view.Username, "untouched fields keep their value")
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newService(fixtures.NewStore())

	name := "nobody"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UserUpdate{
		Username: &name,
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Usuario para actualizar", nf.Entity)
}

func TestDelete_CascadesAccounts(t *testing.T) {
	store := fixtures.NewStore()
	seeded := store.SeedUser()
	store.SeedAccount(seeded.ID, "4512345678-11", money.Must(10))
	svc := newService(store)

	require.NoError(t, svc.Delete(context.Background(), seeded.ID))
	assert.Empty(t, store.Users)
	assert.Empty(t, store.Accounts, "owned accounts are removed with the user")
}

func TestList(t *testing.T) {
	store := fixtures.NewStore()
	store.SeedUser()
	svc := newService(store)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, views, 1)
}
