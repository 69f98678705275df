package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	domainuser "github.com/mvallejo/bancore/pkg/domain/user"
	"github.com/mvallejo/bancore/pkg/dto"
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
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func userColumns() []string {
	return []string{"id", "dni", "username", "email", "password", "created_at", "updated_at"}
}

func TestUserRepository_Create(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := userRepository{db: db}

	u := domainuser.NewFromData(uuid.New(),
		"12345678", "tester", "tester@example.com", "$2a$14$notarealhash",
		time.Now(), time.Now())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assert.NoError(repo.Create(context.Background(), u))
}

func TestUserRepository_Get(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := userRepository{db: db}

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(id, "12345678", "tester", "tester@example.com", "hash", now, now))

	u, err := repo.Get(context.Background(), id)
	assert.NoError(err)
	assert.NotNil(u)
	assert.Equal("tester", u.Username)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs(sqlmock.AnyArg(), 1).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	u, err = repo.Get(context.Background(), uuid.New())
	assert.NoError(err)
	assert.Nil(u)
}

func TestUserRepository_ExistsByDNI(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := userRepository{db: db}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE dni = (.+)`).
		WithArgs("12345678").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := repo.ExistsByDNI(context.Background(), "12345678")
	assert.NoError(err)
	assert.False(ok)
}

func TestUserRepository_Update(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := userRepository{db: db}

	id := uuid.New()
	email := "renamed@example.com"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(repo.Update(context.Background(), id, dto.UserUpdate{Email: &email}))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), id, dto.UserUpdate{Email: &email})
	assert.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := userRepository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "users" WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(repo.Delete(context.Background(), uuid.New()))
}
