// Package user implements the user repository on Postgres via GORM.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	domainuser "github.com/mvallejo/bancore/pkg/domain/user"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// New creates a user repository bound to the given session.
func New(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func toDomain(m *User) *domainuser.User {
	return domainuser.NewFromData(
		m.ID, m.DNI, m.Username, m.Email, m.Password, m.CreatedAt, m.UpdatedAt)
}

func (r *userRepository) Create(ctx context.Context, u *domainuser.User) error {
	m := User{
		ID:        u.ID,
		DNI:       u.DNI,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*domainuser.User, error) {
	var m User
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *userRepository) List(ctx context.Context) ([]*domainuser.User, error) {
	var models []User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*domainuser.User, 0, len(models))
	for i := range models {
		result = append(result, toDomain(&models[i]))
	}
	return result, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "id = ?", id)
}

func (r *userRepository) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	return r.exists(ctx, "dni = ?", dni)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *userRepository) exists(ctx context.Context, cond string, value any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where(cond, value).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if update.DNI != nil {
		updates["dni"] = *update.DNI
	}
	if update.Username != nil {
		updates["username"] = *update.Username
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Password != nil {
		updates["password"] = *update.Password
	}
	result := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the user. Owned accounts go with it via the schema's
// cascade rule.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}
