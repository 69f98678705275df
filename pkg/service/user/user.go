// Package user provides business logic for user registration and
// management. Uniqueness of DNI and email is enforced here; accounts owned
// by a user are removed with the user by the store's cascade rule.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/domain"
	domainuser "github.com/mvallejo/bancore/pkg/domain/user"
	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/mvallejo/bancore/pkg/repository"
	"github.com/mvallejo/bancore/pkg/utils"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func toUserRead(u *domainuser.User) *dto.UserRead {
	return &dto.UserRead{
		ID:        u.ID,
		DNI:       u.DNI,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Register creates a new user after checking DNI and email uniqueness.
func (s *Service) Register(
	ctx context.Context,
	create dto.UserCreate,
) (view *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		taken, err := users.ExistsByDNI(ctx, create.DNI)
		if err != nil {
			return err
		}
		if taken {
			return domain.NewDuplicated("DNI", create.DNI)
		}
		taken, err = users.ExistsByEmail(ctx, create.Email)
		if err != nil {
			return err
		}
		if taken {
			return domain.NewDuplicated("Email", create.Email)
		}
		u, err := domainuser.New(create.DNI, create.Username, create.Email, create.Password)
		if err != nil {
			return err
		}
		if err = users.Create(ctx, u); err != nil {
			return err
		}
		view = toUserRead(u)
		return nil
	})
	if err != nil {
		s.logger.Error("user registration failed", "error", err)
		return nil, err
	}
	s.logger.Info("user registered", "userID", view.ID)
	return view, nil
}

// Get retrieves a user by id.
func (s *Service) Get(
	ctx context.Context,
	id uuid.UUID,
) (view *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NewNotFound(domainuser.Entity, id.String())
		}
		view = toUserRead(u)
		return nil
	})
	return
}

// List returns all users.
func (s *Service) List(
	ctx context.Context,
) (views []*dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		all, err := users.List(ctx)
		if err != nil {
			return err
		}
		views = make([]*dto.UserRead, 0, len(all))
		for _, u := range all {
			views = append(views, toUserRead(u))
		}
		return nil
	})
	return
}

// Update applies a partial update to a user. A new password is hashed
// before it reaches the store.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.UserUpdate,
) (view *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NewNotFound(domainuser.EntityForUpdate, id.String())
		}
		if update.Password != nil {
			hashed, err := utils.HashPassword(*update.Password)
			if err != nil {
				return err
			}
			update.Password = &hashed
		}
		if err = users.Update(ctx, id, update); err != nil {
			return err
		}
		u, err = users.Get(ctx, id)
		if err != nil {
			return err
		}
		view = toUserRead(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user updated", "userID", id)
	return view, nil
}

// Delete removes a user and, through the store cascade, their accounts.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		ok, err := users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFound(domainuser.Entity, id.String())
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("user deleted", "userID", id)
	return nil
}
