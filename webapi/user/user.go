// Package user exposes the HTTP surface for user registration and
// management.
package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/dto"
	usersvc "github.com/mvallejo/bancore/pkg/service/user"
	"github.com/mvallejo/bancore/webapi/common"
)

// Routes registers user endpoints.
//
//   - POST   /api/users      : Register a user.
//   - GET    /api/users      : List users.
//   - GET    /api/users/:id  : Get a user.
//   - PUT    /api/users/:id  : Update a user.
//   - DELETE /api/users/:id  : Delete a user and their accounts.
func Routes(app *fiber.App, svc *usersvc.Service) {
	app.Post("/api/users", Register(svc))
	app.Get("/api/users", ListUsers(svc))
	app.Get("/api/users/:id", GetUser(svc))
	app.Put("/api/users/:id", UpdateUser(svc))
	app.Delete("/api/users/:id", DeleteUser(svc))
}

// Register creates a user. DNI and email must be unused.
func Register(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		u, err := svc.Register(c.UserContext(), dto.UserCreate{
			DNI:      input.DNI,
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			log.Errorf("Failed to register user: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to register user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", u)
	}
}

// ListUsers returns all users.
func ListUsers(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users retrieved", users)
	}
}

// GetUser returns one user by id.
func GetUser(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User retrieved", u)
	}
}

// UpdateUser applies a partial update to a user.
func UpdateUser(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateUserRequest](c)
		if input == nil {
			return err
		}
		u, err := svc.Update(c.UserContext(), id, dto.UserUpdate{
			DNI:      input.DNI,
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			log.Errorf("Failed to update user: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated", u)
	}
}

// DeleteUser removes a user together with their accounts.
func DeleteUser(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User deleted", nil)
	}
}
