// Package account exposes the HTTP surface for accounts and cash
// movements.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/dto"
	accountsvc "github.com/mvallejo/bancore/pkg/service/account"
	"github.com/mvallejo/bancore/webapi/common"
)

// Routes registers account endpoints.
//
//   - POST   /api/accounts           : Open a new account.
//   - GET    /api/accounts           : List accounts.
//   - GET    /api/accounts/:id       : Get an account by id.
//   - GET    /api/accounts/number/:accountNumber : Get an account by number.
//   - PUT    /api/accounts/:id       : Override the account balance.
//   - DELETE /api/accounts/:id       : Delete an account.
//   - POST   /api/accounts/deposit   : Deposit cash into an account.
//   - POST   /api/accounts/withdraw  : Withdraw cash from an account.
func Routes(app *fiber.App, svc *accountsvc.Service) {
	app.Post("/api/accounts", CreateAccount(svc))
	app.Get("/api/accounts", ListAccounts(svc))
	app.Get("/api/accounts/number/:accountNumber", GetAccountByNumber(svc))
	app.Post("/api/accounts/deposit", Deposit(svc))
	app.Post("/api/accounts/withdraw", Withdraw(svc))
	app.Get("/api/accounts/:id", GetAccount(svc))
	app.Put("/api/accounts/:id", UpdateAccount(svc))
	app.Delete("/api/accounts/:id", DeleteAccount(svc))
}

// CreateAccount opens an account for an existing user, generating its
// account number.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		a, err := svc.CreateAccount(c.UserContext(), dto.AccountCreate{
			UserID:  userID,
			Balance: input.Balance,
		})
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", a)
	}
}

// ListAccounts returns all accounts.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := svc.ListAccounts(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts retrieved", accounts)
	}
}

// GetAccount returns one account by id.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		a, err := svc.GetAccount(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account retrieved", a)
	}
}

// GetAccountByNumber returns one account by its account number.
func GetAccountByNumber(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.GetAccountByNumber(c.UserContext(), c.Params("accountNumber"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account retrieved", a)
	}
}

// UpdateAccount overrides the account balance without producing a ledger
// record.
func UpdateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.UpdateAccount(c.UserContext(), id, dto.AccountUpdate{
			Balance: input.Balance,
		})
		if err != nil {
			log.Errorf("Failed to update account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", a)
	}
}

// DeleteAccount removes an account. Its ledger records are preserved.
func DeleteAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		if err := svc.DeleteAccount(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", nil)
	}
}

// Deposit adds cash to an account.
func Deposit(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[MovementRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Deposit(c.UserContext(), input.AccountNumber, input.Amount)
		if err != nil {
			log.Errorf("Deposit failed: %v", err)
			return common.ProblemDetailsJSON(c, "Deposit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", a)
	}
}

// Withdraw removes cash from an account.
func Withdraw(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[MovementRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Withdraw(c.UserContext(), input.AccountNumber, input.Amount)
		if err != nil {
			log.Errorf("Withdrawal failed: %v", err)
			return common.ProblemDetailsJSON(c, "Withdrawal failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", a)
	}
}
