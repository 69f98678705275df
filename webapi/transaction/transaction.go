// Package transaction exposes the HTTP surface for transfers and the
// ledger.
package transaction

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/mvallejo/bancore/pkg/dto"
	accountsvc "github.com/mvallejo/bancore/pkg/service/account"
	"github.com/mvallejo/bancore/webapi/common"
)

// TransferRequest is the payload for moving funds between two accounts.
type TransferRequest struct {
	SourceAccountNumber string  `json:"source_account_number" validate:"required"`
	TargetAccountNumber string  `json:"target_account_number" validate:"required"`
	Amount              float64 `json:"amount" validate:"required"`
}

// Routes registers transaction endpoints.
//
//   - POST /api/transactions/transfer                  : Transfer between accounts.
//   - GET  /api/transactions/history/:accountNumber    : Account movement history.
//   - GET  /api/transactions/:id                       : Get one ledger record.
func Routes(app *fiber.App, svc *accountsvc.Service) {
	app.Post("/api/transactions/transfer", Transfer(svc))
	app.Get("/api/transactions/history/:accountNumber", GetHistory(svc))
	app.Get("/api/transactions/:id", GetTransaction(svc))
}

// Transfer moves funds between two accounts atomically.
func Transfer(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.Transfer(c.UserContext(), dto.TransferRequest{
			SourceAccountNumber: input.SourceAccountNumber,
			TargetAccountNumber: input.TargetAccountNumber,
			Amount:              input.Amount,
		})
		if err != nil {
			log.Errorf("Transfer failed: %v", err)
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", tx)
	}
}

// GetHistory returns the account's movements, outgoing first, each group
// in persistence order.
func GetHistory(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		history, err := svc.GetHistory(c.UserContext(), c.Params("accountNumber"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get history", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History retrieved", history)
	}
}

// GetTransaction returns one ledger record by id.
func GetTransaction(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		}
		tx, err := svc.GetTransaction(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction retrieved", tx)
	}
}
