// Package webapi assembles the Fiber application from the service layer.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	accountsvc "github.com/mvallejo/bancore/pkg/service/account"
	usersvc "github.com/mvallejo/bancore/pkg/service/user"
	"github.com/mvallejo/bancore/webapi/account"
	"github.com/mvallejo/bancore/webapi/common"
	"github.com/mvallejo/bancore/webapi/transaction"
	"github.com/mvallejo/bancore/webapi/user"
)

// New builds the Fiber app and registers all routes.
func New(accountSvc *accountsvc.Service, userSvc *usersvc.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "bancore",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	user.Routes(app, userSvc)
	account.Routes(app, accountSvc)
	transaction.Routes(app, accountSvc)
	return app
}
