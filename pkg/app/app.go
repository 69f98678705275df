// Package app wires configuration, storage, messaging and services into a
// runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/mvallejo/bancore/config"
	"github.com/mvallejo/bancore/infra"
	"github.com/mvallejo/bancore/infra/events"
	"github.com/mvallejo/bancore/infra/migrations"
	infrarepo "github.com/mvallejo/bancore/infra/repository"
	accountsvc "github.com/mvallejo/bancore/pkg/service/account"
	usersvc "github.com/mvallejo/bancore/pkg/service/user"
	"github.com/mvallejo/bancore/webapi"
	"gorm.io/gorm"
)

// App holds the wired application.
type App struct {
	Config         *config.AppConfig
	Logger         *slog.Logger
	DB             *gorm.DB
	Publisher      *events.Publisher
	AccountService *accountsvc.Service
	UserService    *usersvc.Service
	Fiber          *fiber.App
}

// New loads the schema, builds the unit of work and services and
// assembles the HTTP app. The NATS publisher is optional; without a
// configured URL transactions simply are not announced.
func New(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*App, error) {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := migrations.Up(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	uow := infrarepo.NewUoW(db)

	var publisher *events.Publisher
	if cfg.Nats.Url != "" {
		publisher, err = events.NewPublisher(cfg.Nats.Url, cfg.Nats.Subject, logger)
		if err != nil {
			return nil, fmt.Errorf("connect nats: %w", err)
		}
	}

	var txPublisher accountsvc.TransactionPublisher
	if publisher != nil {
		txPublisher = publisher
	}
	accountSvc := accountsvc.NewService(uow, txPublisher, logger)
	userSvc := usersvc.New(uow, logger)

	return &App{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		Publisher:      publisher,
		AccountService: accountSvc,
		UserService:    userSvc,
		Fiber:          webapi.New(accountSvc, userSvc),
	}, nil
}

// Listen serves HTTP on the configured port, blocking until shutdown.
func (a *App) Listen() error {
	return a.Fiber.Listen(fmt.Sprintf(":%d", a.Config.Port))
}

// Shutdown stops the HTTP server and releases connections.
func (a *App) Shutdown() error {
	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.Logger.Warn("close database", "err", err)
		}
	}
	return a.Fiber.Shutdown()
}
