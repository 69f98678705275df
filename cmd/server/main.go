package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/charmbracelet/log"
	"github.com/mvallejo/bancore/config"
	"github.com/mvallejo/bancore/pkg/app"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	bootLogger := app.SetupLogger(config.LogConfig{Level: "info"})
	cfg, err := config.LoadAppConfig(bootLogger, ".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := app.SetupLogger(cfg.Log)

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "env", cfg.Env, "host", cfg.Host, "port", cfg.Port)
		errCh <- a.Listen()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
		return a.Shutdown()
	}
}
