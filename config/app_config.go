package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type DBConfig struct {
	Url string `envconfig:"URL"`
}

type NatsConfig struct {
	Url     string `envconfig:"URL"`
	Subject string `envconfig:"SUBJECT" default:"bank.transactions.completed"`
}

type LogConfig struct {
	Level string `envconfig:"LEVEL" default:"info"`
}

type AppConfig struct {
	Env             string        `envconfig:"APP_ENV" default:"development"`
	Host            string        `envconfig:"APP_HOST" default:"localhost"`
	Port            int           `envconfig:"APP_PORT" default:"3000"`
	ShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"10s"`
	DB              DBConfig      `envconfig:"DATABASE"`
	Nats            NatsConfig    `envconfig:"NATS"`
	Log             LogConfig     `envconfig:"LOG"`
}

func maskDatabaseUrl(url string) string {
	if len(url) <= 12 {
		return "****"
	}
	return url[:8] + "****" + url[len(url)-4:]
}

func LoadAppConfig(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}

	if err != nil {
		logger.Warn("No .env file found or specified, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"host", cfg.Host,
		"port", cfg.Port,
		"db", maskDatabaseUrl(cfg.DB.Url),
		"nats_subject", cfg.Nats.Subject,
	)
	return &cfg, nil
}
