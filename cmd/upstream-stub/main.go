// Command upstream-stub runs an in-memory stand-in for the finance backend.
// It implements the slice of the REST contract the gateway talks to:
// password login, profile lookup, and subscription management. Use it for
// local development and integration testing when the real backend is not
// available.
package main

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/cfo-web/finance-gateway/pkg/logger"
)

type stubConfig struct {
	Port      string `env:"STUB_PORT,  default=8000"`
	JWTSecret string `env:"STUB_JWT_SECRET, default=dev-only-secret"`
	LogLevel  string `env:"LOG_LEVEL,  default=debug"`
}

func main() {
	var cfg stubConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("upstream-stub: failed to load configuration: %v", err))
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	srv := newServer(cfg.JWTSecret, log)
	log.Info().Str("port", cfg.Port).Msg("upstream stub listening")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("upstream stub failed")
	}
}
