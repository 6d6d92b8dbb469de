package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"powsign/config"
	"powsign/internal/client/tcp"
	"powsign/internal/logger"
	"powsign/internal/usecases"
)

// RunClient started client application
func RunClient(ctx context.Context) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Initialize(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoggerInit, err)
	}
	defer log.Sync() //nolint:errcheck
	log = log.With(zap.String("service", cfg.Client.Name))

	powUsecase, err := usecases.NewPowUsecase(cfg.Pow.Difficulty, usecases.PowOptions{
		Workers:     cfg.Pow.Workers,
		MaxAttempts: cfg.Pow.MaxAttempts,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPowInit, err)
	}

	signatureUsecase, err := usecases.NewSignatureUsecase(cfg.Signature.KeyBits)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSignatureInit, err)
	}

	client := tcp.NewClient(
		&tcp.Config{
			ServerAddr:     cfg.Client.ServerAddr,
			Sessions:       cfg.Client.Sessions,
			ConnectTimeout: cfg.Client.ConnectTimeout,
			RequestTimeout: cfg.Client.RequestTimeout,
			RetryAttempts:  cfg.Client.RetryAttempts,
			RetryDelay:     cfg.Client.RetryDelay,
			MaxMessageSize: 4096,
		},
		powUsecase,
		signatureUsecase,
		log.Sugar(),
	)
	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start client: %w", err)
	}

	return nil
}
