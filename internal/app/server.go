package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"powsign/config"
	"powsign/internal/logger"
	"powsign/internal/server/tcp"
	"powsign/internal/usecases"
)

const (
	ErrPowInit       = "failed to initialize pow"
	ErrSignatureInit = "failed to initialize signature"
	ErrLoggerInit    = "failed to initialize logger"
)

// RunServer started server application
func RunServer(ctx context.Context) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Initialize(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoggerInit, err)
	}
	defer log.Sync() //nolint:errcheck
	log = log.With(zap.String("service", cfg.Server.Name))

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

	keyPair, err := signatureUsecase.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSignatureInit, err)
	}
	log.Info("signing key generated", zap.ByteString("public_key", keyPair.PublicKey))

	server, err := tcp.NewServer(
		&tcp.Config{
			Address:   cfg.Server.Addr,
			KeepAlive: cfg.Server.KeepAlive,
			Deadline:  cfg.Server.Deadline,
		},
		powUsecase,
		signatureUsecase,
		keyPair,
		log.Sugar(),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err = server.Run(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
