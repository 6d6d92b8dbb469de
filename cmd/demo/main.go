package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"powsign/config"
	"powsign/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg, err := config.LoadDemoConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	parseFlags(cfg)

	if err := app.RunDemo(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("failed to run demo: %v", err)
	}
}

// parseFlags overrides configuration with the flags that were set explicitly.
func parseFlags(cfg *config.DemoConfig) {
	flags := pflag.NewFlagSet("demo", pflag.ExitOnError)

	nickname := flags.StringP("nickname", "n", cfg.Demo.Nickname, "seed for the proof of work, prompted when empty")
	difficulties := flags.IntSliceP("difficulty", "d", cfg.Demo.Difficulties, "leading zero hex digits required, repeatable")
	workers := flags.IntP("workers", "w", cfg.Pow.Workers, "goroutines searching the nonce space")
	maxAttempts := flags.Uint64("max-attempts", cfg.Pow.MaxAttempts, "nonce budget, 0 for unbounded")
	bits := flags.IntP("bits", "b", cfg.Signature.KeyBits, "RSA modulus size")
	level := flags.StringP("log-level", "l", cfg.Log.Level, "log level")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected argument: %s\n", flags.Arg(0))
		os.Exit(1)
	}

	cfg.Demo.Nickname = *nickname
	cfg.Demo.Difficulties = *difficulties
	cfg.Pow.Workers = *workers
	cfg.Pow.MaxAttempts = *maxAttempts
	cfg.Signature.KeyBits = *bits
	cfg.Log.Level = *level
}
