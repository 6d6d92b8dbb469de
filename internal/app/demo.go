package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"powsign/config"
	"powsign/internal/domain"
	"powsign/internal/logger"
	"powsign/internal/usecases"
)

var ErrNoNickname = errors.New("nickname is required")

// RunDemo prompts for a nickname when none is configured, then searches, signs
// and verifies once per configured difficulty, printing each report to out.
func RunDemo(ctx context.Context, cfg *config.DemoConfig, in io.Reader, out io.Writer) error {
	log, err := logger.Initialize(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoggerInit, err)
	}
	defer log.Sync() //nolint:errcheck

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

	nickname := cfg.Demo.Nickname
	if nickname == "" {
		if nickname, err = promptNickname(in, out); err != nil {
			return err
		}
	}

	difficulties := cfg.Demo.Difficulties
	if len(difficulties) == 0 {
		difficulties = []int{cfg.Pow.Difficulty}
	}

	demo := usecases.NewDemoUsecase(powUsecase, signatureUsecase)
	for _, difficulty := range difficulties {
		report, err := demo.Run(ctx, nickname, difficulty)
		if err != nil {
			return fmt.Errorf("demonstration at difficulty %d failed: %w", difficulty, err)
		}

		log.Debug("demonstration finished",
			zap.Int("difficulty", difficulty),
			zap.Uint64("nonce", report.Result.Nonce),
			zap.Uint64("attempts", report.Result.Attempts),
			zap.Duration("elapsed", report.Result.Elapsed))

		printReport(out, difficulty, report)
	}

	return nil
}

func promptNickname(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter nickname: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read nickname: %w", err)
	}

	nickname := strings.TrimRight(line, "\r\n")
	if nickname == "" {
		return "", ErrNoNickname
	}
	return nickname, nil
}

func printReport(out io.Writer, difficulty int, report *domain.Report) {
	fmt.Fprintf(out, "\n%d leading zeros\n", difficulty)
	fmt.Fprintf(out, "Private key:\n%s", report.KeyPair.PrivateKey)
	fmt.Fprintf(out, "Public key:\n%s", report.KeyPair.PublicKey)
	fmt.Fprintf(out, "Input: %s\n", report.Result.Input)
	fmt.Fprintf(out, "Nonce: %d\n", report.Result.Nonce)
	fmt.Fprintf(out, "Hash: %s\n", report.Result.Digest)
	fmt.Fprintf(out, "Time: %.2f seconds\n", report.Result.Elapsed.Seconds())
	fmt.Fprintf(out, "Verify hash: %s\n", verificationLine(report.Genuine))
	fmt.Fprintf(out, "Verify %q: %s\n", usecases.TamperedMessage, verificationLine(report.Tampered))
}

func verificationLine(ok bool) string {
	if ok {
		return "signature verification succeeded"
	}
	return "signature verification failed"
}
