package usecases

//go:generate mockgen -source=pow.go -destination=./mocks/pow_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"

	"powsign/internal/domain"
	"powsign/pkg/pow/hashcash"
)

// PowUsecase defines the interface for Proof of Work usecase.
type PowUsecase interface {
	GenerateChallenge() (*domain.Challenge, error)
	Solve(ctx context.Context, challenge *domain.Challenge) (*domain.SearchResult, error)
	Validate(challenge *domain.Challenge, nonce string) (string, bool)
}

// PowOptions tune the search. Zero values mean one worker and no attempt budget.
type PowOptions struct {
	Workers     int
	MaxAttempts uint64
}

type powUsecaseImpl struct {
	hashcash *hashcash.ProofOfWork
	opts     PowOptions
}

// NewPowUsecase initializes the powUsecaseImpl with the specified difficulty.
func NewPowUsecase(difficulty int, opts PowOptions) (PowUsecase, error) {
	hashcash, err := hashcash.NewProofOfWork(difficulty, opts.searchOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hashcash: %w", err)
	}
	return &powUsecaseImpl{
		hashcash: hashcash,
		opts:     opts,
	}, nil
}

func (o PowOptions) searchOptions() []hashcash.Option {
	return []hashcash.Option{
		hashcash.WithWorkers(o.Workers),
		hashcash.WithMaxAttempts(o.MaxAttempts),
	}
}

// GenerateChallenge creates a new random seed at the configured difficulty.
func (p *powUsecaseImpl) GenerateChallenge() (*domain.Challenge, error) {
	seed, err := p.hashcash.GenerateChallenge()
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenge: %w", err)
	}
	return &domain.Challenge{
		Seed:       seed,
		Difficulty: p.hashcash.GetDifficulty(),
	}, nil
}

// Solve searches for the smallest nonce solving the challenge. The challenge
// carries its own difficulty, which may differ from the usecase default.
func (p *powUsecaseImpl) Solve(ctx context.Context, challenge *domain.Challenge) (*domain.SearchResult, error) {
	pow, err := p.forDifficulty(challenge.Difficulty)
	if err != nil {
		return nil, err
	}

	result, err := pow.Search(ctx, challenge.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to solve challenge: %w", err)
	}

	return &domain.SearchResult{
		Nonce:    result.Nonce,
		Digest:   result.Digest,
		Elapsed:  result.Elapsed,
		Input:    result.Input,
		Attempts: result.Attempts,
	}, nil
}

// Validate checks the decimal nonce against the challenge and returns the digest it produces.
// It returns false if the nonce is malformed or does not meet the difficulty.
func (p *powUsecaseImpl) Validate(challenge *domain.Challenge, nonce string) (string, bool) {
	if challenge == nil || nonce == "" {
		return "", false
	}

	n, err := strconv.ParseUint(nonce, 10, 64)
	if err != nil || strconv.FormatUint(n, 10) != nonce {
		return "", false
	}

	digest := hashcash.Digest(hashcash.Input(challenge.Seed, n))
	if !hashcash.HasLeadingZeros(digest, challenge.Difficulty) {
		return "", false
	}
	return digest, true
}

func (p *powUsecaseImpl) forDifficulty(difficulty int) (*hashcash.ProofOfWork, error) {
	if difficulty == p.hashcash.GetDifficulty() {
		return p.hashcash, nil
	}
	pow, err := hashcash.NewProofOfWork(difficulty, p.opts.searchOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hashcash: %w", err)
	}
	return pow, nil
}
