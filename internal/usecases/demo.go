package usecases

import (
	"context"
	"fmt"

	"powsign/internal/domain"
)

// TamperedMessage is verified against the real signature to show that verification is message bound.
const TamperedMessage = "fakeHash"

// DemoUsecase runs the search, sign and verify flow end to end.
type DemoUsecase interface {
	Run(ctx context.Context, seed string, difficulty int) (*domain.Report, error)
}

type demoUsecaseImpl struct {
	pow       PowUsecase
	signature SignatureUsecase
}

func NewDemoUsecase(pow PowUsecase, signature SignatureUsecase) DemoUsecase {
	return &demoUsecaseImpl{
		pow:       pow,
		signature: signature,
	}
}

// Run finds the digest for seed, signs it with a fresh key pair and verifies the
// signature against the digest and against TamperedMessage.
func (d *demoUsecaseImpl) Run(ctx context.Context, seed string, difficulty int) (*domain.Report, error) {
	result, err := d.pow.Solve(ctx, &domain.Challenge{Seed: seed, Difficulty: difficulty})
	if err != nil {
		return nil, err
	}

	pair, err := d.signature.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	sig, err := d.signature.Sign(pair.PrivateKey, result.Digest)
	if err != nil {
		return nil, fmt.Errorf("failed to sign digest: %w", err)
	}

	return &domain.Report{
		Result:    result,
		KeyPair:   pair,
		Signature: sig,
		Genuine:   d.signature.Verify(pair.PublicKey, result.Digest, sig),
		Tampered:  d.signature.Verify(pair.PublicKey, TamperedMessage, sig),
	}, nil
}
