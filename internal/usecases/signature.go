package usecases

//go:generate mockgen -source=signature.go -destination=./mocks/signature_mock.go -package=mocks

import (
	"fmt"

	"powsign/internal/domain"
	"powsign/pkg/signature"
)

// SignatureUsecase defines the interface for key generation, signing and verification.
type SignatureUsecase interface {
	GenerateKeyPair() (*domain.KeyPair, error)
	Sign(privateKey []byte, message string) ([]byte, error)
	Verify(publicKey []byte, message string, sig []byte) bool
}

type signatureUsecaseImpl struct {
	rsa *signature.RSA
}

// NewSignatureUsecase initializes an RSA backed SignatureUsecase with keys of the given size.
func NewSignatureUsecase(bits int) (SignatureUsecase, error) {
	rsa, err := signature.NewRSA(bits)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rsa: %w", err)
	}
	return &signatureUsecaseImpl{rsa: rsa}, nil
}

func (s *signatureUsecaseImpl) GenerateKeyPair() (*domain.KeyPair, error) {
	pair, err := s.rsa.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return &domain.KeyPair{
		PrivateKey: pair.PrivateKey,
		PublicKey:  pair.PublicKey,
	}, nil
}

func (s *signatureUsecaseImpl) Sign(privateKey []byte, message string) ([]byte, error) {
	return s.rsa.Sign(privateKey, message)
}

// Verify never fails: malformed keys or signatures and mismatched messages all return false.
func (s *signatureUsecaseImpl) Verify(publicKey []byte, message string, sig []byte) bool {
	return s.rsa.Verify(publicKey, message, sig)
}
