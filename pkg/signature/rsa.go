// Package signature implements RSA keypair generation and digest-then-sign
// signatures (SHA-256, PKCS#1 v1.5) over string messages.
package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

const (
	DefaultKeyBits = 2048
	minKeyBits     = 2048
)

var (
	ErrKeyGeneration = errors.New("failed to generate key pair")
	ErrInvalidKey    = errors.New("invalid key material")
)

// Outcome is the tagged result of a signature check.
type Outcome int

const (
	Verified Outcome = iota
	Mismatch
	MalformedKey
	MalformedSignature
)

func (o Outcome) String() string {
	switch o {
	case Verified:
		return "verified"
	case Mismatch:
		return "mismatch"
	case MalformedKey:
		return "malformed key"
	case MalformedSignature:
		return "malformed signature"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// KeyPair holds PEM encoded key material.
type KeyPair struct {
	PrivateKey []byte
	PublicKey  []byte
}

// Option configures an RSA signer.
type Option func(*RSA)

// WithRandom replaces the entropy source used for key generation.
func WithRandom(r io.Reader) Option {
	return func(s *RSA) {
		s.random = r
	}
}

// RSA generates keys and signs messages. It holds no key state and is safe for concurrent use.
type RSA struct {
	bits   int
	random io.Reader
}

// NewRSA initializes an RSA signer producing keys of the given modulus size.
func NewRSA(bits int, opts ...Option) (*RSA, error) {
	if bits < minKeyBits {
		return nil, fmt.Errorf("%w: modulus must be at least %d bits, got %d", ErrKeyGeneration, minKeyBits, bits)
	}

	s := &RSA{
		bits:   bits,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RSA) Bits() int {
	return s.bits
}

// GenerateKeyPair creates a fresh, independent key pair.
func (s *RSA) GenerateKeyPair() (*KeyPair, error) {
	if s.random == nil {
		return nil, fmt.Errorf("%w: no random source", ErrKeyGeneration)
	}

	key, err := rsa.GenerateKey(s.random, s.bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	private, err := EncodePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	public, err := EncodePublicKey(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	return &KeyPair{
		PrivateKey: private,
		PublicKey:  public,
	}, nil
}

// Sign signs the SHA-256 digest of message with the PEM private key.
func (s *RSA) Sign(privateKey []byte, message string) ([]byte, error) {
	key, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	hashed := sha256.Sum256([]byte(message))
	sig, err := rsa.SignPKCS1v15(nil, key, crypto.SHA256, hashed[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return sig, nil
}

// Verify reports whether sig is a valid signature of message under the PEM public key.
// Malformed input yields false.
func (s *RSA) Verify(publicKey []byte, message string, sig []byte) bool {
	return s.Check(publicKey, message, sig) == Verified
}

// Check verifies like Verify but tells malformed input apart from a mismatch.
func (s *RSA) Check(publicKey []byte, message string, sig []byte) Outcome {
	key, err := ParsePublicKey(publicKey)
	if err != nil {
		return MalformedKey
	}
	if len(sig) != key.Size() {
		return MalformedSignature
	}

	hashed := sha256.Sum256([]byte(message))
	if err := rsa.VerifyPKCS1v15(key, crypto.SHA256, hashed[:], sig); err != nil {
		return Mismatch
	}
	return Verified
}
