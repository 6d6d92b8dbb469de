package signature

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

const (
	pemPrivatePKCS1 = "RSA PRIVATE KEY"
	pemPrivatePKCS8 = "PRIVATE KEY"
	pemPublicPKCS1  = "RSA PUBLIC KEY"
	pemPublicPKIX   = "PUBLIC KEY"
)

// EncodePrivateKey exports key as a PKCS#8 PEM block.
func EncodePrivateKey(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemPrivatePKCS8, Bytes: der}), nil
}

// EncodePublicKey exports key as a SubjectPublicKeyInfo PEM block.
func EncodePublicKey(key *rsa.PublicKey) ([]byte, error) {
	der, err := PublicKeyDER(key)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemPublicPKIX, Bytes: der}), nil
}

// PublicKeyDER returns the PKIX DER encoding of key.
func PublicKeyDER(key *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return der, nil
}

// PublicKeyFromDER wraps a PKIX DER public key into PEM after checking it parses as RSA.
func PublicKeyFromDER(der []byte) ([]byte, error) {
	if _, err := parsePKIX(der); err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemPublicPKIX, Bytes: der}), nil
}

// ParsePrivateKey decodes a PEM private key (supports PKCS#1 and PKCS#8).
func ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}

	switch block.Type {
	case pemPrivatePKCS1:
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return key, nil
	case pemPrivatePKCS8:
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: key is not RSA (got %T)", ErrInvalidKey, parsed)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("%w: unsupported private key type %q", ErrInvalidKey, block.Type)
	}
}

// ParsePublicKey decodes a PEM public key (supports PKCS#1 and PKIX).
func ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}

	switch block.Type {
	case pemPublicPKCS1:
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return key, nil
	case pemPublicPKIX:
		return parsePKIX(block.Bytes)
	default:
		return nil, fmt.Errorf("%w: unsupported public key type %q", ErrInvalidKey, block.Type)
	}
}

func parsePKIX(der []byte) (*rsa.PublicKey, error) {
	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: key is not RSA (got %T)", ErrInvalidKey, parsed)
	}
	return key, nil
}
