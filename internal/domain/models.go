package domain

import "time"

// Challenge is a proof-of-work request: find a nonce for Seed at Difficulty.
type Challenge struct {
	Seed       string
	Difficulty int
}

// SearchResult is the outcome of a successful proof-of-work search.
type SearchResult struct {
	Nonce    uint64
	Digest   string
	Elapsed  time.Duration
	Input    string
	Attempts uint64
}

// KeyPair holds PEM encoded RSA key material.
type KeyPair struct {
	PrivateKey []byte
	PublicKey  []byte
}

// SignedProof is what the server hands back for a valid solution.
type SignedProof struct {
	Challenge Challenge
	Nonce     uint64
	Digest    string
	Signature []byte
	PublicKey []byte
}

// Report captures one search, sign and verify demonstration.
type Report struct {
	Result    *SearchResult
	KeyPair   *KeyPair
	Signature []byte
	Genuine   bool // signature checked against the real digest
	Tampered  bool // signature checked against a different message
}
