package hashcash

/*
	Hashcash-style proof of work over SHA-256.

	A seed is extended with a decimal nonce and hashed. The work is done once the
	lowercase hex digest of seed||nonce starts with `difficulty` zero characters.
	Every extra zero multiplies the expected number of attempts by 16, while
	verifying a claimed nonce costs one hash.

	Search always returns the smallest nonce that satisfies the difficulty, no
	matter how many workers take part. Workers own disjoint residue classes of the
	nonce space (worker i probes i, i+W, i+2W, ...) and keep going until their
	next nonce is not smaller than the best hit found so far.

	The nonce space is every uint64 below math.MaxUint64. Callers that cannot
	afford an effectively unbounded loop set an attempt budget or cancel the
	context.
*/

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	tokenLength   = 16
	maxDifficulty = sha256.Size * 2 // hex digits in a SHA-256 digest
	checkInterval = 1 << 12         // attempts between context checks
)

var (
	ErrInvalidDifficulty = errors.New("difficulty out of acceptable range")
	ErrGenerateRandom    = errors.New("failed to generate random challenge")
	ErrNotFound          = errors.New("no solution within the search budget")
	ErrCancelled         = errors.New("solution search cancelled")
)

// Result describes a successful search.
type Result struct {
	Nonce    uint64
	Digest   string
	Elapsed  time.Duration
	Input    string
	Attempts uint64
}

// Option configures a ProofOfWork.
type Option func(*ProofOfWork)

// WithMaxAttempts limits the search to nonces below n. Zero means every nonce below math.MaxUint64.
func WithMaxAttempts(n uint64) Option {
	return func(pow *ProofOfWork) {
		pow.maxAttempts = n
	}
}

// WithWorkers sets the number of goroutines probing the nonce space.
func WithWorkers(n int) Option {
	return func(pow *ProofOfWork) {
		if n > 0 {
			pow.workers = n
		}
	}
}

// ProofOfWork encapsulates a proof-of-work mechanism.
type ProofOfWork struct {
	difficultyLevel int
	maxAttempts     uint64
	workers         int
}

// NewProofOfWork initializes a ProofOfWork with a specified difficulty.
// Difficulties of 64 and above are rejected: only the all-zero digest could
// satisfy them and the search would never end in practice.
func NewProofOfWork(difficulty int, opts ...Option) (*ProofOfWork, error) {
	if difficulty < 0 || difficulty >= maxDifficulty {
		return nil, fmt.Errorf("%w: difficulty must be between 0 and %d", ErrInvalidDifficulty, maxDifficulty-1)
	}

	pow := &ProofOfWork{
		difficultyLevel: difficulty,
		workers:         1,
	}
	for _, opt := range opts {
		opt(pow)
	}
	return pow, nil
}

// GenerateChallenge creates a new hex seed using cryptographically secure random numbers.
func (pow *ProofOfWork) GenerateChallenge() (string, error) {
	bytes := make([]byte, tokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerateRandom, err)
	}
	return hex.EncodeToString(bytes), nil
}

func (pow *ProofOfWork) GetDifficulty() int {
	return pow.difficultyLevel
}

// Verify checks if the nonce solves the seed at the configured difficulty.
func (pow *ProofOfWork) Verify(seed string, nonce uint64) bool {
	return HasLeadingZeros(Digest(Input(seed, nonce)), pow.difficultyLevel)
}

// Search finds the smallest nonce whose digest meets the difficulty.
func (pow *ProofOfWork) Search(ctx context.Context, seed string) (*Result, error) {
	start := time.Now()

	limit := uint64(math.MaxUint64)
	if pow.maxAttempts > 0 {
		limit = pow.maxAttempts
	}

	var (
		best     atomic.Uint64
		attempts atomic.Uint64
		found    atomic.Bool
	)
	best.Store(math.MaxUint64)

	prefix := strings.Repeat("0", pow.difficultyLevel)
	step := uint64(pow.workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < pow.workers; w++ {
		first := uint64(w)
		g.Go(func() error {
			var local uint64
			defer func() { attempts.Add(local) }()

			for nonce := first; nonce < limit && nonce < best.Load(); nonce += step {
				if local%checkInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				local++

				if strings.HasPrefix(Digest(Input(seed, nonce)), prefix) {
					found.Store(true)
					storeMin(&best, nonce)
					return nil
				}

				if nonce > math.MaxUint64-step {
					return nil
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	if !found.Load() {
		return nil, fmt.Errorf("%w: %d attempts at difficulty %d", ErrNotFound, attempts.Load(), pow.difficultyLevel)
	}

	nonce := best.Load()
	input := Input(seed, nonce)
	return &Result{
		Nonce:    nonce,
		Digest:   Digest(input),
		Elapsed:  time.Since(start),
		Input:    input,
		Attempts: attempts.Load(),
	}, nil
}

func storeMin(v *atomic.Uint64, n uint64) {
	for {
		cur := v.Load()
		if n >= cur || v.CompareAndSwap(cur, n) {
			return
		}
	}
}

// Input builds the probed string for a nonce.
func Input(seed string, nonce uint64) string {
	return seed + strconv.FormatUint(nonce, 10)
}

// Digest returns the lowercase hex SHA-256 of input.
func Digest(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

// HasLeadingZeros reports whether digest starts with difficulty '0' characters.
func HasLeadingZeros(digest string, difficulty int) bool {
	if difficulty < 0 || difficulty > len(digest) {
		return false
	}
	return strings.HasPrefix(digest, strings.Repeat("0", difficulty))
}
