package tcp

import (
	"bufio"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"powsign/internal/domain"
	"powsign/internal/retry"
	"powsign/internal/usecases"
	"powsign/pkg/signature"
)

type Client struct {
	cfg              *Config
	powUsecase       usecases.PowUsecase
	signatureUsecase usecases.SignatureUsecase
	logger           Logger
}

type Config struct {
	ServerAddr     string
	Sessions       int
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	MaxMessageSize int
}

type Logger interface {
	Errorw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
}

// Verification is the client side check of a signed proof.
type Verification struct {
	Proof    *domain.SignedProof
	Genuine  bool // signature verified against the returned digest
	Tampered bool // signature verified against usecases.TamperedMessage
}

func NewClient(
	cfg *Config,
	powUsecase usecases.PowUsecase,
	signatureUsecase usecases.SignatureUsecase,
	logger Logger,
) *Client {
	return &Client{
		cfg:              cfg,
		powUsecase:       powUsecase,
		signatureUsecase: signatureUsecase,
		logger:           logger,
	}
}

// Start runs the configured number of sessions concurrently and returns the joined errors.
func (c *Client) Start(ctx context.Context) error {
	sessions := c.cfg.Sessions
	if sessions < 1 {
		sessions = 1
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(session int) {
			defer wg.Done()

			verification, err := c.Prove(ctx)
			if err != nil {
				c.logger.Errorw("session error", "session", session, "error", err)
				mu.Lock()
				errs = append(errs, NewClientError("Start", err, "session failed"))
				mu.Unlock()
				return
			}

			c.logger.Infow("signed proof received",
				"session", session,
				"nonce", verification.Proof.Nonce,
				"digest", verification.Proof.Digest,
				"signature_verified", verification.Genuine,
				"tampered_verified", verification.Tampered)
		}(i)
	}

	wg.Wait()
	return errors.Join(errs...)
}

// Prove runs one session, retrying retryable failures, and verifies the signed proof.
func (c *Client) Prove(ctx context.Context) (*Verification, error) {
	var proof *domain.SignedProof

	err := retry.Do(ctx, retry.Config{
		MaxRetries:    c.cfg.RetryAttempts,
		Delays:        []time.Duration{c.cfg.RetryDelay},
		IsRetryableFn: IsRetryableError,
	}, func(attempt int) error {
		if attempt > 0 {
			c.logger.Infow("retrying session",
				"attempt", attempt+1,
				"max_attempts", c.cfg.RetryAttempts+1)
		}

		var err error
		proof, err = c.executeSession(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if IsRetryableError(err) {
			return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
		}
		return nil, err
	}

	return &Verification{
		Proof:    proof,
		Genuine:  c.signatureUsecase.Verify(proof.PublicKey, proof.Digest, proof.Signature),
		Tampered: c.signatureUsecase.Verify(proof.PublicKey, usecases.TamperedMessage, proof.Signature),
	}, nil
}

func (c *Client) executeSession(ctx context.Context) (*domain.SignedProof, error) {
	connectCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	conn, err := c.connect(connectCtx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	sessionCtx, cancelSession := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancelSession()

	session := &ClientSession{
		conn:    conn,
		reader:  bufio.NewReaderSize(conn, c.maxMessageSize()),
		writer:  bufio.NewWriter(conn),
		client:  c,
		context: sessionCtx,
	}

	return session.Execute()
}

func (c *Client) connect(ctx context.Context) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.cfg.ServerAddr)
	if err != nil {
		return nil, NewClientError("connect", ErrConnectionFailed, err.Error())
	}

	if err := conn.SetDeadline(time.Now().Add(c.cfg.RequestTimeout)); err != nil {
		conn.Close()
		return nil, NewClientError("connect", err, "setting timeout failed")
	}

	return conn, nil
}

func (c *Client) maxMessageSize() int {
	if c.cfg.MaxMessageSize > 0 {
		return c.cfg.MaxMessageSize
	}
	return 4096
}

type ClientSession struct {
	conn    net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	client  *Client
	context context.Context
}

// Execute receives a challenge, solves it and reads back the signed proof.
func (s *ClientSession) Execute() (*domain.SignedProof, error) {
	line, err := s.readLine("receiveChallenge")
	if err != nil {
		return nil, err
	}
	challenge, err := parseChallenge(line)
	if err != nil {
		return nil, err
	}

	s.client.logger.Debugw("challenge received", "seed", challenge.Seed, "difficulty", challenge.Difficulty)

	result, err := s.client.powUsecase.Solve(s.context, challenge)
	if err != nil {
		return nil, NewClientError("solveChallenge", ErrSolutionNotFound, err.Error())
	}

	s.client.logger.Debugw("challenge solved",
		"nonce", result.Nonce,
		"attempts", result.Attempts,
		"elapsed", result.Elapsed)

	if err := s.sendSolution(result.Nonce); err != nil {
		return nil, err
	}

	response, err := s.readLine("readResponse")
	if err != nil {
		return nil, err
	}

	proof, err := parseResponse(response)
	if err != nil {
		return nil, err
	}
	proof.Challenge = *challenge
	proof.Nonce = result.Nonce

	if proof.Digest != result.Digest {
		return nil, NewClientError("readResponse", ErrInvalidProtocol, "digest does not match the solved challenge")
	}

	return proof, nil
}

func (s *ClientSession) sendSolution(nonce uint64) error {
	errCh := make(chan error, 1)

	go func() {
		if _, err := s.writer.WriteString(strconv.FormatUint(nonce, 10) + "\n"); err != nil {
			errCh <- NewClientError("sendSolution", err, "sending solution failed")
			return
		}
		if err := s.writer.Flush(); err != nil {
			errCh <- NewClientError("sendSolution", ErrConnectionClosed, err.Error())
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-s.context.Done():
		return NewClientError("sendSolution", ErrWriteTimeout, "write timeout")
	}
}

func (s *ClientSession) readLine(op string) (string, error) {
	resultCh := make(chan struct {
		line string
		err  error
	}, 1)

	go func() {
		line, err := s.reader.ReadSlice('\n')
		resultCh <- struct {
			line string
			err  error
		}{string(line), err}
	}()

	select {
	case result := <-resultCh:
		if result.err != nil {
			switch {
			case errors.Is(result.err, bufio.ErrBufferFull):
				return "", NewClientError(op, ErrInvalidMessageSize, "message exceeds limit")
			case isTimeout(result.err):
				return "", NewClientError(op, ErrReadTimeout, "connection deadline exceeded")
			default:
				return "", NewClientError(op, ErrConnectionClosed, result.err.Error())
			}
		}
		return strings.TrimSpace(result.line), nil
	case <-s.context.Done():
		return "", NewClientError(op, ErrReadTimeout, "read timeout")
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func parseChallenge(line string) (*domain.Challenge, error) {
	if strings.HasPrefix(line, "ERROR:") {
		return nil, parseError(line)
	}

	parts := strings.SplitN(line, ":", 3)
	if len(parts) != 3 || parts[0] != "CHALLENGE" {
		return nil, NewClientError("receiveChallenge", ErrInvalidChallenge, "unexpected challenge format")
	}

	difficulty, err := strconv.Atoi(parts[1])
	if err != nil || difficulty < 0 {
		return nil, NewClientError("receiveChallenge", ErrInvalidChallenge, "invalid difficulty")
	}

	return &domain.Challenge{
		Seed:       parts[2],
		Difficulty: difficulty,
	}, nil
}

func parseResponse(response string) (*domain.SignedProof, error) {
	if strings.HasPrefix(response, "ERROR:") {
		return nil, parseError(response)
	}

	if !strings.HasPrefix(response, "SUCCESS:") {
		return nil, NewClientError("handleResponse", ErrInvalidProtocol, "invalid response format")
	}

	parts := strings.Split(strings.TrimPrefix(response, "SUCCESS:"), ":")
	if len(parts) != 3 {
		return nil, NewClientError("handleResponse", ErrInvalidProtocol, "invalid success format")
	}

	sig, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, NewClientError("handleResponse", ErrInvalidProtocol, "invalid signature encoding")
	}
	der, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, NewClientError("handleResponse", ErrInvalidProtocol, "invalid public key encoding")
	}
	publicKey, err := signature.PublicKeyFromDER(der)
	if err != nil {
		return nil, NewClientError("handleResponse", ErrInvalidProtocol, err.Error())
	}

	return &domain.SignedProof{
		Digest:    parts[0],
		Signature: sig,
		PublicKey: publicKey,
	}, nil
}

func parseError(response string) error {
	parts := strings.SplitN(strings.TrimPrefix(response, "ERROR:"), ":", 2)
	if len(parts) != 2 {
		return NewClientError("handleResponse", ErrInvalidProtocol, "invalid error format")
	}
	return NewClientError("handleResponse", &ServerResponseError{Code: parts[0]}, parts[1])
}
