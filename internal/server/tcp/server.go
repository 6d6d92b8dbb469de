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

	"github.com/google/uuid"

	"powsign/internal/domain"
	"powsign/internal/usecases"
	"powsign/pkg/signature"
)

type Server struct {
	cfg              *Config
	powUsecase       usecases.PowUsecase
	signatureUsecase usecases.SignatureUsecase
	keyPair          *domain.KeyPair
	publicKeyDER     []byte
	logger           Logger
	wg               sync.WaitGroup
}

type Config struct {
	Address   string
	KeepAlive time.Duration
	Deadline  time.Duration
}

type Logger interface {
	Errorw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
}

// NewServer creates a server that signs solved digests with keyPair.
func NewServer(
	cfg *Config,
	powUsecase usecases.PowUsecase,
	signatureUsecase usecases.SignatureUsecase,
	keyPair *domain.KeyPair,
	logger Logger,
) (*Server, error) {
	public, err := signature.ParsePublicKey(keyPair.PublicKey)
	if err != nil {
		return nil, NewConnectionError("NewServer", err, "parsing public key failed")
	}
	der, err := signature.PublicKeyDER(public)
	if err != nil {
		return nil, NewConnectionError("NewServer", err, "encoding public key failed")
	}

	return &Server{
		cfg:              cfg,
		powUsecase:       powUsecase,
		signatureUsecase: signatureUsecase,
		keyPair:          keyPair,
		publicKeyDER:     der,
		logger:           logger,
	}, nil
}

func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{
		KeepAlive: s.cfg.KeepAlive,
	}

	listener, err := lc.Listen(ctx, "tcp", s.cfg.Address)
	if err != nil {
		return NewConnectionError("Run", err, "failed to start listener")
	}

	s.logger.Infow("server started", "address", listener.Addr().String())

	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done. The listener is
// closed on return and in-flight sessions are awaited.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	defer s.wg.Wait()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Infow("server stopped")
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				s.logger.Debugw("listener closed")
				return nil
			}
			s.logger.Errorw("accept failed", "error", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(ctx, conn)
		}()
	}
}

func (s *Server) handleConnection(parent context.Context, conn net.Conn) {
	sessionID := uuid.NewString()

	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Errorw("connection close failed",
				"session", sessionID,
				"error", NewConnectionError("handleConnection", err, "cleanup failed"))
		}
	}()

	ctx, cancel := context.WithTimeout(parent, s.cfg.Deadline)
	defer cancel()

	if err := conn.SetDeadline(time.Now().Add(s.cfg.Deadline)); err != nil {
		s.logger.Errorw("set deadline failed",
			"session", sessionID,
			"error", NewConnectionError("handleConnection", err, "setting timeout failed"))
		return
	}

	session := &Session{
		id:      sessionID,
		conn:    conn,
		reader:  bufio.NewReader(conn),
		writer:  bufio.NewWriter(conn),
		server:  s,
		context: ctx,
	}

	s.logger.Debugw("session opened", "session", sessionID, "remote", conn.RemoteAddr().String())

	if err := session.Handle(); err != nil {
		s.handleError(sessionID, session.writer, err)
	}
}

type Session struct {
	id      string
	conn    net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	server  *Server
	context context.Context
}

// Handle runs one challenge, solution and signed proof exchange.
func (s *Session) Handle() error {
	challenge, err := s.sendChallenge()
	if err != nil {
		return fmt.Errorf("failed to send challenge: %w", err)
	}

	nonce, err := s.readSolution()
	if err != nil {
		return fmt.Errorf("failed to read solution: %w", err)
	}

	if err := s.validateAndRespond(challenge, nonce); err != nil {
		return fmt.Errorf("failed to validate and respond: %w", err)
	}

	return nil
}

func (s *Session) sendChallenge() (*domain.Challenge, error) {
	challenge, err := s.server.powUsecase.GenerateChallenge()
	if err != nil {
		return nil, NewConnectionError("sendChallenge", ErrChallengeFailed, err.Error())
	}

	if err := s.write(formatChallenge(challenge)); err != nil {
		if IsTimeoutError(err) {
			return nil, NewConnectionError("sendChallenge", err, "challenge delivery")
		}
		return nil, NewConnectionError("sendChallenge", ErrChallengeDelivery, err.Error())
	}

	s.server.logger.Infow("challenge sent",
		"session", s.id,
		"seed", challenge.Seed,
		"difficulty", challenge.Difficulty)

	return challenge, nil
}

func (s *Session) readSolution() (string, error) {
	resultCh := make(chan struct {
		line string
		err  error
	}, 1)

	go func() {
		line, err := s.reader.ReadString('\n')
		resultCh <- struct {
			line string
			err  error
		}{line, err}
	}()

	select {
	case result := <-resultCh:
		if result.err != nil {
			var netErr net.Error
			if errors.As(result.err, &netErr) && netErr.Timeout() {
				return "", NewConnectionError("readSolution", ErrReadTimeout, "connection deadline exceeded")
			}
			return "", NewConnectionError("readSolution", ErrConnectionClosed, result.err.Error())
		}
		return parseSolution(result.line)
	case <-s.context.Done():
		return "", NewConnectionError("readSolution", ErrReadTimeout, "context deadline exceeded")
	}
}

func (s *Session) validateAndRespond(challenge *domain.Challenge, nonce string) error {
	digest, ok := s.server.powUsecase.Validate(challenge, nonce)
	if !ok {
		return NewConnectionError("validateAndRespond", ErrInvalidSolution, "nonce "+nonce)
	}

	sig, err := s.server.signatureUsecase.Sign(s.server.keyPair.PrivateKey, digest)
	if err != nil {
		return NewConnectionError("validateAndRespond", ErrSigningFailed, err.Error())
	}

	if err := s.write(formatSuccessResponse(digest, sig, s.server.publicKeyDER)); err != nil {
		return NewConnectionError("validateAndRespond", err, "write response failed")
	}

	s.server.logger.Infow("proof signed",
		"session", s.id,
		"nonce", nonce,
		"digest", digest)

	return nil
}

func (s *Session) write(message string) error {
	errCh := make(chan error, 1)
	go func() {
		_, err := s.writer.WriteString(message)
		if err == nil {
			err = s.writer.Flush()
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-s.context.Done():
		return ErrWriteTimeout
	}
}

func (s *Server) handleError(sessionID string, writer *bufio.Writer, err error) {
	response := ToErrorResponse(err)
	s.logger.Errorw("client error",
		"session", sessionID,
		"code", response.Code,
		"message", response.Message,
		"error", err)

	// The timed out write may still own the writer.
	if errors.Is(err, ErrWriteTimeout) {
		return
	}

	if err := sendErrorResponse(writer, response); err != nil {
		s.logger.Debugw("failed to send error response", "session", sessionID, "error", err)
	}
}

// Helper functions

func formatChallenge(challenge *domain.Challenge) string {
	return fmt.Sprintf("CHALLENGE:%d:%s\n", challenge.Difficulty, challenge.Seed)
}

func parseSolution(line string) (string, error) {
	nonce := strings.TrimSpace(line)
	if nonce == "" {
		return "", NewConnectionError("parseSolution", ErrSolutionFormat, "empty solution")
	}
	if strings.ContainsAny(nonce, ": \t") {
		return "", NewConnectionError("parseSolution", ErrInvalidProtocol, "expected a bare nonce line")
	}
	if _, err := strconv.ParseUint(nonce, 10, 64); err != nil {
		return "", NewConnectionError("parseSolution", ErrSolutionFormat, "nonce is not a decimal number")
	}
	return nonce, nil
}

func formatSuccessResponse(digest string, sig, publicKeyDER []byte) string {
	return fmt.Sprintf("SUCCESS:%s:%s:%s\n",
		digest,
		base64.StdEncoding.EncodeToString(sig),
		base64.StdEncoding.EncodeToString(publicKeyDER))
}

func sendErrorResponse(writer *bufio.Writer, response ErrorResponse) error {
	_, err := writer.WriteString(fmt.Sprintf("ERROR:%s:%s\n", response.Code, response.Message))
	if err != nil {
		return err
	}
	return writer.Flush()
}
