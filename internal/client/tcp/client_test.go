package tcp

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	servertcp "powsign/internal/server/tcp"
	"powsign/internal/usecases"
	"powsign/pkg/signature"
)

func newUsecases(t *testing.T, difficulty int) (usecases.PowUsecase, usecases.SignatureUsecase) {
	t.Helper()

	pow, err := usecases.NewPowUsecase(difficulty, usecases.PowOptions{Workers: 2})
	require.NoError(t, err)
	sig, err := usecases.NewSignatureUsecase(signature.DefaultKeyBits)
	require.NoError(t, err)
	return pow, sig
}

func startServer(t *testing.T, difficulty int) string {
	t.Helper()

	pow, sig := newUsecases(t, difficulty)
	pair, err := sig.GenerateKeyPair()
	require.NoError(t, err)

	server, err := servertcp.NewServer(
		&servertcp.Config{Deadline: 10 * time.Second},
		pow,
		sig,
		pair,
		zaptest.NewLogger(t).Sugar(),
	)
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, listener) }()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	return listener.Addr().String()
}

// startScripted serves every connection with a fixed challenge and response line.
func startScripted(t *testing.T, challenge, response string) (string, *atomic.Int32) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	var connections atomic.Int32
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			connections.Add(1)
			go func(conn net.Conn) {
				defer conn.Close()
				conn.Write([]byte(challenge))
				bufio.NewReader(conn).ReadString('\n')
				conn.Write([]byte(response))
			}(conn)
		}
	}()

	return listener.Addr().String(), &connections
}

func newClient(t *testing.T, addr string, cfg Config) *Client {
	t.Helper()

	pow, sig := newUsecases(t, 1)
	cfg.ServerAddr = addr
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = time.Second
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	cfg.RetryDelay = time.Millisecond

	return NewClient(&cfg, pow, sig, zaptest.NewLogger(t).Sugar())
}

func TestClientProve(t *testing.T) {
	addr := startServer(t, 3)
	client := newClient(t, addr, Config{})

	verification, err := client.Prove(context.Background())
	require.NoError(t, err)

	assert.True(t, verification.Genuine)
	assert.False(t, verification.Tampered)
	assert.True(t, strings.HasPrefix(verification.Proof.Digest, "000"))
	assert.Equal(t, 3, verification.Proof.Challenge.Difficulty)
	assert.Contains(t, string(verification.Proof.PublicKey), "BEGIN PUBLIC KEY")
}

func TestClientStartSessions(t *testing.T) {
	addr := startServer(t, 2)
	client := newClient(t, addr, Config{Sessions: 3})

	assert.NoError(t, client.Start(context.Background()))
}

func TestClientServerRejection(t *testing.T) {
	addr, connections := startScripted(t, "CHALLENGE:1:seed\n", "ERROR:INVALID_SOLUTION:Invalid proof of work solution\n")
	client := newClient(t, addr, Config{RetryAttempts: 3})

	_, err := client.Prove(context.Background())
	require.Error(t, err)

	var respErr *ServerResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, "INVALID_SOLUTION", respErr.Code)
	assert.Equal(t, int32(1), connections.Load())
}

func TestClientRetriesServerTimeout(t *testing.T) {
	addr, connections := startScripted(t, "CHALLENGE:1:seed\n", "ERROR:TIMEOUT:Operation timed out\n")
	client := newClient(t, addr, Config{RetryAttempts: 2})

	_, err := client.Prove(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.Equal(t, int32(3), connections.Load())
}

func TestClientConnectionRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	client := newClient(t, addr, Config{RetryAttempts: 1})

	_, err = client.Prove(context.Background())
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.ErrorIs(t, err, ErrConnectionFailed)

	assert.Error(t, client.Start(context.Background()))
}

func TestClientRejectsForeignDigest(t *testing.T) {
	addr, _ := startScripted(t, "CHALLENGE:0:seed\n", "SUCCESS:00ff:AAAA:AAAA\n")
	client := newClient(t, addr, Config{})

	_, err := client.Prove(context.Background())
	assert.ErrorIs(t, err, ErrInvalidProtocol)
}

func TestParseChallenge(t *testing.T) {
	challenge, err := parseChallenge("CHALLENGE:4:abc:def")
	require.NoError(t, err)
	assert.Equal(t, 4, challenge.Difficulty)
	assert.Equal(t, "abc:def", challenge.Seed)

	for _, line := range []string{"", "CHALLENGE:4", "HELLO:4:abc", "CHALLENGE:x:abc", "CHALLENGE:-1:abc"} {
		_, err := parseChallenge(line)
		assert.ErrorIs(t, err, ErrInvalidChallenge, line)
	}

	_, err = parseChallenge("ERROR:INTERNAL_ERROR:An internal error occurred")
	var respErr *ServerResponseError
	assert.True(t, errors.As(err, &respErr))
}

func TestParseResponse(t *testing.T) {
	for _, line := range []string{
		"OK",
		"SUCCESS:abc",
		"SUCCESS:abc:!!!:AAAA",
		"SUCCESS:abc:AAAA:!!!",
		"SUCCESS:abc:AAAA:AAAA",
		"ERROR:broken",
	} {
		_, err := parseResponse(line)
		assert.ErrorIs(t, err, ErrInvalidProtocol, line)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection failed", NewClientError("connect", ErrConnectionFailed, ""), true},
		{"connection closed", NewClientError("read", ErrConnectionClosed, ""), true},
		{"read timeout", NewClientError("read", ErrReadTimeout, ""), true},
		{"write timeout", NewClientError("write", ErrWriteTimeout, ""), true},
		{"server timeout", NewClientError("resp", &ServerResponseError{Code: "TIMEOUT"}, ""), true},
		{"server rejection", NewClientError("resp", &ServerResponseError{Code: "INVALID_SOLUTION"}, ""), false},
		{"protocol", NewClientError("resp", ErrInvalidProtocol, ""), false},
		{"bare error", ErrReadTimeout, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err))
		})
	}
}
