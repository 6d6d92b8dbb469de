package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powsign/internal/domain"
	"powsign/internal/usecases/mocks"
	"powsign/pkg/pow/hashcash"
)

func TestDemoUsecaseRun(t *testing.T) {
	pow, err := NewPowUsecase(4, PowOptions{})
	require.NoError(t, err)
	sig, err := NewSignatureUsecase(2048)
	require.NoError(t, err)

	report, err := NewDemoUsecase(pow, sig).Run(context.Background(), "alice", 4)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(report.Result.Digest, "0000"))
	assert.Equal(t, hashcash.Digest(report.Result.Input), report.Result.Digest)
	assert.True(t, report.Genuine)
	assert.False(t, report.Tampered)
	assert.True(t, sig.Verify(report.KeyPair.PublicKey, report.Result.Digest, report.Signature))
}

func TestDemoUsecaseErrors(t *testing.T) {
	errBoom := errors.New("boom")
	result := &domain.SearchResult{Digest: "00ab"}
	pair := &domain.KeyPair{PrivateKey: []byte("priv"), PublicKey: []byte("pub")}

	t.Run("search fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pow := mocks.NewMockPowUsecase(ctrl)
		sig := mocks.NewMockSignatureUsecase(ctrl)

		pow.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(nil, errBoom)

		_, err := NewDemoUsecase(pow, sig).Run(context.Background(), "seed", 2)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("key generation fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pow := mocks.NewMockPowUsecase(ctrl)
		sig := mocks.NewMockSignatureUsecase(ctrl)

		pow.EXPECT().Solve(gomock.Any(), &domain.Challenge{Seed: "seed", Difficulty: 2}).Return(result, nil)
		sig.EXPECT().GenerateKeyPair().Return(nil, errBoom)

		_, err := NewDemoUsecase(pow, sig).Run(context.Background(), "seed", 2)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("signing fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pow := mocks.NewMockPowUsecase(ctrl)
		sig := mocks.NewMockSignatureUsecase(ctrl)

		pow.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(result, nil)
		sig.EXPECT().GenerateKeyPair().Return(pair, nil)
		sig.EXPECT().Sign(pair.PrivateKey, "00ab").Return(nil, errBoom)

		_, err := NewDemoUsecase(pow, sig).Run(context.Background(), "seed", 2)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("verification outcomes are reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pow := mocks.NewMockPowUsecase(ctrl)
		sig := mocks.NewMockSignatureUsecase(ctrl)

		pow.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(result, nil)
		sig.EXPECT().GenerateKeyPair().Return(pair, nil)
		sig.EXPECT().Sign(pair.PrivateKey, "00ab").Return([]byte("sig"), nil)
		sig.EXPECT().Verify(pair.PublicKey, "00ab", []byte("sig")).Return(true)
		sig.EXPECT().Verify(pair.PublicKey, TamperedMessage, []byte("sig")).Return(false)

		report, err := NewDemoUsecase(pow, sig).Run(context.Background(), "seed", 2)
		require.NoError(t, err)
		assert.True(t, report.Genuine)
		assert.False(t, report.Tampered)
		assert.Equal(t, []byte("sig"), report.Signature)
	})
}
