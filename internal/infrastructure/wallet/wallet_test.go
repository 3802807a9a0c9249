package wallet_test

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mintbay-network/mintbay-trader/internal/infrastructure/wallet"
	"github.com/mintbay-network/mintbay-trader/pkg/ordercodec"
)

type fixedBalances struct {
	amount decimal.Decimal
}

func (b fixedBalances) AccountBalance(
	_ context.Context, _ string, _ uint64,
) (decimal.Decimal, error) {
	return b.amount, nil
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testSeed() []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	return seed
}

func TestNewService(t *testing.T) {
	t.Parallel()

	seed := testSeed()
	path := writeSeedFile(t, hex.EncodeToString(seed)+"\n")

	svc, err := wallet.NewService(path, fixedBalances{decimal.NewFromInt(42)})
	require.NoError(t, err)

	// the address is derived from the seed's public key
	pubkey := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	require.Equal(t, ordercodec.EncodeAddress(pubkey), svc.Address())

	balance, err := svc.Balance(context.Background(), 0)
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(42)))
}

func TestNewServiceFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed string
	}{
		{name: "not_hex", seed: "zz not hex zz"},
		{name: "wrong_length", seed: hex.EncodeToString([]byte("too short"))},
		{name: "empty", seed: ""},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeSeedFile(t, tt.seed)
			_, err := wallet.NewService(path, fixedBalances{decimal.Zero})
			require.Error(t, err)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		t.Parallel()

		_, err := wallet.NewService(
			filepath.Join(t.TempDir(), "nope"), fixedBalances{decimal.Zero},
		)
		require.Error(t, err)
	})
}

func TestSignMessage(t *testing.T) {
	t.Parallel()

	seed := testSeed()
	svc, err := wallet.NewService(
		writeSeedFile(t, hex.EncodeToString(seed)), fixedBalances{decimal.Zero},
	)
	require.NoError(t, err)

	msg := []byte("canonical order bytes")
	sig, err := svc.SignMessage(context.Background(), msg)
	require.NoError(t, err)

	pubkey := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	require.True(t, ed25519.Verify(pubkey, msg, sig))
}

func TestSignTransactions(t *testing.T) {
	t.Parallel()

	seed := testSeed()
	svc, err := wallet.NewService(
		writeSeedFile(t, hex.EncodeToString(seed)), fixedBalances{decimal.Zero},
	)
	require.NoError(t, err)

	txns := [][]byte{[]byte("leg-0"), []byte("leg-1"), []byte("leg-2")}
	signed, err := svc.SignTransactions(context.Background(), txns)
	require.NoError(t, err)
	require.Len(t, signed, len(txns))

	// order is preserved; each signed leg is the detached signature followed
	// by the original blob
	pubkey := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	for i, s := range signed {
		require.Len(t, s, ed25519.SignatureSize+len(txns[i]))
		sig, txn := s[:ed25519.SignatureSize], s[ed25519.SignatureSize:]
		require.Equal(t, txns[i], txn)
		require.True(t, ed25519.Verify(pubkey, txn, sig))
	}
}

func TestSignTransactionsRejectsNullLegs(t *testing.T) {
	t.Parallel()

	svc, err := wallet.NewService(
		writeSeedFile(t, hex.EncodeToString(testSeed())), fixedBalances{decimal.Zero},
	)
	require.NoError(t, err)

	_, err = svc.SignTransactions(context.Background(), nil)
	require.Error(t, err)

	_, err = svc.SignTransactions(context.Background(), [][]byte{[]byte("leg"), nil})
	require.Error(t, err)
}
