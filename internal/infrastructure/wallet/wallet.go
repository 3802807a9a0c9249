// Package wallet provides an in-process signing wallet backed by an ed25519
// seed kept on disk. It implements the signing capability the trade and
// swap flows consume; balances are read from an external source since the
// key material alone knows nothing about on-chain state.
package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
	"github.com/mintbay-network/mintbay-trader/pkg/ordercodec"
)

// BalanceSource reads the on-chain balance of an account.
type BalanceSource interface {
	AccountBalance(
		ctx context.Context, address string, assetId uint64,
	) (decimal.Decimal, error)
}

type service struct {
	privkey  ed25519.PrivateKey
	address  string
	balances BalanceSource
}

// NewService loads the hex-encoded 32-byte seed at the given path and
// returns a ports.Wallet for the account it derives.
func NewService(seedPath string, balances BalanceSource) (ports.Wallet, error) {
	if balances == nil {
		return nil, fmt.Errorf("missing balance source")
	}

	raw, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("reading wallet seed: %w", err)
	}
	seed, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("wallet seed must be hex encoded: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf(
			"wallet seed must be %d bytes, got %d", ed25519.SeedSize, len(seed),
		)
	}

	privkey := ed25519.NewKeyFromSeed(seed)
	pubkey := privkey.Public().(ed25519.PublicKey)

	return &service{
		privkey:  privkey,
		address:  ordercodec.EncodeAddress(pubkey),
		balances: balances,
	}, nil
}

func (s *service) Address() string {
	return s.address
}

func (s *service) SignMessage(_ context.Context, msg []byte) ([]byte, error) {
	if len(msg) <= 0 {
		return nil, fmt.Errorf("message must not be null")
	}
	return ed25519.Sign(s.privkey, msg), nil
}

// SignTransactions signs each unsigned leg, preserving order and length.
// The signed form is the detached signature followed by the original blob.
func (s *service) SignTransactions(
	_ context.Context, txns [][]byte,
) ([][]byte, error) {
	if len(txns) <= 0 {
		return nil, fmt.Errorf("transaction list must not be null")
	}

	signed := make([][]byte, 0, len(txns))
	for i, txn := range txns {
		if len(txn) <= 0 {
			return nil, fmt.Errorf("transaction at index %d must not be null", i)
		}
		sig := ed25519.Sign(s.privkey, txn)
		signed = append(signed, append(sig, txn...))
	}
	return signed, nil
}

func (s *service) Balance(
	ctx context.Context, assetId uint64,
) (decimal.Decimal, error) {
	return s.balances.AccountBalance(ctx, s.address, assetId)
}
