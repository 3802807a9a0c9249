package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Wallet is the signing capability consumed by the trade and swap flows. It
// is typically backed by an external wallet UI: signing calls may suspend
// indefinitely while waiting on user action.
type Wallet interface {
	// Address returns the wallet account address.
	Address() string
	// SignMessage signs an arbitrary byte payload, such as the canonical
	// serialization of a sell order.
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
	// SignTransactions signs the given unsigned transaction legs in a
	// single batch. The result preserves order and length: signed[i] is the
	// signed form of txns[i].
	SignTransactions(ctx context.Context, txns [][]byte) ([][]byte, error)
	// Balance returns the wallet balance of the given asset.
	Balance(ctx context.Context, assetId uint64) (decimal.Decimal, error)
}
