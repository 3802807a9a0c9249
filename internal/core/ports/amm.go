package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
)

// PrepareSwap are the defining inputs of a swap execution request.
type PrepareSwap struct {
	AssetIn      uint64
	AssetOut     uint64
	AmountIn     decimal.Decimal
	MinAmountOut decimal.Decimal
	Sender       string
}

// SubmitSwap is the fully-signed swap group handed back to the AMM service.
type SubmitSwap struct {
	SignedTransactions [][]byte
	GroupId            string
	Sender             string
}

// Amm is the external AMM service exposing pool state and the swap
// prepare/execute pair.
type Amm interface {
	// GetPool returns the pool state for the given pair, or
	// domain.ErrPoolNotFound if no pool exists for it.
	GetPool(ctx context.Context, assetA, assetB uint64) (*domain.Pool, error)
	// PrepareSwap builds a fresh transaction manifest for the swap.
	PrepareSwap(ctx context.Context, req PrepareSwap) (*domain.TradeManifest, error)
	// SubmitSwap posts the fully-signed group and returns the transaction
	// id on acceptance.
	SubmitSwap(ctx context.Context, req SubmitSwap) (string, error)
	// GetTxStatus reports the confirmation state of a submitted swap.
	GetTxStatus(ctx context.Context, txId string) (TxStatus, error)
}
