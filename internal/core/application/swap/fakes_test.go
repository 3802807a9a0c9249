package swap_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
)

const testAddress = "TESTADDRESS"

type fakeAmm struct {
	getPool     func(ctx context.Context, assetA, assetB uint64) (*domain.Pool, error)
	prepareSwap func(ctx context.Context, req ports.PrepareSwap) (*domain.TradeManifest, error)
	submitSwap  func(ctx context.Context, req ports.SubmitSwap) (string, error)
	getTxStatus func(ctx context.Context, txId string) (ports.TxStatus, error)
}

func newFakeAmm() *fakeAmm {
	return &fakeAmm{
		getPool: func(_ context.Context, a, b uint64) (*domain.Pool, error) {
			return &domain.Pool{
				AssetA:   a,
				AssetB:   b,
				ReserveA: decimal.NewFromInt(10000),
				ReserveB: decimal.NewFromInt(10000),
			}, nil
		},
		prepareSwap: func(_ context.Context, req ports.PrepareSwap) (*domain.TradeManifest, error) {
			return &domain.TradeManifest{
				Transactions: [][]byte{[]byte("pool-leg"), []byte("sender-leg")},
				BuyerIndices: []int{1},
				GroupId:      "group-1",
				Info:         domain.TradeInfo{TotalPrice: req.AmountIn},
			}, nil
		},
		submitSwap: func(_ context.Context, _ ports.SubmitSwap) (string, error) {
			return "tx-1", nil
		},
		getTxStatus: func(_ context.Context, _ string) (ports.TxStatus, error) {
			return ports.TxStatus{Confirmed: true}, nil
		},
	}
}

func (a *fakeAmm) GetPool(
	ctx context.Context, assetA, assetB uint64,
) (*domain.Pool, error) {
	return a.getPool(ctx, assetA, assetB)
}

func (a *fakeAmm) PrepareSwap(
	ctx context.Context, req ports.PrepareSwap,
) (*domain.TradeManifest, error) {
	return a.prepareSwap(ctx, req)
}

func (a *fakeAmm) SubmitSwap(ctx context.Context, req ports.SubmitSwap) (string, error) {
	return a.submitSwap(ctx, req)
}

func (a *fakeAmm) GetTxStatus(ctx context.Context, txId string) (ports.TxStatus, error) {
	return a.getTxStatus(ctx, txId)
}

type fakeWallet struct {
	balance  decimal.Decimal
	signTxns func(ctx context.Context, txns [][]byte) ([][]byte, error)

	signCalls int
}

func newFakeWallet(_ *testing.T, balance decimal.Decimal) *fakeWallet {
	return &fakeWallet{balance: balance}
}

func (w *fakeWallet) Address() string {
	return testAddress
}

func (w *fakeWallet) SignMessage(_ context.Context, msg []byte) ([]byte, error) {
	return append([]byte("signed:"), msg...), nil
}

func (w *fakeWallet) SignTransactions(
	ctx context.Context, txns [][]byte,
) ([][]byte, error) {
	w.signCalls++
	if w.signTxns != nil {
		return w.signTxns(ctx, txns)
	}

	signed := make([][]byte, 0, len(txns))
	for _, txn := range txns {
		signed = append(signed, append([]byte("signed:"), txn...))
	}
	return signed, nil
}

func (w *fakeWallet) Balance(
	_ context.Context, _ uint64,
) (decimal.Decimal, error) {
	return w.balance, nil
}
