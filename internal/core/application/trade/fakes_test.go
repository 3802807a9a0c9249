package trade_test

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mintbay-network/mintbay-trader/internal/core/application/trade"
	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
	"github.com/mintbay-network/mintbay-trader/internal/infrastructure/storage/db/inmemory"
	"github.com/mintbay-network/mintbay-trader/pkg/ordercodec"
)

const (
	testMarketplaceId = "mintbay-main"
	testNftId         = "nft-1"
	testNftAssetId    = uint64(445566)
	testOrderId       = "order-1"
)

type fakeOrderBook struct {
	submitOrder   func(ctx context.Context, order *domain.SellOrder) error
	getNftTrading func(ctx context.Context, nftId string) (*ports.NftTradingInfo, error)
	cancelOrder   func(ctx context.Context, orderId, userAddress string) error
	prepareTrade  func(ctx context.Context, orderId, buyerAddress string) (*domain.TradeManifest, error)
	submitTrade   func(ctx context.Context, req ports.SubmitTrade) (string, error)
	getTxStatus   func(ctx context.Context, txId string) (ports.TxStatus, error)
}

func newFakeOrderBook() *fakeOrderBook {
	return &fakeOrderBook{
		submitOrder: func(_ context.Context, _ *domain.SellOrder) error {
			return nil
		},
		getNftTrading: func(_ context.Context, _ string) (*ports.NftTradingInfo, error) {
			return &ports.NftTradingInfo{}, nil
		},
		cancelOrder: func(_ context.Context, _, _ string) error {
			return nil
		},
		prepareTrade: func(_ context.Context, _, _ string) (*domain.TradeManifest, error) {
			return &domain.TradeManifest{
				Transactions: [][]byte{
					[]byte("payment-leg"), []byte("fee-leg"),
					[]byte("asset-leg"), []byte("royalty-leg"),
				},
				BuyerIndices:  []int{0, 1},
				SellerIndices: []int{2},
				GroupId:       "group-1",
				Info: domain.TradeInfo{
					TotalPrice:    decimal.NewFromInt(100),
					PlatformFee:   decimal.NewFromInt(2),
					RoyaltyAmount: decimal.NewFromInt(5),
					Currency:      "ALGO",
				},
			}, nil
		},
		submitTrade: func(_ context.Context, _ ports.SubmitTrade) (string, error) {
			return "tx-1", nil
		},
		getTxStatus: func(_ context.Context, _ string) (ports.TxStatus, error) {
			return ports.TxStatus{Confirmed: true}, nil
		},
	}
}

func (b *fakeOrderBook) SubmitOrder(ctx context.Context, order *domain.SellOrder) error {
	return b.submitOrder(ctx, order)
}

func (b *fakeOrderBook) GetNftTrading(
	ctx context.Context, nftId string,
) (*ports.NftTradingInfo, error) {
	return b.getNftTrading(ctx, nftId)
}

func (b *fakeOrderBook) CancelOrder(ctx context.Context, orderId, userAddress string) error {
	return b.cancelOrder(ctx, orderId, userAddress)
}

func (b *fakeOrderBook) PrepareTrade(
	ctx context.Context, orderId, buyerAddress string,
) (*domain.TradeManifest, error) {
	return b.prepareTrade(ctx, orderId, buyerAddress)
}

func (b *fakeOrderBook) SubmitTrade(
	ctx context.Context, req ports.SubmitTrade,
) (string, error) {
	return b.submitTrade(ctx, req)
}

func (b *fakeOrderBook) GetTxStatus(ctx context.Context, txId string) (ports.TxStatus, error) {
	return b.getTxStatus(ctx, txId)
}

// testWallet signs with a real ed25519 key so that order signatures verify
// against the derived address.
type testWallet struct {
	privkey ed25519.PrivateKey
	address string
	balance decimal.Decimal

	signMsg  func(ctx context.Context, msg []byte) ([]byte, error)
	signTxns func(ctx context.Context, txns [][]byte) ([][]byte, error)

	signCalls int
}

func newTestWallet(balance decimal.Decimal) *testWallet {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	privkey := ed25519.NewKeyFromSeed(seed)
	pubkey := privkey.Public().(ed25519.PublicKey)

	return &testWallet{
		privkey: privkey,
		address: ordercodec.EncodeAddress(pubkey),
		balance: balance,
	}
}

func (w *testWallet) Address() string {
	return w.address
}

func (w *testWallet) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	if w.signMsg != nil {
		return w.signMsg(ctx, msg)
	}
	return ed25519.Sign(w.privkey, msg), nil
}

func (w *testWallet) SignTransactions(
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

func (w *testWallet) Balance(_ context.Context, _ uint64) (decimal.Decimal, error) {
	return w.balance, nil
}

func newTestService(
	t *testing.T, orderBook ports.OrderBook, wallet ports.Wallet,
) *trade.Service {
	t.Helper()

	svc, err := trade.NewService(
		orderBook, wallet, inmemory.NewOperationRepositoryImpl(),
		testMarketplaceId, 7*24*time.Hour,
		map[string]uint64{"ALGO": domain.AlgoAssetId, "USDC": 31566704},
		time.Millisecond, 5,
	)
	require.NoError(t, err)
	return svc
}
