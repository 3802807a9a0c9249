package ports

import (
	"context"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
)

// NftTradingInfo is the per-NFT view returned by the order-book service.
type NftTradingInfo struct {
	Nft            domain.NftRef
	ActiveListings []domain.TradingOrder
	TradeHistory   []domain.TradeRecord
	Statistics     domain.TradingStats
}

// SubmitTrade is the fully-signed group handed back to the execute endpoint.
type SubmitTrade struct {
	OrderId            string
	SignedTransactions [][]byte
	BuyerAddress       string
	GroupId            string
	BuyerIndices       []int
	SellerIndices      []int
}

// TxStatus is the confirmation state of a submitted transaction group.
type TxStatus struct {
	Confirmed bool
	Failed    bool
}

// OrderBook is the external order-book service, the authority on listing
// state. The local client only creates and cancels orders and reads back.
type OrderBook interface {
	// SubmitOrder posts a signed sell order for acceptance.
	SubmitOrder(ctx context.Context, order *domain.SellOrder) error
	// GetNftTrading returns the active listings, trade history and
	// statistics for an NFT.
	GetNftTrading(ctx context.Context, nftId string) (*NftTradingInfo, error)
	// CancelOrder asks the service to cancel a listing on behalf of the
	// given requester. The service enforces that the requester is the
	// seller.
	CancelOrder(ctx context.Context, orderId, userAddress string) error
	// PrepareTrade builds a fresh transaction manifest for purchasing the
	// given order. Manifests must never be cached across retries.
	PrepareTrade(
		ctx context.Context, orderId, buyerAddress string,
	) (*domain.TradeManifest, error)
	// SubmitTrade posts the fully-signed group and returns the transaction
	// id on acceptance.
	SubmitTrade(ctx context.Context, req SubmitTrade) (string, error)
	// GetTxStatus reports the confirmation state of a submitted trade.
	GetTxStatus(ctx context.Context, txId string) (TxStatus, error)
}
