package orderbook

import (
	"encoding/base64"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
)

type orderJSON struct {
	Id            string          `json:"id"`
	MarketplaceId string          `json:"marketplaceId"`
	NftId         string          `json:"nftId"`
	AssetId       uint64          `json:"assetId"`
	Seller        string          `json:"sellerAddress"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	CreatedAt     int64           `json:"createdAt"`
	ExpiresAt     int64           `json:"expiresAt"`
	Signature     string          `json:"signature"`
	Status        string          `json:"status,omitempty"`
}

func orderToJSON(o *domain.SellOrder) orderJSON {
	return orderJSON{
		Id:            o.Id,
		MarketplaceId: o.MarketplaceId,
		NftId:         o.NftId,
		AssetId:       o.AssetId,
		Seller:        o.Seller,
		Price:         o.Price,
		Currency:      o.Currency,
		CreatedAt:     o.CreatedAt,
		ExpiresAt:     o.ExpiresAt,
		Signature:     base64.StdEncoding.EncodeToString(o.Signature),
	}
}

func (o orderJSON) toDomain() (domain.SellOrder, error) {
	sig, err := base64.StdEncoding.DecodeString(o.Signature)
	if err != nil {
		return domain.SellOrder{}, fmt.Errorf("invalid order signature encoding: %w", err)
	}
	return domain.SellOrder{
		Id:            o.Id,
		MarketplaceId: o.MarketplaceId,
		NftId:         o.NftId,
		AssetId:       o.AssetId,
		Seller:        o.Seller,
		Price:         o.Price,
		Currency:      o.Currency,
		CreatedAt:     o.CreatedAt,
		ExpiresAt:     o.ExpiresAt,
		Signature:     sig,
	}, nil
}

type nftJSON struct {
	Id      string `json:"id"`
	AssetId uint64 `json:"assetId"`
	Name    string `json:"name"`
}

func (n nftJSON) toDomain() domain.NftRef {
	return domain.NftRef{Id: n.Id, AssetId: n.AssetId, Name: n.Name}
}

type listingJSON struct {
	orderJSON
	Nft nftJSON `json:"nft"`
}

func (l listingJSON) toDomain() (domain.TradingOrder, error) {
	order, err := l.orderJSON.toDomain()
	if err != nil {
		return domain.TradingOrder{}, err
	}
	return domain.TradingOrder{
		SellOrder: order,
		Status:    domain.OrderStatus(l.Status),
		Nft:       l.Nft.toDomain(),
	}, nil
}

type tradeJSON struct {
	OrderId   string          `json:"orderId"`
	Buyer     string          `json:"buyerAddress"`
	Seller    string          `json:"sellerAddress"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	TxId      string          `json:"transactionId"`
	Timestamp int64           `json:"timestamp"`
}

func (t tradeJSON) toDomain() domain.TradeRecord {
	return domain.TradeRecord{
		OrderId:   t.OrderId,
		Buyer:     t.Buyer,
		Seller:    t.Seller,
		Price:     t.Price,
		Currency:  t.Currency,
		TxId:      t.TxId,
		Timestamp: t.Timestamp,
	}
}

type statsJSON struct {
	FloorPrice decimal.Decimal `json:"floorPrice"`
	LastPrice  decimal.Decimal `json:"lastPrice"`
	Volume     decimal.Decimal `json:"volume"`
	SalesCount int             `json:"salesCount"`
}

type nftTradingResponse struct {
	Nft            nftJSON       `json:"nft"`
	ActiveListings []listingJSON `json:"activeListings"`
	TradeHistory   []tradeJSON   `json:"tradeHistory"`
	Statistics     statsJSON     `json:"statistics"`
}

func (r nftTradingResponse) toPorts() (*ports.NftTradingInfo, error) {
	listings := make([]domain.TradingOrder, 0, len(r.ActiveListings))
	for _, l := range r.ActiveListings {
		listing, err := l.toDomain()
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	history := make([]domain.TradeRecord, 0, len(r.TradeHistory))
	for _, t := range r.TradeHistory {
		history = append(history, t.toDomain())
	}

	return &ports.NftTradingInfo{
		Nft:            r.Nft.toDomain(),
		ActiveListings: listings,
		TradeHistory:   history,
		Statistics: domain.TradingStats{
			FloorPrice: r.Statistics.FloorPrice,
			LastPrice:  r.Statistics.LastPrice,
			Volume:     r.Statistics.Volume,
			SalesCount: r.Statistics.SalesCount,
		},
	}, nil
}

type transactionInfoJSON struct {
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PlatformFee   decimal.Decimal `json:"platformFee"`
	RoyaltyAmount decimal.Decimal `json:"royaltyAmount"`
	Currency      string          `json:"currency"`
}

type prepareTradeRequest struct {
	OrderId      string `json:"orderId"`
	BuyerAddress string `json:"buyerAddress"`
}

type prepareTradeResponse struct {
	Transactions             []string            `json:"transactions"`
	BuyerTransactionIndices  []int               `json:"buyerTransactionIndices"`
	SellerTransactionIndices []int               `json:"sellerTransactionIndices"`
	TransactionGroup         string              `json:"transactionGroup"`
	TransactionInfo          transactionInfoJSON `json:"transactionInfo"`
}

func (r prepareTradeResponse) toDomain() (*domain.TradeManifest, error) {
	txns, err := decodeTransactions(r.Transactions)
	if err != nil {
		return nil, err
	}
	return &domain.TradeManifest{
		Transactions:  txns,
		BuyerIndices:  r.BuyerTransactionIndices,
		SellerIndices: r.SellerTransactionIndices,
		GroupId:       r.TransactionGroup,
		Info: domain.TradeInfo{
			TotalPrice:    r.TransactionInfo.TotalPrice,
			PlatformFee:   r.TransactionInfo.PlatformFee,
			RoyaltyAmount: r.TransactionInfo.RoyaltyAmount,
			Currency:      r.TransactionInfo.Currency,
		},
	}, nil
}

type submitTradeRequest struct {
	OrderId                  string   `json:"orderId"`
	SignedTransactions       []string `json:"signedTransactions"`
	BuyerWalletAddress       string   `json:"buyerWalletAddress"`
	TransactionGroup         string   `json:"transactionGroup"`
	BuyerTransactionIndices  []int    `json:"buyerTransactionIndices"`
	SellerTransactionIndices []int    `json:"sellerTransactionIndices"`
}

type submitTradeResponse struct {
	TransactionId string `json:"transactionId"`
}

type cancelOrderRequest struct {
	UserAddress string `json:"userAddress"`
}

type txStatusResponse struct {
	Confirmed bool `json:"confirmed"`
	Failed    bool `json:"failed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeTransactions(txns []string) ([][]byte, error) {
	decoded := make([][]byte, 0, len(txns))
	for i, txn := range txns {
		buf, err := base64.StdEncoding.DecodeString(txn)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction encoding at index %d: %w", i, err)
		}
		decoded = append(decoded, buf)
	}
	return decoded, nil
}

func encodeTransactions(txns [][]byte) []string {
	encoded := make([]string, 0, len(txns))
	for _, txn := range txns {
		encoded = append(encoded, base64.StdEncoding.EncodeToString(txn))
	}
	return encoded
}
