package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mintbay-network/mintbay-trader/pkg/ordercodec"
)

// OrderStatus represents the different statuses a trading order can assume.
// Status transitions are applied by the order-book service, never locally.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusActive    OrderStatus = "active"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusExpired   OrderStatus = "expired"
)

// SellOrder is an off-chain listing of an NFT, signed locally by the seller.
// It is immutable once signed: any field change invalidates the signature.
type SellOrder struct {
	Id            string
	MarketplaceId string
	NftId         string
	AssetId       uint64
	Seller        string
	Price         decimal.Decimal
	Currency      string
	CreatedAt     int64
	ExpiresAt     int64
	Signature     []byte
}

// NewSellOrder returns an unsigned sell order with a fresh id, the current
// time as creation timestamp and an expiry derived from the given TTL.
func NewSellOrder(
	marketplaceId, nftId string, assetId uint64,
	seller string, price decimal.Decimal, currency string, ttl time.Duration,
) (*SellOrder, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if len(seller) <= 0 {
		return nil, ErrMissingSellerAddress
	}
	if len(nftId) <= 0 {
		return nil, ErrMissingNft
	}
	if ttl < time.Second {
		return nil, ErrInvalidTTL
	}

	now := time.Now()
	return &SellOrder{
		Id:            uuid.New().String(),
		MarketplaceId: marketplaceId,
		NftId:         nftId,
		AssetId:       assetId,
		Seller:        seller,
		Price:         price,
		Currency:      currency,
		CreatedAt:     now.Unix(),
		ExpiresAt:     now.Add(ttl).Unix(),
	}, nil
}

// Canonical returns the canonical field set of the order, the byte form of
// which is what gets signed and verified.
func (o *SellOrder) Canonical() ordercodec.Order {
	return ordercodec.Order{
		Id:            o.Id,
		MarketplaceId: o.MarketplaceId,
		NftId:         o.NftId,
		AssetId:       o.AssetId,
		Seller:        o.Seller,
		Price:         o.Price.String(),
		Currency:      o.Currency,
		CreatedAt:     o.CreatedAt,
		ExpiresAt:     o.ExpiresAt,
	}
}

// VerifySignature checks the order signature against the seller address. An
// order must never be submitted, nor used to build a trade, if this fails.
func (o *SellOrder) VerifySignature() error {
	return ordercodec.Verify(o.Canonical(), o.Signature)
}

// IsExpired returns whether the order expiry time has passed.
func (o *SellOrder) IsExpired() bool {
	return time.Now().After(time.Unix(o.ExpiresAt, 0))
}

// NftRef is the denormalized reference to the NFT an order is about.
type NftRef struct {
	Id      string
	AssetId uint64
	Name    string
}

// TradingOrder is the order-book view of a sell order. The local client only
// ever reads it; status is owned by the order-book service.
type TradingOrder struct {
	SellOrder
	Status OrderStatus
	Nft    NftRef
}

// TradeRecord is a fulfilled trade as reported by the order-book service.
type TradeRecord struct {
	OrderId   string
	Buyer     string
	Seller    string
	Price     decimal.Decimal
	Currency  string
	TxId      string
	Timestamp int64
}

// TradingStats are the per-NFT aggregates reported alongside listings.
type TradingStats struct {
	FloorPrice decimal.Decimal
	LastPrice  decimal.Decimal
	Volume     decimal.Decimal
	SalesCount int
}
