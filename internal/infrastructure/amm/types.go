package amm

import (
	"encoding/base64"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
)

type poolResponse struct {
	AssetA   uint64          `json:"assetA"`
	AssetB   uint64          `json:"assetB"`
	ReserveA decimal.Decimal `json:"reserveA"`
	ReserveB decimal.Decimal `json:"reserveB"`
	FeeBps   uint64          `json:"feeBps"`
}

func (p poolResponse) toDomain() *domain.Pool {
	return &domain.Pool{
		AssetA:   p.AssetA,
		AssetB:   p.AssetB,
		ReserveA: p.ReserveA,
		ReserveB: p.ReserveB,
		FeeBps:   p.FeeBps,
	}
}

type prepareSwapRequest struct {
	AssetIn       uint64          `json:"assetIn"`
	AssetOut      uint64          `json:"assetOut"`
	AmountIn      decimal.Decimal `json:"amountIn"`
	MinAmountOut  decimal.Decimal `json:"minAmountOut"`
	SenderAddress string          `json:"senderAddress"`
}

type prepareSwapResponse struct {
	PoolExists               bool            `json:"poolExists"`
	Transactions             []string        `json:"transactions"`
	SenderTransactionIndices []int           `json:"senderTransactionIndices"`
	TransactionGroup         string          `json:"transactionGroup"`
	Output                   decimal.Decimal `json:"output"`
	MinAmountOut             decimal.Decimal `json:"minAmountOut"`
	Fees                     decimal.Decimal `json:"fees"`
}

type submitSwapRequest struct {
	SignedTransactions []string `json:"signedTransactions"`
	TransactionGroup   string   `json:"transactionGroup"`
	SenderAddress      string   `json:"senderAddress"`
}

type submitSwapResponse struct {
	TransactionId string `json:"transactionId"`
}

type txStatusResponse struct {
	Confirmed bool `json:"confirmed"`
	Failed    bool `json:"failed"`
}

type balanceResponse struct {
	Amount decimal.Decimal `json:"amount"`
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
