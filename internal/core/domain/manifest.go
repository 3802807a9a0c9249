package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TradeInfo is the amount breakdown attached to a trade manifest.
type TradeInfo struct {
	TotalPrice    decimal.Decimal
	PlatformFee   decimal.Decimal
	RoyaltyAmount decimal.Decimal
	Currency      string
}

// TradeManifest is the ordered group of unsigned transaction legs returned
// by a prepare call, plus the index sets telling which legs each party must
// sign. Legs are opaque blobs; their order is semantically meaningful since
// the chain validates the group as an atomic unit. A manifest is built fresh
// on every prepare call and discarded after submission, never reused.
type TradeManifest struct {
	Transactions  [][]byte
	BuyerIndices  []int
	SellerIndices []int
	GroupId       string
	Info          TradeInfo
}

// Validate checks the structural invariants of the manifest: at least one
// leg, all indices in range, and no index claimed by both parties.
func (m *TradeManifest) Validate() error {
	if len(m.Transactions) <= 0 {
		return fmt.Errorf("%w: empty transaction group", ErrInvalidManifest)
	}
	seen := make(map[int]struct{})
	for _, i := range m.BuyerIndices {
		if i < 0 || i >= len(m.Transactions) {
			return fmt.Errorf("%w: buyer index %d out of range", ErrInvalidManifest, i)
		}
		if _, ok := seen[i]; ok {
			return fmt.Errorf("%w: duplicated buyer index %d", ErrInvalidManifest, i)
		}
		seen[i] = struct{}{}
	}
	for _, i := range m.SellerIndices {
		if i < 0 || i >= len(m.Transactions) {
			return fmt.Errorf("%w: seller index %d out of range", ErrInvalidManifest, i)
		}
		if _, ok := seen[i]; ok {
			return fmt.Errorf("%w: index %d claimed by both parties", ErrInvalidManifest, i)
		}
		seen[i] = struct{}{}
	}
	return nil
}

// BuyerLegs returns the unsigned legs requiring the buyer signature, in
// their manifest-relative order.
func (m *TradeManifest) BuyerLegs() [][]byte {
	legs := make([][]byte, 0, len(m.BuyerIndices))
	for _, i := range m.BuyerIndices {
		legs = append(legs, m.Transactions[i])
	}
	return legs
}

// SpliceSigned substitutes the signed buyer legs back into the group at
// their original indices, leaving every other leg untouched. The result has
// the same length and leg order as the manifest, which is what the chain's
// atomic-group validation requires.
func (m *TradeManifest) SpliceSigned(signed [][]byte) ([][]byte, error) {
	if len(signed) != len(m.BuyerIndices) {
		return nil, fmt.Errorf(
			"%w: got %d signed legs, expected %d",
			ErrInvalidManifest, len(signed), len(m.BuyerIndices),
		)
	}

	group := make([][]byte, len(m.Transactions))
	copy(group, m.Transactions)
	for n, i := range m.BuyerIndices {
		if i < 0 || i >= len(group) {
			return nil, fmt.Errorf("%w: buyer index %d out of range", ErrInvalidManifest, i)
		}
		group[i] = signed[n]
	}
	return group, nil
}
