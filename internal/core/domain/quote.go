package domain

import "github.com/shopspring/decimal"

// AlgoAssetId is the on-chain asset id of the network currency. Pairs with
// no direct pool are routed through it.
const AlgoAssetId uint64 = 0

// AssetAmount couples an on-chain asset id with an amount.
type AssetAmount struct {
	AssetId uint64
	Amount  decimal.Decimal
}

// SwapQuote is the priced preview of a swap. When PoolExists is false the
// output fields carry no meaning and must not be used to enable a swap.
type SwapQuote struct {
	In           AssetAmount
	Out          AssetAmount
	MinAmountOut decimal.Decimal
	// PriceImpact is the relative deviation of the executed price from the
	// pool's pre-trade marginal price, as a percentage.
	PriceImpact decimal.Decimal
	// Fee is the protocol fee taken by the pool(s), expressed in the input
	// asset.
	Fee        decimal.Decimal
	PoolExists bool
}

// EmptyQuote returns a cleared quote for the given pair, used when the input
// amount is not positive and nothing should be priced.
func EmptyQuote(assetIn, assetOut uint64) SwapQuote {
	return SwapQuote{
		In:  AssetAmount{AssetId: assetIn},
		Out: AssetAmount{AssetId: assetOut},
	}
}

// Pool is the state of an AMM liquidity pool for an asset pair.
type Pool struct {
	AssetA   uint64
	AssetB   uint64
	ReserveA decimal.Decimal
	ReserveB decimal.Decimal
	FeeBps   uint64
}

// ReservesFor orients the pool reserves for a trade entering with the given
// asset. It returns false if the asset is not part of the pool.
func (p *Pool) ReservesFor(assetIn uint64) (resIn, resOut decimal.Decimal, ok bool) {
	switch assetIn {
	case p.AssetA:
		return p.ReserveA, p.ReserveB, true
	case p.AssetB:
		return p.ReserveB, p.ReserveA, true
	default:
		return decimal.Zero, decimal.Zero, false
	}
}
