// Package formula implements the constant-product pricing math used to quote
// swaps against AMM pool reserves.
package formula

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	tenThousands = decimal.NewFromInt(10000)
	oneHundred   = decimal.NewFromInt(100)
	one          = decimal.NewFromInt(1)
)

var (
	// ErrAmountTooLow ...
	ErrAmountTooLow = errors.New("provided amount is too low")
	// ErrAmountTooBig ...
	ErrAmountTooBig = errors.New("provided amount is too big")
	// ErrReserveTooLow ...
	ErrReserveTooLow = errors.New("pool reserve amount is too low")
)

// Opts defines the pool state needed to price a swap. FeeBps is the pool
// protocol fee in basis points, charged on the way in.
type Opts struct {
	ReserveIn  decimal.Decimal
	ReserveOut decimal.Decimal
	FeeBps     uint64
}

func (o Opts) validate() error {
	if o.ReserveIn.LessThanOrEqual(decimal.Zero) ||
		o.ReserveOut.LessThanOrEqual(decimal.Zero) {
		return ErrReserveTooLow
	}
	return nil
}

// SpotPrice returns the pre-trade marginal price of the pool, expressed as
// output asset units per one input asset unit.
func SpotPrice(opts Opts) (decimal.Decimal, error) {
	if err := opts.validate(); err != nil {
		return decimal.Zero, err
	}
	return opts.ReserveOut.Div(opts.ReserveIn), nil
}

// OutGivenIn returns the amount of output asset the pool exchanges for the
// given input amount, net of the protocol fee.
func OutGivenIn(opts Opts, amountIn decimal.Decimal) (decimal.Decimal, error) {
	if err := opts.validate(); err != nil {
		return decimal.Zero, err
	}

	netAmountIn := amountIn.Mul(one.Sub(feeRatio(opts.FeeBps)))
	if netAmountIn.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrAmountTooLow
	}

	amountOut := opts.ReserveOut.Mul(
		one.Sub(opts.ReserveIn.Div(opts.ReserveIn.Add(netAmountIn))),
	).Round(8)
	if amountOut.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrAmountTooLow
	}
	if amountOut.GreaterThanOrEqual(opts.ReserveOut) {
		return decimal.Zero, ErrAmountTooBig
	}

	return amountOut, nil
}

// PriceImpact returns the relative deviation of the executed price from the
// pool's pre-trade marginal price, as a percentage in [0, 100).
func PriceImpact(opts Opts, amountIn, amountOut decimal.Decimal) (decimal.Decimal, error) {
	spot, err := SpotPrice(opts)
	if err != nil {
		return decimal.Zero, err
	}
	if amountIn.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrAmountTooLow
	}

	executed := amountOut.Div(amountIn)
	return one.Sub(executed.Div(spot)).Mul(oneHundred), nil
}

// FeeAmount returns the protocol fee taken from the given input amount,
// expressed in the input asset.
func FeeAmount(amountIn decimal.Decimal, feeBps uint64) decimal.Decimal {
	return amountIn.Mul(feeRatio(feeBps))
}

func feeRatio(feeBps uint64) decimal.Decimal {
	return decimal.NewFromInt(int64(feeBps)).Div(tenThousands)
}
