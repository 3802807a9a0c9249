package domain

import "errors"

var (
	// ErrInvalidPrice is thrown when a listing price is not a positive number.
	ErrInvalidPrice = errors.New("price must be a positive number")
	// ErrMissingSellerAddress ...
	ErrMissingSellerAddress = errors.New("seller address must not be null")
	// ErrInvalidTTL ...
	ErrInvalidTTL = errors.New("order TTL must be greater than zero")
	// ErrMissingNft ...
	ErrMissingNft = errors.New("nft reference must not be null")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInvalidSlippage ...
	ErrInvalidSlippage = errors.New("slippage tolerance must be in range [0, 1)")
	// ErrSameAssetPair is thrown when a swap is requested with identical
	// input and output assets.
	ErrSameAssetPair = errors.New("input and output assets must differ")
	// ErrInsufficientFunds is thrown before any signing round-trip when the
	// wallet balance does not cover the total amount to be paid.
	ErrInsufficientFunds = errors.New("wallet balance does not cover the total price")
	// ErrPoolNotFound is thrown when no liquidity pool, nor a route through
	// intermediary pools, exists for an asset pair.
	ErrPoolNotFound = errors.New("no liquidity pool exists for the given pair")
	// ErrSigningRejected wraps any wallet-side signing fault, including the
	// user refusing the request. Never retried automatically.
	ErrSigningRejected = errors.New("wallet rejected the signing request")
	// ErrSubmissionFailed wraps any non-2xx response from the order-book or
	// AMM services, carrying the server error message verbatim.
	ErrSubmissionFailed = errors.New("submission rejected by the server")
	// ErrOperationInFlight is thrown when starting an operation while
	// another one has not reached a terminal status yet.
	ErrOperationInFlight = errors.New("another operation is already in progress")
	// ErrIllegalStatusTransition ...
	ErrIllegalStatusTransition = errors.New("illegal operation status transition")
	// ErrNotOrderOwner ...
	ErrNotOrderOwner = errors.New("only the seller can cancel a listing")
	// ErrInvalidManifest ...
	ErrInvalidManifest = errors.New("transaction manifest is malformed")
	// ErrUnknownCurrency ...
	ErrUnknownCurrency = errors.New("currency has no known on-chain asset")
	// ErrConfirmationTimeout ...
	ErrConfirmationTimeout = errors.New("transaction confirmation timed out")
	// ErrOrderNotFound ...
	ErrOrderNotFound = errors.New("order not found")
	// ErrOperationNotFound ...
	ErrOperationNotFound = errors.New("operation not found")
)
