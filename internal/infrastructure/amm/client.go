// Package amm implements the client of the external AMM service exposing
// pool state, account balances and the swap prepare/execute pair.
package amm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/thanhpk/randstr"
	"go.uber.org/ratelimit"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
	"github.com/mintbay-network/mintbay-trader/pkg/circuitbreaker"
	"github.com/mintbay-network/mintbay-trader/pkg/httputil"
)

var (
	// ErrInvalidServiceURL ...
	ErrInvalidServiceURL = fmt.Errorf("service url must be a valid http(s) url")
)

type client struct {
	apiURL  string
	breaker *gobreaker.CircuitBreaker
	// pool lookups are issued on every quote input change, keep them from
	// hammering the service when the user types fast
	poolLimiter ratelimit.Limiter
}

// NewClient returns a ports.Amm talking to the service at the given base
// url, with pool lookups throttled to maxPoolRequestsPerSecond.
func NewClient(apiURL string, maxPoolRequestsPerSecond int) (ports.Amm, error) {
	if !isValidURL(apiURL) {
		return nil, ErrInvalidServiceURL
	}
	if maxPoolRequestsPerSecond <= 0 {
		return nil, fmt.Errorf("pool request rate must be positive")
	}

	return &client{
		apiURL:      strings.TrimSuffix(apiURL, "/"),
		breaker:     circuitbreaker.NewCircuitBreaker("amm"),
		poolLimiter: ratelimit.New(maxPoolRequestsPerSecond),
	}, nil
}

func (c *client) GetPool(
	ctx context.Context, assetA, assetB uint64,
) (*domain.Pool, error) {
	c.poolLimiter.Take()
	// the limiter wait cannot be interrupted: honour a cancellation that
	// happened in the meantime before issuing the request
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var res poolResponse
	path := fmt.Sprintf("/swap/pools?assetA=%d&assetB=%d", assetA, assetB)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		var svrErr *serverError
		if errors.As(err, &svrErr) && svrErr.status == http.StatusNotFound {
			return nil, domain.ErrPoolNotFound
		}
		return nil, err
	}
	return res.toDomain(), nil
}

func (c *client) PrepareSwap(
	ctx context.Context, req ports.PrepareSwap,
) (*domain.TradeManifest, error) {
	var res prepareSwapResponse
	if err := c.do(ctx, http.MethodPost, "/swap/execute", prepareSwapRequest{
		AssetIn:       req.AssetIn,
		AssetOut:      req.AssetOut,
		AmountIn:      req.AmountIn,
		MinAmountOut:  req.MinAmountOut,
		SenderAddress: req.Sender,
	}, &res); err != nil {
		return nil, err
	}
	if !res.PoolExists {
		return nil, domain.ErrPoolNotFound
	}

	txns, err := decodeTransactions(res.Transactions)
	if err != nil {
		return nil, err
	}
	return &domain.TradeManifest{
		Transactions: txns,
		BuyerIndices: res.SenderTransactionIndices,
		GroupId:      res.TransactionGroup,
		Info: domain.TradeInfo{
			TotalPrice:  req.AmountIn,
			PlatformFee: res.Fees,
		},
	}, nil
}

func (c *client) SubmitSwap(ctx context.Context, req ports.SubmitSwap) (string, error) {
	var res submitSwapResponse
	if err := c.do(ctx, http.MethodPut, "/swap/execute", submitSwapRequest{
		SignedTransactions: encodeTransactions(req.SignedTransactions),
		TransactionGroup:   req.GroupId,
		SenderAddress:      req.Sender,
	}, &res); err != nil {
		return "", err
	}
	return res.TransactionId, nil
}

func (c *client) GetTxStatus(ctx context.Context, txId string) (ports.TxStatus, error) {
	var res txStatusResponse
	path := fmt.Sprintf("/swap/transactions/%s", url.PathEscape(txId))
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return ports.TxStatus{}, err
	}
	return ports.TxStatus{Confirmed: res.Confirmed, Failed: res.Failed}, nil
}

// AccountBalance returns the balance the service reports for the given
// address and asset. It backs the wallet's balance reads.
func (c *client) AccountBalance(
	ctx context.Context, address string, assetId uint64,
) (decimal.Decimal, error) {
	var res balanceResponse
	path := fmt.Sprintf(
		"/accounts/%s/balances?asset=%d", url.PathEscape(address), assetId,
	)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return decimal.Zero, err
	}
	return res.Amount, nil
}

func (c *client) do(
	ctx context.Context, method, path string, body, out interface{},
) error {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		status, resBody, err := httputil.NewJSONRequest(
			ctx, method, c.apiURL+path, body,
			map[string]string{"X-Request-Id": randstr.Hex(8)},
		)
		if err != nil {
			return nil, err
		}
		if status >= http.StatusBadRequest {
			svrErr := newServerError(method, status, resBody)
			// a not-found on a read is an expected outcome, not a service
			// fault: it must not count towards tripping the breaker
			if method == http.MethodGet && status == http.StatusNotFound {
				return svrErr, nil
			}
			return nil, svrErr
		}
		return resBody, nil
	})
	if err != nil {
		return err
	}
	if svrErr, ok := res.(error); ok {
		return svrErr
	}

	if out != nil {
		if err := json.Unmarshal(res.([]byte), out); err != nil {
			return fmt.Errorf("invalid response body: %w", err)
		}
	}
	return nil
}

// serverError carries the status code of a failing read so that callers can
// tell a missing pool from a degraded service.
type serverError struct {
	status int
	msg    string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("amm: %s", e.msg)
}

func newServerError(method string, status int, body []byte) error {
	msg := fmt.Sprintf("status %d", status)
	var res errorResponse
	if err := json.Unmarshal(body, &res); err == nil && len(res.Error) > 0 {
		msg = res.Error
	}

	if method == http.MethodGet {
		return &serverError{status: status, msg: msg}
	}
	return fmt.Errorf("%w: %s", domain.ErrSubmissionFailed, msg)
}

func isValidURL(urlStr string) bool {
	_, err := url.ParseRequestURI(urlStr)
	return err == nil && strings.HasPrefix(urlStr, "http")
}
