// Package orderbook implements the client of the external order-book
// service, the authority on listing state and the builder of trade
// transaction groups.
package orderbook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
	"github.com/thanhpk/randstr"

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
}

// NewClient returns a ports.OrderBook talking to the service at the given
// base url.
func NewClient(apiURL string) (ports.OrderBook, error) {
	if !isValidURL(apiURL) {
		return nil, ErrInvalidServiceURL
	}

	return &client{
		apiURL:  strings.TrimSuffix(apiURL, "/"),
		breaker: circuitbreaker.NewCircuitBreaker("orderbook"),
	}, nil
}

func (c *client) SubmitOrder(ctx context.Context, order *domain.SellOrder) error {
	body := map[string]interface{}{"signedOrder": orderToJSON(order)}
	return c.do(ctx, http.MethodPost, "/trading/orders", body, nil)
}

func (c *client) GetNftTrading(
	ctx context.Context, nftId string,
) (*ports.NftTradingInfo, error) {
	var res nftTradingResponse
	path := fmt.Sprintf("/trading/nfts/%s", url.PathEscape(nftId))
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.toPorts()
}

func (c *client) CancelOrder(ctx context.Context, orderId, userAddress string) error {
	path := fmt.Sprintf("/trading/orders/%s/cancel", url.PathEscape(orderId))
	return c.do(ctx, http.MethodPost, path, cancelOrderRequest{
		UserAddress: userAddress,
	}, nil)
}

func (c *client) PrepareTrade(
	ctx context.Context, orderId, buyerAddress string,
) (*domain.TradeManifest, error) {
	var res prepareTradeResponse
	if err := c.do(ctx, http.MethodPost, "/trading/execute", prepareTradeRequest{
		OrderId:      orderId,
		BuyerAddress: buyerAddress,
	}, &res); err != nil {
		return nil, err
	}
	return res.toDomain()
}

func (c *client) SubmitTrade(
	ctx context.Context, req ports.SubmitTrade,
) (string, error) {
	var res submitTradeResponse
	if err := c.do(ctx, http.MethodPut, "/trading/execute", submitTradeRequest{
		OrderId:                  req.OrderId,
		SignedTransactions:       encodeTransactions(req.SignedTransactions),
		BuyerWalletAddress:       req.BuyerAddress,
		TransactionGroup:         req.GroupId,
		BuyerTransactionIndices:  req.BuyerIndices,
		SellerTransactionIndices: req.SellerIndices,
	}, &res); err != nil {
		return "", err
	}
	return res.TransactionId, nil
}

func (c *client) GetTxStatus(ctx context.Context, txId string) (ports.TxStatus, error) {
	var res txStatusResponse
	path := fmt.Sprintf("/trading/transactions/%s", url.PathEscape(txId))
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return ports.TxStatus{}, err
	}
	return ports.TxStatus{Confirmed: res.Confirmed, Failed: res.Failed}, nil
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
			return nil, newServerError(method, status, resBody)
		}
		return resBody, nil
	})
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(res.([]byte), out); err != nil {
			return fmt.Errorf("invalid response body: %w", err)
		}
	}
	return nil
}

// newServerError maps non-2xx responses to the typed error surface. The
// server's error message, when present, is reported verbatim. Failing
// writes surface as submission errors; failing reads as plain ones.
func newServerError(method string, status int, body []byte) error {
	msg := fmt.Sprintf("status %d", status)
	var res errorResponse
	if err := json.Unmarshal(body, &res); err == nil && len(res.Error) > 0 {
		msg = res.Error
	}

	if method == http.MethodGet {
		return fmt.Errorf("order-book: %s", msg)
	}
	return fmt.Errorf("%w: %s", domain.ErrSubmissionFailed, msg)
}

func isValidURL(urlStr string) bool {
	_, err := url.ParseRequestURI(urlStr)
	return err == nil && strings.HasPrefix(urlStr, "http")
}
