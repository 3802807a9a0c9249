package amm_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/core/ports"
	"github.com/mintbay-network/mintbay-trader/internal/infrastructure/amm"
	"github.com/mintbay-network/mintbay-trader/pkg/circuitbreaker"
)

func TestGetPool(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/swap/pools", r.URL.Path)
			require.Equal(t, "0", r.URL.Query().Get("assetA"))
			require.Equal(t, "31566704", r.URL.Query().Get("assetB"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"assetA": 0, "assetB": 31566704,
				"reserveA": "10000", "reserveB": "20000",
				"feeBps": 30,
			})
		},
	))
	defer srv.Close()

	client, err := amm.NewClient(srv.URL, 100)
	require.NoError(t, err)

	pool, err := client.GetPool(context.Background(), 0, 31566704)
	require.NoError(t, err)
	require.Equal(t, uint64(31566704), pool.AssetB)
	require.True(t, pool.ReserveB.Equal(decimal.NewFromInt(20000)))
	require.Equal(t, uint64(30), pool.FeeBps)
}

func TestGetPoolNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "no pool for pair"})
		},
	))
	defer srv.Close()

	client, err := amm.NewClient(srv.URL, 100)
	require.NoError(t, err)

	_, err = client.GetPool(context.Background(), 0, 31566704)
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
}

// Missing pools are an expected outcome of quoting arbitrary pairs: any
// number of consecutive no-pool lookups must keep reporting the missing pool
// instead of tripping the circuit breaker.
func TestGetPoolNotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	lookups := 0
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			lookups++
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "no pool for pair"})
		},
	))
	defer srv.Close()

	client, err := amm.NewClient(srv.URL, 1000)
	require.NoError(t, err)

	attempts := 3 * circuitbreaker.MaxNumOfFailingRequests
	for i := 0; i < attempts; i++ {
		_, err := client.GetPool(context.Background(), 0, 31566704)
		require.ErrorIs(t, err, domain.ErrPoolNotFound, "lookup %d", i+1)
	}
	require.Equal(t, attempts, lookups, "every lookup must reach the service")
}

func TestGetPoolHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	lookups := 0
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			lookups++
			json.NewEncoder(w).Encode(map[string]interface{}{
				"assetA": 0, "assetB": 31566704,
				"reserveA": "10000", "reserveB": "10000",
			})
		},
	))
	defer srv.Close()

	client, err := amm.NewClient(srv.URL, 1000)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.GetPool(ctx, 0, 31566704)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, lookups, "a cancelled lookup must not hit the service")
}

func TestPrepareSwap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/swap/execute", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"poolExists": true,
				"transactions": []string{
					base64.StdEncoding.EncodeToString([]byte("pool-leg")),
					base64.StdEncoding.EncodeToString([]byte("sender-leg")),
				},
				"senderTransactionIndices": []int{1},
				"transactionGroup":         "group-1",
				"output":                   "99.5",
				"minAmountOut":             "98.5",
				"fees":                     "0.3",
			})
		},
	))
	defer srv.Close()

	client, err := amm.NewClient(srv.URL, 100)
	require.NoError(t, err)

	manifest, err := client.PrepareSwap(context.Background(), ports.PrepareSwap{
		AssetIn:      0,
		AssetOut:     31566704,
		AmountIn:     decimal.NewFromInt(100),
		MinAmountOut: decimal.RequireFromString("98.5"),
		Sender:       "SENDERADDRESS",
	})
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("pool-leg"), []byte("sender-leg")}, manifest.Transactions)
	require.Equal(t, []int{1}, manifest.BuyerIndices)
	require.Equal(t, "group-1", manifest.GroupId)
}

func TestPrepareSwapWithoutPool(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"poolExists": false})
		},
	))
	defer srv.Close()

	client, err := amm.NewClient(srv.URL, 100)
	require.NoError(t, err)

	_, err = client.PrepareSwap(context.Background(), ports.PrepareSwap{
		AssetIn: 0, AssetOut: 31566704,
		AmountIn: decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
}

func TestSubmitSwapReportsServerErrorVerbatim(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "group signature mismatch",
			})
		},
	))
	defer srv.Close()

	client, err := amm.NewClient(srv.URL, 100)
	require.NoError(t, err)

	_, err = client.SubmitSwap(context.Background(), ports.SubmitSwap{
		SignedTransactions: [][]byte{[]byte("leg")},
		GroupId:            "group-1",
		Sender:             "SENDERADDRESS",
	})
	require.ErrorIs(t, err, domain.ErrSubmissionFailed)
	require.Contains(t, err.Error(), "group signature mismatch")
}

func TestAccountBalance(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/accounts/SENDERADDRESS/balances", r.URL.Path)
			require.Equal(t, "0", r.URL.Query().Get("asset"))
			json.NewEncoder(w).Encode(map[string]string{"amount": "123.45"})
		},
	))
	defer srv.Close()

	client, err := amm.NewClient(srv.URL, 100)
	require.NoError(t, err)

	balances, ok := client.(interface {
		AccountBalance(ctx context.Context, address string, assetId uint64) (decimal.Decimal, error)
	})
	require.True(t, ok)

	amount, err := balances.AccountBalance(context.Background(), "SENDERADDRESS", 0)
	require.NoError(t, err)
	require.True(t, amount.Equal(decimal.RequireFromString("123.45")))
}
