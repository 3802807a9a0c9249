package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// OrderBookURLKey is the base url of the order-book service
	OrderBookURLKey = "ORDERBOOK_URL"
	// AmmURLKey is the base url of the AMM service exposing pools and swaps
	AmmURLKey = "AMM_URL"
	// DatadirKey is the local data directory to store the operation log
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// WalletSeedFileKey is the full path to the file holding the hex-encoded wallet seed
	WalletSeedFileKey = "WALLET_SEED_FILE"
	// MarketplaceIdKey is the marketplace identifier stamped on every sell order
	MarketplaceIdKey = "MARKETPLACE_ID"
	// OrderTTLKey is the lifetime in seconds of newly created sell orders
	OrderTTLKey = "ORDER_TTL"
	// PriceSlippageKey is the default slippage tolerance applied to swap quotes
	PriceSlippageKey = "PRICE_SLIPPAGE"
	// ConfirmPollIntervalKey is the interval in seconds between confirmation polls
	ConfirmPollIntervalKey = "CONFIRM_POLL_INTERVAL"
	// ConfirmPollAttemptsKey is the number of confirmation polls before giving up
	ConfirmPollAttemptsKey = "CONFIRM_POLL_ATTEMPTS"
	// CurrencyAssetsKey maps the currency codes accepted on sell orders to the
	// on-chain asset they are paid in, as comma-separated code:assetId pairs
	CurrencyAssetsKey = "CURRENCY_ASSETS"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// PoolRequestsPerSecondKey caps the rate of pool lookups against the AMM service
	PoolRequestsPerSecondKey = "POOL_REQUESTS_PER_SECOND"

	DbLocation = "db"

	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var vip *viper.Viper

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("MINTBAY")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(MarketplaceIdKey, "mintbay")
	vip.SetDefault(OrderTTLKey, 604800)
	vip.SetDefault(PriceSlippageKey, 0.01)
	vip.SetDefault(ConfirmPollIntervalKey, 2)
	vip.SetDefault(ConfirmPollAttemptsKey, 30)
	vip.SetDefault(CurrencyAssetsKey, "ALGO:0")
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(PoolRequestsPerSecondKey, 5)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetOrderTTL returns the configured sell-order lifetime.
func GetOrderTTL() time.Duration {
	return time.Duration(GetInt(OrderTTLKey)) * time.Second
}

// GetConfirmPollInterval returns the interval between confirmation polls.
func GetConfirmPollInterval() time.Duration {
	return time.Duration(GetInt(ConfirmPollIntervalKey)) * time.Second
}

// GetCurrencyAssets returns the configured currency to payment asset mapping.
func GetCurrencyAssets() (map[string]uint64, error) {
	return parseCurrencyAssets(GetString(CurrencyAssetsKey))
}

func parseCurrencyAssets(raw string) (map[string]uint64, error) {
	assets := make(map[string]uint64)
	for _, pair := range strings.Split(raw, ",") {
		code, id, found := strings.Cut(strings.TrimSpace(pair), ":")
		if !found || len(code) <= 0 {
			return nil, fmt.Errorf(
				"currency mapping must be in code:assetId format, got %q", pair,
			)
		}
		assetId, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid asset id in currency mapping %q", pair)
		}
		assets[code] = assetId
	}
	return assets, nil
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if !vip.IsSet(OrderBookURLKey) {
		return fmt.Errorf("missing order-book service url")
	}
	if !isValidServiceURL(GetString(OrderBookURLKey)) {
		return fmt.Errorf("%s must be a valid http(s) url", OrderBookURLKey)
	}
	if !vip.IsSet(AmmURLKey) {
		return fmt.Errorf("missing amm service url")
	}
	if !isValidServiceURL(GetString(AmmURLKey)) {
		return fmt.Errorf("%s must be a valid http(s) url", AmmURLKey)
	}
	if !vip.IsSet(WalletSeedFileKey) {
		return fmt.Errorf("missing wallet seed file")
	}

	if GetInt(OrderTTLKey) < 1 {
		return fmt.Errorf("%s must be equal or greater than 1", OrderTTLKey)
	}

	slippage := GetFloat(PriceSlippageKey)
	if slippage < 0 || slippage >= 1 {
		return fmt.Errorf("%s must be in the [0, 1) range", PriceSlippageKey)
	}

	if GetInt(ConfirmPollIntervalKey) < 1 || GetInt(ConfirmPollAttemptsKey) < 1 {
		return fmt.Errorf("confirmation polling settings must be positive")
	}
	if GetInt(PoolRequestsPerSecondKey) < 1 {
		return fmt.Errorf("%s must be positive", PoolRequestsPerSecondKey)
	}

	if _, err := GetCurrencyAssets(); err != nil {
		return err
	}

	switch dbType := GetString(DBTypeKey); dbType {
	case DBBadger, DBInMemory:
	default:
		return fmt.Errorf("unsupported database type %s", dbType)
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mintbay"
	}
	return filepath.Join(home, ".mintbay")
}

func isValidServiceURL(urlStr string) bool {
	return strings.HasPrefix(urlStr, "http://") ||
		strings.HasPrefix(urlStr, "https://")
}
