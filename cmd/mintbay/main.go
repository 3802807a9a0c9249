package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mintbay-network/mintbay-trader/internal/config"
	"github.com/mintbay-network/mintbay-trader/internal/core/application/swap"
	"github.com/mintbay-network/mintbay-trader/internal/core/application/trade"
	"github.com/mintbay-network/mintbay-trader/internal/core/domain"
	"github.com/mintbay-network/mintbay-trader/internal/infrastructure/amm"
	"github.com/mintbay-network/mintbay-trader/internal/infrastructure/orderbook"
	dbbadger "github.com/mintbay-network/mintbay-trader/internal/infrastructure/storage/db/badger"
	"github.com/mintbay-network/mintbay-trader/internal/infrastructure/storage/db/inmemory"
	"github.com/mintbay-network/mintbay-trader/internal/infrastructure/wallet"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "mintbay trader CLI"
	app.Usage = "Command line interface for trading NFTs and swapping assets on mintbay"
	app.Commands = append(
		app.Commands,
		&sell,
		&listings,
		&nftinfo,
		&cancel,
		&buy,
		&quote,
		&swapcmd,
		&history,
		&configinfo,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

// services bundles everything a command needs, plus the cleanup releasing
// the underlying store.
type services struct {
	trade *trade.Service
	swap  *swap.Service
	repo  domain.OperationRepository
}

func getServices() (*services, func(), error) {
	if err := config.InitConfig(); err != nil {
		return nil, nil, err
	}

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repo, cleanup, err := getOperationRepository()
	if err != nil {
		return nil, nil, err
	}

	ammClient, err := amm.NewClient(
		config.GetString(config.AmmURLKey),
		config.GetInt(config.PoolRequestsPerSecondKey),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	orderBookClient, err := orderbook.NewClient(config.GetString(config.OrderBookURLKey))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	// the AMM service doubles as the wallet's balance source
	walletSvc, err := wallet.NewService(
		config.GetString(config.WalletSeedFileKey),
		ammClient.(wallet.BalanceSource),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	confirmInterval := config.GetConfirmPollInterval()
	confirmAttempts := config.GetInt(config.ConfirmPollAttemptsKey)

	currencyAssets, err := config.GetCurrencyAssets()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	tradeSvc, err := trade.NewService(
		orderBookClient, walletSvc, repo,
		config.GetString(config.MarketplaceIdKey), config.GetOrderTTL(),
		currencyAssets, confirmInterval, confirmAttempts,
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	swapSvc, err := swap.NewService(
		ammClient, walletSvc, repo, confirmInterval, confirmAttempts,
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &services{trade: tradeSvc, swap: swapSvc, repo: repo}, cleanup, nil
}

func getOperationRepository() (domain.OperationRepository, func(), error) {
	if config.GetString(config.DBTypeKey) == config.DBInMemory {
		return inmemory.NewOperationRepositoryImpl(), func() {}, nil
	}

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	dbManager, err := dbbadger.NewDbManager(dbDir, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("opening db: %w", err)
	}
	return dbbadger.NewOperationRepositoryImpl(dbManager), func() {
		if err := dbManager.Close(); err != nil {
			log.WithError(err).Warn("failed to close db")
		}
	}, nil
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[mintbay] %v\n", err)
	os.Exit(1)
}
