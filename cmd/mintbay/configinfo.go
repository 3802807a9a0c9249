package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mintbay-network/mintbay-trader/internal/config"
)

var configinfo = cli.Command{
	Name:   "config",
	Usage:  "print the resolved configuration",
	Action: configInfoAction,
}

func configInfoAction(ctx *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		config.OrderBookURLKey:          config.GetString(config.OrderBookURLKey),
		config.AmmURLKey:                config.GetString(config.AmmURLKey),
		config.DatadirKey:               config.GetDatadir(),
		config.LogLevelKey:              config.GetInt(config.LogLevelKey),
		config.MarketplaceIdKey:         config.GetString(config.MarketplaceIdKey),
		config.OrderTTLKey:              config.GetInt(config.OrderTTLKey),
		config.PriceSlippageKey:         config.GetFloat(config.PriceSlippageKey),
		config.ConfirmPollIntervalKey:   config.GetInt(config.ConfirmPollIntervalKey),
		config.ConfirmPollAttemptsKey:   config.GetInt(config.ConfirmPollAttemptsKey),
		config.CurrencyAssetsKey:        config.GetString(config.CurrencyAssetsKey),
		config.DBTypeKey:                config.GetString(config.DBTypeKey),
		config.PoolRequestsPerSecondKey: config.GetInt(config.PoolRequestsPerSecondKey),
	})

	return nil
}
