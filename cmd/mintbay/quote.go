package main

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/mintbay-network/mintbay-trader/internal/config"
)

var quote = cli.Command{
	Name:  "quote",
	Usage: "quote a swap between two assets without executing it",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "in",
			Usage: "the asset id to pay with (0 for ALGO)",
		},
		&cli.Uint64Flag{
			Name:  "out",
			Usage: "the asset id to receive (0 for ALGO)",
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the amount of the input asset to swap",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  "slippage",
			Usage: "the slippage tolerance, overrides the configured default",
		},
	},
	Action: quoteAction,
}

func quoteAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	amount, err := decimal.NewFromString(ctx.String("amount"))
	if err != nil {
		return err
	}

	q, err := svc.swap.Quote(
		context.Background(), ctx.Uint64("in"), ctx.Uint64("out"),
		amount, slippageArg(ctx),
	)
	if err != nil {
		return err
	}

	printRespJSON(q)

	return nil
}

func slippageArg(ctx *cli.Context) decimal.Decimal {
	if ctx.IsSet("slippage") {
		return decimal.NewFromFloat(ctx.Float64("slippage"))
	}
	return decimal.NewFromFloat(config.GetFloat(config.PriceSlippageKey))
}
