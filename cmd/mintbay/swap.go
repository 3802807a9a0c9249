package main

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var swapcmd = cli.Command{
	Name:  "swap",
	Usage: "execute a swap between two assets",
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
	Action: swapAction,
}

func swapAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	amount, err := decimal.NewFromString(ctx.String("amount"))
	if err != nil {
		return err
	}

	op, err := svc.swap.Execute(
		context.Background(), ctx.Uint64("in"), ctx.Uint64("out"),
		amount, slippageArg(ctx),
	)
	if op != nil {
		printRespJSON(op)
	}
	return err
}
