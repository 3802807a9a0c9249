package main

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var sell = cli.Command{
	Name:  "sell",
	Usage: "list an NFT for sale at a fixed price",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "nft",
			Usage:    "the id of the NFT to list",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "asset",
			Usage: "the on-chain asset id of the NFT",
		},
		&cli.StringFlag{
			Name:     "price",
			Usage:    "the asking price",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "currency",
			Usage: "the currency the price is denominated in",
			Value: "ALGO",
		},
	},
	Action: sellAction,
}

func sellAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	price, err := decimal.NewFromString(ctx.String("price"))
	if err != nil {
		return err
	}

	order, err := svc.trade.CreateListing(
		context.Background(), ctx.String("nft"), ctx.Uint64("asset"),
		price, ctx.String("currency"),
	)
	if err != nil {
		return err
	}

	printRespJSON(order)

	return nil
}
