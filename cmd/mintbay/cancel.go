package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var cancel = cli.Command{
	Name:  "cancel",
	Usage: "cancel one of your listings",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "order",
			Usage:    "the id of the listing to cancel",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "nft",
			Usage: "the id of the listed NFT, enables the local ownership check",
		},
	},
	Action: cancelAction,
}

func cancelAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.trade.CancelListing(
		context.Background(), ctx.String("nft"), ctx.String("order"),
	); err != nil {
		return err
	}

	fmt.Println("listing cancelled")
	return nil
}
