package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listings = cli.Command{
	Name:  "listings",
	Usage: "list the active listings of an NFT, best ask first",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "nft",
			Usage:    "the id of the NFT",
			Required: true,
		},
	},
	Action: listingsAction,
}

func listingsAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	list, err := svc.trade.ListActive(context.Background(), ctx.String("nft"))
	if err != nil {
		return err
	}

	printRespJSON(list)

	return nil
}
