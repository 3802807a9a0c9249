package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var nftinfo = cli.Command{
	Name:  "nft",
	Usage: "show the full trading view of an NFT: listings, history and stats",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "nft",
			Usage:    "the id of the NFT",
			Required: true,
		},
	},
	Action: nftInfoAction,
}

func nftInfoAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := svc.trade.GetNftTrading(context.Background(), ctx.String("nft"))
	if err != nil {
		return err
	}

	printRespJSON(info)

	return nil
}
