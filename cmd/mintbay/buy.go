package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var buy = cli.Command{
	Name:  "buy",
	Usage: "purchase a listing, driving the trade through signing and confirmation",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "order",
			Usage:    "the id of the listing to purchase",
			Required: true,
		},
	},
	Action: buyAction,
}

func buyAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	op, err := svc.trade.Execute(context.Background(), ctx.String("order"))
	if op != nil {
		printRespJSON(op)
	}
	return err
}
