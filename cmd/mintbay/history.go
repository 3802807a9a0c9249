package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var history = cli.Command{
	Name:   "history",
	Usage:  "list past trade and swap operations, newest first",
	Action: historyAction,
}

func historyAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	ops, err := svc.repo.GetAllOperations(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(ops)

	return nil
}
