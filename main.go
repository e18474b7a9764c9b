package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:     "pitchdeck",
		HelpName: "pitchdeck",
		Usage:    "Lay out a slide deck description and render it to PDF",
		Commands: []*cli.Command{
			buildCommand,
			estimateCommand,
			configCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
