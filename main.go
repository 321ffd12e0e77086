package main

import (
	"os"

	"github.com/urfave/cli/v2"
)

var commands []*cli.Command

func main() {
	app := &cli.App{
		Name:                   "mocha",
		Usage:                  "A tiny scripting language that compiles to C",
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Commands:               commands,
	}

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}
}
