package main

import (
	"context"
	"flag"
)

func init() {
	flagSet := flag.NewFlagSet("info", flag.ExitOnError)

	handler := func(ctx context.Context, args []string) error {
		config, _, err := readConfig(*configPath)
		if err != nil {
			return err
		}
		return printJSON(config)
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "print site configuration",
		LongDescription:  "The info subcommand prints the validated contents of the site configuration file.",
		handler:          handler,
	})
}
