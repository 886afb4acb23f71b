package main

import (
	"context"
	"flag"

	"github.com/sourcegraph/metagen"
)

func init() {
	flagSet := flag.NewFlagSet("extract", flag.ExitOnError)
	var (
		process = flagSet.Bool("process", false, "normalize the date, check required fields and derive the slug")
	)

	handler := func(ctx context.Context, args []string) error {
		return prepareInputs(ctx, args, *process, func(name string, result *metagen.Result) error {
			return printJSON(result)
		})
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "print front matter metadata as JSON",
		LongDescription:  "The extract subcommand reads the front matter of each Markdown file (or of stdin) and prints its flattened metadata, keywords and meta tags as JSON.",
		handler:          handler,
	})
}
