package main

import (
	"context"
	"flag"

	"github.com/pkg/errors"

	"github.com/sourcegraph/metagen/metatags"
)

func init() {
	flagSet := flag.NewFlagSet("scrape", flag.ExitOnError)
	var (
		asMap = flagSet.Bool("map", false, "print a name-to-content object instead of the list of tags")
	)

	handler := func(ctx context.Context, args []string) error {
		return readInputs(args, func(name string, data []byte) error {
			tags, err := metatags.Extract(string(data))
			if err != nil {
				return errors.WithMessage(err, name)
			}
			if *asMap {
				return printJSON(metatags.ToMap(tags))
			}
			if tags == nil {
				tags = []metatags.MetaTag{}
			}
			return printJSON(tags)
		})
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "print the meta tags of HTML documents",
		LongDescription:  "The scrape subcommand prints the meta tags found in each HTML file (or in stdin) as JSON, in document order.",
		handler:          handler,
	})
}
