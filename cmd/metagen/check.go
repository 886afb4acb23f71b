package main

import (
	"context"
	"flag"
	"fmt"
)

func init() {
	flagSet := flag.NewFlagSet("check", flag.ExitOnError)

	handler := func(ctx context.Context, args []string) error {
		site, _, err := siteFromFlags()
		if err != nil {
			return err
		}
		problems, err := site.Check(ctx)
		if err != nil {
			return err
		}
		if len(problems) > 0 {
			for _, problem := range problems {
				fmt.Fprintln(stdout, problem)
			}
			return &exitCodeError{error: fmt.Errorf("%d problems found", len(problems)), exitCode: 1}
		}
		return nil
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "check all pages for problems",
		LongDescription:  "The check subcommand checks every page of the site for problems, such as front matter processing errors, schema violations, missing or duplicate meta tags, broken links and duplicate slugs.",
		handler:          handler,
	})
}
