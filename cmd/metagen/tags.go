package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/sourcegraph/metagen"
)

// tagFlag is a repeatable flag of name=content pairs.
type tagFlag [][2]string

func (f *tagFlag) String() string {
	var parts []string
	for _, tag := range *f {
		parts = append(parts, tag[0]+"="+tag[1])
	}
	return strings.Join(parts, ",")
}

func (f *tagFlag) Set(value string) error {
	i := strings.Index(value, "=")
	if i <= 0 {
		return fmt.Errorf("invalid tag %q (want name=content)", value)
	}
	*f = append(*f, [2]string{value[:i], value[i+1:]})
	return nil
}

func init() {
	flagSet := flag.NewFlagSet("tags", flag.ExitOnError)
	var (
		process = flagSet.Bool("process", false, "process the metadata before generating tags")
		extra   tagFlag
	)
	flagSet.Var(&extra, "tag", "additional `name=content` meta tag (repeatable)")

	handler := func(ctx context.Context, args []string) error {
		return prepareInputs(ctx, args, *process, func(name string, result *metagen.Result) error {
			tags := result.Tags
			for _, tag := range extra {
				tags.AddCustomTag(tag[0], tag[1])
			}
			if !tags.IsEmpty() {
				fmt.Fprintln(stdout, string(tags.HTML()))
			}
			return nil
		})
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "print the meta tags generated from front matter",
		LongDescription:  "The tags subcommand prints the HTML meta tags generated from the front matter of each Markdown file (or of stdin), grouped as apple, primary, Open Graph, Microsoft and Twitter tags.",
		handler:          handler,
	})
}
