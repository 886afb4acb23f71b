package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/template"
)

// command is a subcommand: its flags, help text and handler.
type command struct {
	// FlagSet holds the command's flags. Its name is the command's name.
	FlagSet *flag.FlagSet

	// ShortDescription is shown next to the command in the top-level help message, and
	// LongDescription in the command's own help message.
	ShortDescription, LongDescription string

	aliases []string

	// handler is invoked with the arguments that remain after the command's flags are parsed. The
	// context is cancelled on interrupt.
	handler func(ctx context.Context, args []string) error
}

// names returns the command name followed by its aliases.
func (c *command) names() []string {
	return append([]string{c.FlagSet.Name()}, c.aliases...)
}

func (c *command) NameAndAliases() string {
	return strings.Join(c.names(), ",")
}

func (c *command) matches(name string) bool {
	for _, n := range c.names() {
		if n == name {
			return true
		}
	}
	return false
}

func (c *command) usage(cmdName string) func() {
	return func() {
		out := c.FlagSet.Output()
		fmt.Fprintf(out, "Usage:\n\n  %s [options] %s", cmdName, c.FlagSet.Name())
		if hasFlags(c.FlagSet) {
			fmt.Fprint(out, " [command options]")
		}
		fmt.Fprintln(out)
		if c.LongDescription != "" {
			fmt.Fprintf(out, "\n%s\n\n", c.LongDescription)
		}
		if hasFlags(c.FlagSet) {
			fmt.Fprint(out, "The command options are:\n\n")
			c.FlagSet.PrintDefaults()
		}
	}
}

// commander represents a top-level command with subcommands.
type commander []*command

// lookup returns the command registered under name or one of its aliases.
func (c commander) lookup(name string) *command {
	for _, cmd := range c {
		if cmd.matches(name) {
			return cmd
		}
	}
	return nil
}

// run parses args, runs the selected subcommand and exits.
func (c commander) run(flagSet *flag.FlagSet, cmdName string, usage *template.Template, args []string) {
	flagSet.Usage = func() {
		data := struct {
			FlagUsage func() string
			Commands  []*command
		}{
			FlagUsage: func() string { flagSet.PrintDefaults(); return "" },
			Commands:  c,
		}
		if err := usage.Execute(flagSet.Output(), data); err != nil {
			log.Fatal(err)
		}
	}
	if !flagSet.Parsed() {
		flagSet.Parse(args)
	}

	if flagSet.Arg(0) == "help" || flagSet.NArg() == 0 {
		flagSet.Usage()
		os.Exit(0)
	}

	name := flagSet.Arg(0)
	cmd := c.lookup(name)
	if cmd == nil {
		log.Printf("%s: unknown subcommand %q", cmdName, name)
		log.Fatalf("Run '%s help' for usage.", cmdName)
	}
	cmd.FlagSet.Usage = cmd.usage(cmdName)
	if err := cmd.FlagSet.Parse(flagSet.Args()[1:]); err != nil {
		panic(fmt.Sprintf("all registered commands should use flag.ExitOnError: error: %s", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.handler(ctx, cmd.FlagSet.Args())
	stop()
	os.Exit(exitCode(err, cmd))
}

// exitCode reports err and returns the process exit code for it.
func exitCode(err error, cmd *command) int {
	switch e := err.(type) {
	case nil:
		return 0
	case *usageError:
		log.Println(e.error)
		cmd.FlagSet.Usage()
		return 2
	case *exitCodeError:
		if e.error != nil {
			log.Println(e.error)
		}
		return e.exitCode
	default:
		log.Println(err)
		return 1
	}
}

func hasFlags(flagSet *flag.FlagSet) bool {
	var ok bool
	flagSet.VisitAll(func(*flag.Flag) { ok = true })
	return ok
}

// usageError makes the commander print the command's usage after the error and exit with code 2.
type usageError struct {
	error
}

// exitCodeError makes the commander exit with exitCode instead of 1.
type exitCodeError struct {
	error
	exitCode int
}
