package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/quick"
	isatty "github.com/mattn/go-isatty"
)

var stdout io.Writer = os.Stdout

// colorize is whether JSON output is syntax highlighted.
var colorize = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// highlight writes source to w with terminal colors.
var highlight = quick.Highlight

// printJSON writes v as indented JSON, highlighted if colorize is set and plain otherwise.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if colorize {
		var buf bytes.Buffer
		if err := highlight(&buf, string(data)+"\n", "json", "terminal256", "monokai"); err == nil {
			_, err = buf.WriteTo(stdout)
			return err
		}
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}
