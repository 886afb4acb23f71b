package main

import (
	"flag"
	"log"
	"os"
	"text/template"
)

var usage = template.Must(template.New("").Parse(`metagen extracts metadata from the front matter of Markdown documents and turns it into HTML meta tags.

Usage:

  metagen [options] command [command options]

The options are:

{{call .FlagUsage }}
The commands are:
{{range .Commands}}
  {{printf "%- 15s" .NameAndAliases}} {{.ShortDescription}}
{{- end}}

Use "metagen [command] -h" for more information about a command.

`))

var configPath = flag.String("config", "metagen.json", "search `paths` (separated by the OS path list separator) for the site configuration file")

// commands contains all registered subcommands.
var commands commander

func main() {
	log.SetFlags(0)
	log.SetPrefix("")
	commands.run(flag.CommandLine, "metagen", usage, os.Args[1:])
}
