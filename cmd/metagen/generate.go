package main

import (
	"context"
	"flag"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sourcegraph/metagen"
)

func init() {
	flagSet := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		outDir = flagSet.String("out", "out", "path to output `dir` where .html files are written")
	)

	handler := func(ctx context.Context, args []string) error {
		site, _, err := siteFromFlags()
		if err != nil {
			return err
		}

		if err := os.RemoveAll(*outDir); err != nil && !os.IsNotExist(err) {
			return errors.WithMessage(err, "removing old output dir")
		}
		n, err := generateSite(ctx, site, *outDir)
		if err != nil {
			return err
		}
		log.Printf("# Wrote %d pages to %s", n, *outDir)
		return nil
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "write all output .html files for site",
		LongDescription:  "The generate subcommand renders every page of the site and writes it to a directory, together with the content assets (such as images). Output paths are slugified.",
		aliases:          []string{"gen"},
		handler:          handler,
	})
}

// generateSite writes the rendered pages and the content assets of site to outDir. It returns the
// number of pages written.
func generateSite(ctx context.Context, site *metagen.Site, outDir string) (int, error) {
	writeFile := func(path string, data []byte) error {
		outPath := filepath.Join(outDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(outPath), 0700); err != nil {
			return err
		}
		return ioutil.WriteFile(outPath, data, 0600)
	}

	var n int
	err := site.Generate(ctx, func(outputPath string, page *metagen.Page, data []byte) error {
		n++
		return writeFile(outputPath, data)
	})
	if err != nil {
		return n, err
	}

	err = metagen.WalkFileSystem(site.Content, metagen.IsContentAsset, func(path string) error {
		data, err := metagen.ReadFile(site.Content, "/"+path)
		if err != nil {
			return err
		}
		return writeFile(path, data)
	})
	if err != nil {
		return n, errors.WithMessage(err, "copying assets")
	}
	return n, nil
}
