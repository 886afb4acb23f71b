package main

import (
	"context"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sourcegraph/metagen"
)

// readInputs calls fn with the name and contents of each file named in args, or with the contents
// of stdin if args is empty.
func readInputs(args []string, fn func(name string, data []byte) error) error {
	if len(args) == 0 {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return fn("-", data)
	}
	for _, name := range args {
		data, err := ioutil.ReadFile(name)
		if err != nil {
			return err
		}
		if err := fn(name, data); err != nil {
			return err
		}
	}
	return nil
}

// prepareFile extracts (and, if process is set, processes) the metadata of a Markdown file on
// disk.
func prepareFile(ctx context.Context, name string, process bool) (*metagen.Result, error) {
	fs := http.Dir(filepath.Dir(name))
	path := "/" + filepath.Base(name)
	if process {
		return metagen.ReadAndProcess(ctx, fs, path)
	}
	return metagen.ReadAndPrepare(ctx, fs, path)
}

// prepareInputs is like readInputs, but yields the prepared metadata of each input.
func prepareInputs(ctx context.Context, args []string, process bool, fn func(name string, result *metagen.Result) error) error {
	if len(args) == 0 {
		return readInputs(nil, func(name string, data []byte) error {
			prepare := metagen.ExtractAndPrepare
			if process {
				prepare = metagen.ProcessAndPrepare
			}
			result, err := prepare(string(data))
			if err != nil {
				return err
			}
			return fn(name, result)
		})
	}
	for _, name := range args {
		result, err := prepareFile(ctx, name, process)
		if err != nil {
			return errors.WithMessage(err, name)
		}
		if err := fn(name, result); err != nil {
			return err
		}
	}
	return nil
}
