package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"

	"github.com/sourcegraph/metagen"
	"github.com/sourcegraph/metagen/metadata"
)

// siteConfig is the shape of metagen.json. Paths are relative to the directory containing the
// file.
type siteConfig struct {
	Content                string `json:"content"`
	Templates              string `json:"templates"`
	BaseURLPath            string `json:"baseURLPath,omitempty"`
	Schema                 string `json:"schema,omitempty"`
	Process                bool   `json:"process,omitempty"`
	CheckIgnoreSlugPattern string `json:"checkIgnoreSlugPattern,omitempty"`
}

var urlPathPattern = regexp.MustCompile(`^/`)

func (c siteConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Content, validation.Required),
		validation.Field(&c.Templates, validation.Required),
		validation.Field(&c.BaseURLPath, validation.Match(urlPathPattern).Error("must start with /")),
		validation.Field(&c.CheckIgnoreSlugPattern, validation.By(isRegexp)),
	)
}

func isRegexp(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := regexp.Compile(s); err != nil {
		return validation.NewError("validation_is_regexp", err.Error())
	}
	return nil
}

// readConfig reads the first config file found in the list of search paths. It returns the
// directory that the file's relative paths are resolved against.
func readConfig(searchPaths string) (*siteConfig, string, error) {
	for _, path := range filepath.SplitList(searchPaths) {
		data, err := ioutil.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, "", errors.WithMessage(err, "reading config file (from -config flag)")
		}
		config, err := parseConfig(data)
		if err != nil {
			return nil, "", errors.WithMessage(err, path)
		}
		return config, filepath.Dir(path), nil
	}
	return nil, "", fmt.Errorf("no metagen.json config file found (search paths: %s)", searchPaths)
}

func parseConfig(data []byte) (*siteConfig, error) {
	var config siteConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, errors.WithMessage(err, "reading configuration")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid configuration")
	}
	return &config, nil
}

func siteFromConfig(config *siteConfig, baseDir string) (*metagen.Site, error) {
	site := &metagen.Site{
		Content:   http.Dir(filepath.Join(baseDir, config.Content)),
		Templates: http.Dir(filepath.Join(baseDir, config.Templates)),
		Process:   config.Process,
	}
	if config.BaseURLPath != "" {
		site.Base = &url.URL{Path: config.BaseURLPath}
	}
	if config.Schema != "" {
		data, err := ioutil.ReadFile(filepath.Join(baseDir, config.Schema))
		if err != nil {
			return nil, errors.WithMessage(err, "reading metadata schema")
		}
		if site.Schema, err = metadata.CompileSchema(data); err != nil {
			return nil, err
		}
	}
	if config.CheckIgnoreSlugPattern != "" {
		// Already validated.
		site.CheckIgnoreSlugPattern = regexp.MustCompile(config.CheckIgnoreSlugPattern)
	}
	return site, nil
}

func siteFromFlags() (*metagen.Site, *siteConfig, error) {
	config, baseDir, err := readConfig(*configPath)
	if err != nil {
		return nil, nil, err
	}
	site, err := siteFromConfig(config, baseDir)
	if err != nil {
		return nil, nil, err
	}
	return site, config, nil
}
