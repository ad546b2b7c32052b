package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tristendillon/importfix/core/classification"
	"github.com/tristendillon/importfix/core/logger"
	"github.com/tristendillon/importfix/core/walker"
	"gopkg.in/yaml.v3"
)

const FileName = "importfix.yaml"

type Config struct {
	Root    string   `yaml:"root"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Workers int      `yaml:"workers"`
	// Categories maps a folder to the components that now live in it. When
	// empty the built-in table is used.
	Categories map[string][]string `yaml:"categories"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Root:    "components",
		Include: append([]string{}, walker.DefaultInclude...),
		Exclude: append([]string{}, walker.DefaultExclude...),
		Workers: 1,
	}
}

// Load reads path, or importfix.yaml in the working directory when path is
// empty. A missing default file yields Default(); a missing explicit file is
// an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working dir: %w", err)
		}
		path = filepath.Join(wd, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			logger.Debug("No config file found, using default config")
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Path = path

	logger.Debug("Config file found: %s", path)
	logger.Debug("Config: %+v", *cfg)
	return cfg, nil
}

// Parse decodes yaml on top of Default(). Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root cannot be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	return nil
}

// Table builds the classification table for this config.
func (c *Config) Table() (*classification.Table, error) {
	if len(c.Categories) == 0 {
		return classification.Default(), nil
	}

	groups := make(map[classification.CategoryFolder][]classification.ComponentName, len(c.Categories))
	for folder, names := range c.Categories {
		components := make([]classification.ComponentName, 0, len(names))
		for _, name := range names {
			components = append(components, classification.ComponentName(name))
		}
		groups[classification.CategoryFolder(folder)] = components
	}

	table, err := classification.New(groups)
	if err != nil {
		return nil, fmt.Errorf("invalid categories: %w", err)
	}
	return table, nil
}

func (c *Config) Walker() (*walker.Walker, error) {
	return walker.New(c.Include, c.Exclude)
}
