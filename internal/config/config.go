// Package config loads the settings of the ofxtree command.
package config

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v3"
)

// Output formats of the parse command.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds the command settings.
type Config struct {
	// Format is the output format of parse, yaml or json.
	Format string `yaml:"format"`

	// Indent is the indentation width of parse output.
	Indent int `yaml:"indent"`

	// Header holds values serialize uses for header keys a document lacks.
	Header map[string]string `yaml:"header"`

	// NewFileUID makes serialize generate a fresh NEWFILEUID when the document has none.
	NewFileUID bool `yaml:"new_file_uid"`
}

// Default returns the settings used without a config file.
func Default() *Config {
	return &Config{
		Format: FormatYAML,
		Indent: 2,
		Header: map[string]string{},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error - reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error - parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("error - unknown format %q", c.Format)
	}
	if c.Indent < 0 {
		return fmt.Errorf("error - indent must not be negative, got %d", c.Indent)
	}
	return nil
}
