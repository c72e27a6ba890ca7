package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configHeader is written above every saved config.
const configHeader = "# skeltool configuration. Flags override these values.\n"

// Marshal encodes the config as a YAML document with a header comment.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the config to config.yaml in ConfigDir and returns the path
// written.
func (c *Config) Save() (string, error) {
	path := filepath.Join(ConfigDir(), "config.yaml")
	return path, c.SaveTo(path)
}

// SaveTo validates the config and writes it to path, creating parent
// directories as needed.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
