package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/toon-sphere/internal/scene"
)

// Path returns the file the config was loaded from, or the user config file
// when no file was found.
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save writes the config to Path.
func (c *Config) Save() error {
	return c.SaveTo(c.Path())
}

// SaveParams makes v the startup parameters. The file at Path is rewritten
// with only its render parameters replaced, so flag overrides of this run
// are not persisted.
func (c *Config) SaveParams(v scene.Values) error {
	path := c.Path()
	onDisk := Default()
	if err := loadFromFile(onDisk, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	onDisk.Render.Params = v
	if err := onDisk.SaveTo(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	c.Render.Params = v
	return nil
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
