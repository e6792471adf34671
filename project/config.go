package project

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/gdevelop/gdser/encode"
	"github.com/gdevelop/gdser/format"
	"github.com/gdevelop/gdser/splitter"
)

var ErrConfig = errors.New("invalid project config")

// Config describes how a project is laid out on disk.
type Config struct {
	// Format of the base file and the fragment files.
	Format format.Format `yaml:"format"`
	// Indent is the number of spaces per level, 0 for compact files.
	Indent int `yaml:"indent"`
	// Compress wraps files in zstd frames.
	Compress bool `yaml:"compress"`
	// BaseName is the base file name without suffix.
	BaseName string `yaml:"baseName"`
	// XMLRoot names the document element of an XML base file.
	XMLRoot string `yaml:"xmlRoot"`

	// SplitPaths are the paths stored in fragment files.
	SplitPaths []string `yaml:"splitPaths"`
	// NameAttribute names fragments.
	NameAttribute string `yaml:"nameAttribute"`

	// Prune removes fragment files no fragment was saved to.
	Prune bool `yaml:"prune"`
	// Umask is applied to created files and directories.
	Umask int `yaml:"umask"`
}

// DefaultConfig returns the layout used by project files: indented JSON,
// a game base file and the default split paths.
func DefaultConfig() *Config {
	return &Config{
		Format:        format.JSONFormat,
		Indent:        2,
		BaseName:      "game",
		XMLRoot:       encode.DefaultXMLRoot,
		SplitPaths:    append([]string(nil), splitter.DefaultSplitPaths...),
		NameAttribute: splitter.DefaultNameAttribute,
		Umask:         0o022,
	}
}

// LoadConfig loads a configuration file in YAML or JSON. Fields it does not
// set keep their default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := c.Format.MarshalText(); err != nil {
		return fmt.Errorf("%w: format %d", ErrConfig, int(c.Format))
	}
	if c.Indent < 0 {
		return fmt.Errorf("%w: negative indent", ErrConfig)
	}
	if c.BaseName == "" || strings.ContainsAny(c.BaseName, `/\`) {
		return fmt.Errorf("%w: base name %q", ErrConfig, c.BaseName)
	}
	for _, p := range c.SplitPaths {
		if !strings.HasPrefix(p, splitter.DefaultSeparator) || strings.Contains(p, "..") {
			return fmt.Errorf("%w: split path %q", ErrConfig, p)
		}
	}
	return nil
}
