package qmlnet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the file form of the bootstrap options.
type Config struct {
	// Library is the logical library name or a path to the library file.
	Library string `toml:"library"`

	// SearchDirs are searched when the system loader cannot find the
	// library. Relative entries are relative to the config file.
	SearchDirs []string `toml:"search_dirs"`

	// ProcessExports enables host-export mode when the executable exports
	// the native entry points.
	ProcessExports bool `toml:"process_exports"`

	// Fingerprint records a digest of the loaded library.
	Fingerprint bool `toml:"fingerprint"`

	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// ParseConfig decodes a TOML document.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("qmlnet: parse config: %w", err)
	}
	return c, nil
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("qmlnet: read config: %w", err)
	}
	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}
	base := filepath.Dir(path)
	for i, d := range c.SearchDirs {
		if d != "" && !filepath.IsAbs(d) {
			c.SearchDirs[i] = filepath.Join(base, d)
		}
	}
	return c, nil
}

// Options converts the config to bootstrap options.
func (c Config) Options() []Option {
	var opts []Option
	if c.Library != "" {
		opts = append(opts, WithLibraryName(c.Library))
	}
	if len(c.SearchDirs) > 0 {
		opts = append(opts, WithSearchDirs(c.SearchDirs...))
	}
	if c.ProcessExports {
		opts = append(opts, WithProcessExports())
	}
	if c.Fingerprint {
		opts = append(opts, WithFingerprint())
	}
	return opts
}
