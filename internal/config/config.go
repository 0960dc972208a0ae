// Package config loads wayfind.toml. Every knob has a default; a missing
// file is not an error, a malformed one is.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full client configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Viewport ViewportConfig `toml:"viewport"`
	UI       UIConfig       `toml:"ui"`
}

type ServerConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ViewportConfig tunes viewport-driven fetch behavior.
type ViewportConfig struct {
	// ContinueThreshold is the intersection-over-union above which a pan
	// counts as "same view": the search panel keeps paginating instead of
	// reloading. Deliberately configurable, not hard-coded.
	ContinueThreshold float64 `toml:"continue_threshold"`
}

type UIConfig struct {
	StartPath string `toml:"start_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:   ServerConfig{URL: "https://api.wayfind.test", TimeoutSeconds: 30},
		Viewport: ViewportConfig{ContinueThreshold: 0.6},
		UI:       UIConfig{StartPath: "/"},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("read %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the knobs that have hard ranges.
func (c Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url must be set")
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be positive")
	}
	if c.Viewport.ContinueThreshold < 0 || c.Viewport.ContinueThreshold > 1 {
		return fmt.Errorf("viewport.continue_threshold must be in [0,1]")
	}
	if c.UI.StartPath == "" || c.UI.StartPath[0] != '/' {
		return fmt.Errorf("ui.start_path must start with '/'")
	}
	return nil
}

// Timeout returns the server timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}
