package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/assethat/internal/core/domain"
)

// Config mirrors config/assets.yml
type Config struct {
	CSS Section `yaml:"css"`
	JS  Section `yaml:"js"`

	// Asset host (CDN origin) per environment name
	AssetHosts map[string]string `yaml:"asset_hosts,omitempty"`

	// Locales generated by "locales generate"
	Locales []string `yaml:"locales,omitempty"`

	// Minifier engines per kind
	Minifier MinifierConfig `yaml:"minifier"`

	// Write a brotli-compressed .br copy next to every bundle
	Precompress bool `yaml:"precompress"`

	// Locale page fetching
	LocaleHost           string `yaml:"locale_host,omitempty"`
	LocaleTimeoutSeconds int    `yaml:"locale_timeout_seconds"`

	// Watcher
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// Section holds the bundle definitions of one asset kind
type Section struct {
	Bundles BundleSet `yaml:"bundles"`
}

// MinifierConfig selects the engine used per kind
type MinifierConfig struct {
	CSS string `yaml:"css"`
	JS  string `yaml:"js"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		AssetHosts: make(map[string]string),
		Minifier: MinifierConfig{
			CSS: "minify",
			JS:  "minify",
		},
		Precompress:          false,
		LocaleHost:           "http://localhost:3000",
		LocaleTimeoutSeconds: 30,
		WatchDebounceMS:      300,
	}
}

// Load reads configuration from the specified file path.
// Unlike optional settings files, a missing assets.yml is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Ensure map is initialized if nil
	if cfg.AssetHosts == nil {
		cfg.AssetHosts = make(map[string]string)
	}

	// Apply defaults for essential values if missing
	if cfg.Minifier.CSS == "" {
		cfg.Minifier.CSS = "minify"
	}
	if cfg.Minifier.JS == "" {
		cfg.Minifier.JS = "minify"
	}
	if cfg.LocaleHost == "" {
		cfg.LocaleHost = "http://localhost:3000"
	}
	if cfg.LocaleTimeoutSeconds <= 0 {
		cfg.LocaleTimeoutSeconds = 30
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 300
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// AssetHost returns the asset host configured for env, or ""
func (c *Config) AssetHost(env string) string {
	return strings.TrimSpace(c.AssetHosts[env])
}

func (c *Config) section(kind domain.Kind) *Section {
	switch kind {
	case domain.KindCSS:
		return &c.CSS
	case domain.KindJS:
		return &c.JS
	}
	return nil
}

// BundleNames returns the bundle names of a kind in file order
func (c *Config) BundleNames(kind domain.Kind) []string {
	s := c.section(kind)
	if s == nil {
		return nil
	}
	return s.Bundles.Names()
}

// BundleFiles returns the logical file names of a bundle
func (c *Config) BundleFiles(kind domain.Kind, name string) ([]string, bool) {
	s := c.section(kind)
	if s == nil {
		return nil, false
	}
	return s.Bundles.Files(name)
}

// BundlesContaining returns the bundles of a kind that list the given logical file
func (c *Config) BundlesContaining(kind domain.Kind, file string) []string {
	var names []string
	for _, name := range c.BundleNames(kind) {
		files, _ := c.BundleFiles(kind, name)
		for _, f := range files {
			if f == file {
				names = append(names, name)
				break
			}
		}
	}
	return names
}
