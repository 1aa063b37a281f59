package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamal-hamza/assethat/internal/core/domain"
)

const sampleConfig = `css:
  bundles:
    application:
      - reset
      - layout
      - typography
    admin:
      - reset
      - admin
js:
  bundles:
    vendor:
      - jquery.min
      - underscore
    application:
      - app
    empty: []
asset_hosts:
  production: http://cdn.example.com
locales:
  - en
  - fr
precompress: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config", "assets.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.Minifier.CSS != "minify" || cfg.Minifier.JS != "minify" {
		t.Errorf("expected default minifiers 'minify', got %+v", cfg.Minifier)
	}

	if cfg.Precompress {
		t.Error("expected precompression to be off by default")
	}

	if cfg.LocaleHost != "http://localhost:3000" {
		t.Errorf("expected default LocaleHost, got %q", cfg.LocaleHost)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := cfg.BundleNames(domain.KindCSS)
	if strings.Join(names, ",") != "application,admin" {
		t.Errorf("expected css bundles in file order, got %v", names)
	}

	names = cfg.BundleNames(domain.KindJS)
	if strings.Join(names, ",") != "vendor,application,empty" {
		t.Errorf("expected js bundles in file order, got %v", names)
	}

	files, ok := cfg.BundleFiles(domain.KindCSS, "application")
	if !ok || strings.Join(files, ",") != "reset,layout,typography" {
		t.Errorf("unexpected files %v (ok=%v)", files, ok)
	}

	files, ok = cfg.BundleFiles(domain.KindJS, "empty")
	if !ok || len(files) != 0 {
		t.Errorf("expected empty bundle to be defined with no files, got %v (ok=%v)", files, ok)
	}

	if _, ok := cfg.BundleFiles(domain.KindJS, "missing"); ok {
		t.Error("expected missing bundle to be reported as undefined")
	}

	if cfg.AssetHost("production") != "http://cdn.example.com" {
		t.Errorf("unexpected production host %q", cfg.AssetHost("production"))
	}
	if cfg.AssetHost("development") != "" {
		t.Errorf("expected no development host, got %q", cfg.AssetHost("development"))
	}

	if !cfg.Precompress {
		t.Error("expected precompress to be enabled")
	}
	if strings.Join(cfg.Locales, ",") != "en,fr" {
		t.Errorf("unexpected locales %v", cfg.Locales)
	}

	// Defaults still applied for missing keys
	if cfg.Minifier.CSS != "minify" {
		t.Errorf("expected default CSS minifier, got %q", cfg.Minifier.CSS)
	}
}

func TestLoad_NullBundle(t *testing.T) {
	cfg, err := Load(writeConfig(t, "css:\n  bundles:\n    app:\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	files, ok := cfg.BundleFiles(domain.KindCSS, "app")
	if !ok || len(files) != 0 {
		t.Errorf("expected app to be defined and empty, got %v (ok=%v)", files, ok)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/assets.yml")

	if err == nil {
		t.Fatal("expected error loading non-existent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "css: [unclosed"},
		{"bundles not a mapping", "css:\n  bundles:\n    - a\n"},
		{"duplicate bundle", "js:\n  bundles:\n    app: [a]\n    app: [b]\n"},
		{"files not a list", "js:\n  bundles:\n    app: {a: b}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestSave_And_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "assets.yml")

	cfg := DefaultConfig()
	cfg.CSS.Bundles.Set("zeta", []string{"z"})
	cfg.CSS.Bundles.Set("alpha", []string{"a", "b"})
	cfg.AssetHosts["production"] = "http://cdn.example.com"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if strings.Join(loaded.BundleNames(domain.KindCSS), ",") != "zeta,alpha" {
		t.Errorf("expected order to survive a round trip, got %v", loaded.BundleNames(domain.KindCSS))
	}
	if loaded.AssetHost("production") != "http://cdn.example.com" {
		t.Errorf("unexpected host %q", loaded.AssetHost("production"))
	}
}

func TestBundlesContaining(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	got := cfg.BundlesContaining(domain.KindCSS, "reset")
	if strings.Join(got, ",") != "application,admin" {
		t.Errorf("expected both css bundles, got %v", got)
	}

	if got := cfg.BundlesContaining(domain.KindJS, "reset"); len(got) != 0 {
		t.Errorf("expected no js bundles, got %v", got)
	}
}
