package domain

import (
	"path/filepath"
	"strings"
)

const minMarker = ".min"

// DeriveMinPath returns the path a minified copy of original is written to.
// "public/stylesheets/app.css" -> "public/stylesheets/app.min.css".
// Paths that are already minified, or that do not end in the kind's
// extension, are returned unchanged.
func DeriveMinPath(original string, kind Kind) string {
	ext := "." + kind.Ext()
	if !strings.HasSuffix(original, ext) {
		return original
	}
	if IsMinified(original, kind) {
		return original
	}
	return strings.TrimSuffix(original, ext) + minMarker + ext
}

// IsMinified reports whether the file name carries a ".min" marker
// right before the kind's extension
func IsMinified(path string, kind Kind) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, "."+kind.Ext())
	if stem == base || stem == "" {
		return false
	}
	return strings.HasSuffix(stem, minMarker) && stem != minMarker
}

// Layout describes where a web application keeps its assets
type Layout struct {
	RootPath   string
	PublicPath string
	ConfigPath string
}

// NewLayout creates the conventional layout rooted at root
func NewLayout(root string) Layout {
	return Layout{
		RootPath:   root,
		PublicPath: filepath.Join(root, "public"),
		ConfigPath: filepath.Join(root, "config", "assets.yml"),
	}
}

// KindDir returns public/stylesheets or public/javascripts
func (l Layout) KindDir(kind Kind) string {
	return filepath.Join(l.PublicPath, kind.BaseDir())
}

// SourcePath maps a logical file name from the config to a concrete source path
func (l Layout) SourcePath(kind Kind, name string) string {
	return filepath.Join(l.KindDir(kind), name+"."+kind.Ext())
}

// BundleDir returns the directory bundles of the given kind are written to
func (l Layout) BundleDir(kind Kind) string {
	return filepath.Join(l.KindDir(kind), "bundles")
}

// BundlePath returns the output path of a named bundle
func (l Layout) BundlePath(kind Kind, bundle string) string {
	return DeriveMinPath(filepath.Join(l.BundleDir(kind), bundle+"."+kind.Ext()), kind)
}

// LocalePath returns the output path of the i18n script for a locale
func (l Layout) LocalePath(locale string) string {
	return DeriveMinPath(filepath.Join(l.KindDir(KindJS), "locales", locale, "i18n.js"), KindJS)
}
