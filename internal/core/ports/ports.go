package ports

import (
	"context"
	"time"

	"github.com/kamal-hamza/assethat/internal/core/domain"
)

// FileSystem defines the port for reading and writing asset files
type FileSystem interface {
	// ReadFile returns the full contents of a file
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path, creating parent directories as needed
	WriteFile(path string, data []byte) error

	// ModTime returns the last modification time of a file
	ModTime(path string) (time.Time, error)
}

// Minifier defines the port for the external minification capability
type Minifier interface {
	// Minify returns the minified form of the given source text
	Minify(kind domain.Kind, src []byte) ([]byte, error)
}

// BundleSource defines the port for reading bundle definitions
type BundleSource interface {
	// BundleNames returns all bundle names of a kind in definition order
	BundleNames(kind domain.Kind) []string

	// BundleFiles returns the logical file names of a bundle.
	// The second value is false when the bundle is not defined.
	BundleFiles(kind domain.Kind, name string) ([]string, bool)
}

// PageFetcher defines the port for fetching rendered pages of the web application
type PageFetcher interface {
	// Fetch returns the body of the page at url
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Compressor defines the port for writing precompressed copies of outputs
type Compressor interface {
	// Compress writes a compressed sibling of path and returns its location
	Compress(path string, data []byte) (string, error)
}
