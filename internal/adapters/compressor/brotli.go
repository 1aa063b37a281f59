package compressor

import (
	"bytes"
	"fmt"
	"os"

	"github.com/andybalholm/brotli"

	"github.com/kamal-hamza/assethat/internal/core/ports"
)

// Brotli writes a .br sibling for every output it is given
type Brotli struct {
	level int
}

// Ensure it implements the interface
var _ ports.Compressor = (*Brotli)(nil)

// NewBrotli creates a compressor using the best compression level
func NewBrotli() *Brotli {
	return &Brotli{level: brotli.BestCompression}
}

// Compress writes path + ".br" containing the brotli-compressed data
func (b *Brotli) Compress(path string, data []byte) (string, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, b.level)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("brotli: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("brotli: %w", err)
	}

	target := path + ".br"
	if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return target, nil
}
