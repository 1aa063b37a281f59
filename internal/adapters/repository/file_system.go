package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamal-hamza/assethat/internal/core/ports"
)

// FileSystem reads and writes assets on the local disk
type FileSystem struct{}

// NewFileSystem creates a new disk-backed file system
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// Ensure it implements the interface
var _ ports.FileSystem = (*FileSystem)(nil)

// ReadFile returns the contents of path
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ModTime returns the modification time of path
func (f *FileSystem) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	if info.IsDir() {
		return time.Time{}, fmt.Errorf("%s is a directory", path)
	}
	return info.ModTime(), nil
}

// WriteFile writes data to a temporary file next to path and renames it
// into place, so readers never observe a truncated file
func (f *FileSystem) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Remove the temp file on every failure path
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	committed = true
	return nil
}
