package mocks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kamal-hamza/assethat/internal/core/domain"
)

// MockFileSystem is an in-memory implementation of the FileSystem port
type MockFileSystem struct {
	mu       sync.RWMutex
	files    map[string][]byte
	modTimes map[string]time.Time
	writes   []string
	failRead map[string]error
}

// NewMockFileSystem creates an empty in-memory file system
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:    make(map[string][]byte),
		modTimes: make(map[string]time.Time),
		failRead: make(map[string]error),
	}
}

// AddFile stores a file with the given modification time
func (m *MockFileSystem) AddFile(path string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = data
	m.modTimes[path] = modTime
}

// FailRead makes ReadFile return err for path
func (m *MockFileSystem) FailRead(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failRead[path] = err
}

// ReadFile returns the stored contents of path
func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.failRead[path]; ok {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return bytes.Clone(data), nil
}

// WriteFile stores data at path and records the write
func (m *MockFileSystem) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = bytes.Clone(data)
	m.modTimes[path] = time.Now()
	m.writes = append(m.writes, path)
	return nil
}

// ModTime returns the stored modification time of path
func (m *MockFileSystem) ModTime(path string) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.modTimes[path]
	if !ok {
		return time.Time{}, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return t, nil
}

// GetWrites returns every path written, in order
func (m *MockFileSystem) GetWrites() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.writes...)
}

// Content returns the stored contents of path, or nil
func (m *MockFileSystem) Content(path string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.files[path]
}

// MockMinifier is a mock Minifier. Unless a canned output is registered it
// strips all whitespace from its input.
type MockMinifier struct {
	mu         sync.Mutex
	outputs    map[string]string
	calls      []string
	shouldFail bool
	failErr    error
}

// NewMockMinifier creates a new mock minifier
func NewMockMinifier() *MockMinifier {
	return &MockMinifier{outputs: make(map[string]string)}
}

// SetOutput registers the minified form returned for an exact input
func (m *MockMinifier) SetOutput(input, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.outputs[input] = output
}

// Minify records the call and returns the canned or whitespace-stripped output
func (m *MockMinifier) Minify(kind domain.Kind, src []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, string(src))
	if m.shouldFail {
		return nil, m.failErr
	}
	if out, ok := m.outputs[string(src)]; ok {
		return []byte(out), nil
	}
	return []byte(strings.Join(strings.Fields(string(src)), "")), nil
}

// SetShouldFail configures the mock to return err from Minify
func (m *MockMinifier) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shouldFail = fail
	m.failErr = err
}

// GetCalls returns the inputs Minify was called with
func (m *MockMinifier) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.calls...)
}

// MockBundleSource is an ordered in-memory bundle definition
type MockBundleSource struct {
	names map[domain.Kind][]string
	files map[domain.Kind]map[string][]string
}

// NewMockBundleSource creates an empty bundle source
func NewMockBundleSource() *MockBundleSource {
	return &MockBundleSource{
		names: make(map[domain.Kind][]string),
		files: make(map[domain.Kind]map[string][]string),
	}
}

// Add defines a bundle. Bundles are listed in the order they are added.
func (m *MockBundleSource) Add(kind domain.Kind, name string, files ...string) {
	if m.files[kind] == nil {
		m.files[kind] = make(map[string][]string)
	}
	if _, exists := m.files[kind][name]; !exists {
		m.names[kind] = append(m.names[kind], name)
	}
	m.files[kind][name] = files
}

// BundleNames returns bundle names of a kind in insertion order
func (m *MockBundleSource) BundleNames(kind domain.Kind) []string {
	return append([]string(nil), m.names[kind]...)
}

// BundleFiles returns the files of a bundle
func (m *MockBundleSource) BundleFiles(kind domain.Kind, name string) ([]string, bool) {
	files, ok := m.files[kind][name]
	return files, ok
}

// MockPageFetcher serves canned page bodies keyed by URL
type MockPageFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

// NewMockPageFetcher creates a fetcher with no pages
func NewMockPageFetcher() *MockPageFetcher {
	return &MockPageFetcher{pages: make(map[string]string)}
}

// SetPage registers the body returned for url
func (m *MockPageFetcher) SetPage(url, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages[url] = body
}

// Fetch returns the registered body or a 404 style error
func (m *MockPageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, url)
	body, ok := m.pages[url]
	if !ok {
		return nil, fmt.Errorf("GET %s: 404 Not Found", url)
	}
	return []byte(body), nil
}

// GetCalls returns every URL fetched, in order
func (m *MockPageFetcher) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.calls...)
}

// MockCompressor records compression requests without writing anything
type MockCompressor struct {
	mu    sync.Mutex
	calls []string
}

// NewMockCompressor creates a new mock compressor
func NewMockCompressor() *MockCompressor {
	return &MockCompressor{}
}

// Compress records path and returns path + ".br"
func (m *MockCompressor) Compress(path string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, path)
	return path + ".br", nil
}

// GetCalls returns the paths compressed
func (m *MockCompressor) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.calls...)
}
