package fetcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/kamal-hamza/assethat/internal/core/ports"
)

// BrowserFetcher renders pages in a headless Chrome before reading them.
// Use it when the application builds locale scripts client-side.
type BrowserFetcher struct {
	mu      sync.Mutex
	browser *rod.Browser
}

// Ensure it implements the interface
var _ ports.PageFetcher = (*BrowserFetcher)(nil)

// NewBrowserFetcher creates a fetcher. The browser is launched on first use.
func NewBrowserFetcher() *BrowserFetcher {
	return &BrowserFetcher{}
}

func (f *BrowserFetcher) get() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	u, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	f.browser = b
	return b, nil
}

// Fetch opens url in a new tab and returns the rendered text of the page
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	b, err := f.get()
	if err != nil {
		return nil, err
	}

	page, err := b.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	// Plain-text responses are shown inside a <pre> by the browser
	el, err := page.Element("body")
	if err != nil {
		return nil, err
	}
	text, err := el.Text()
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// Close shuts down the browser if it was started
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser == nil {
		return nil
	}
	err := f.browser.Close()
	f.browser = nil
	return err
}
