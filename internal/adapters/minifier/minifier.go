package minifier

import (
	"fmt"

	"github.com/dchest/cssmin"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/ports"
)

// Engine names accepted in the minifier section of assets.yml
const (
	EngineMinify = "minify"
	EngineCSSMin = "cssmin"
)

const (
	mediaTypeCSS = "text/css"
	mediaTypeJS  = "application/javascript"
)

// Minifier dispatches to the configured engine for each asset kind
type Minifier struct {
	m         *minify.M
	cssEngine string
	jsEngine  string
}

// Ensure it implements the interface
var _ ports.Minifier = (*Minifier)(nil)

// New creates a minifier using the given CSS and JS engines.
// Empty engine names fall back to EngineMinify.
func New(cssEngine, jsEngine string) (*Minifier, error) {
	if cssEngine == "" {
		cssEngine = EngineMinify
	}
	if jsEngine == "" {
		jsEngine = EngineMinify
	}

	switch cssEngine {
	case EngineMinify, EngineCSSMin:
	default:
		return nil, fmt.Errorf("unknown CSS minifier %q (expected %s or %s)", cssEngine, EngineMinify, EngineCSSMin)
	}
	if jsEngine != EngineMinify {
		return nil, fmt.Errorf("unknown JS minifier %q (expected %s)", jsEngine, EngineMinify)
	}

	m := minify.New()
	m.AddFunc(mediaTypeCSS, css.Minify)
	m.AddFunc(mediaTypeJS, js.Minify)

	return &Minifier{
		m:         m,
		cssEngine: cssEngine,
		jsEngine:  jsEngine,
	}, nil
}

// Minify returns the minified form of src
func (mf *Minifier) Minify(kind domain.Kind, src []byte) ([]byte, error) {
	switch kind {
	case domain.KindCSS:
		if mf.cssEngine == EngineCSSMin {
			return cssmin.Minify(src), nil
		}
		return mf.m.Bytes(mediaTypeCSS, src)
	case domain.KindJS:
		return mf.m.Bytes(mediaTypeJS, src)
	}
	return nil, fmt.Errorf("no minifier for %q", kind)
}
