package domain

import (
	"fmt"
	"strings"
)

// Kind identifies the type of asset a bundle is made of
type Kind string

const (
	KindCSS Kind = "css"
	KindJS  Kind = "js"
)

// Kinds lists every supported kind in the order "minify everything" runs them
var Kinds = []Kind{KindCSS, KindJS}

// ParseKind converts a user supplied string ("css", "JS", ...) into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCSS:
		return KindCSS, nil
	case KindJS:
		return KindJS, nil
	}
	return "", fmt.Errorf("unknown asset kind %q (expected css or js)", s)
}

// Ext returns the file extension without the leading dot
func (k Kind) Ext() string {
	return string(k)
}

// BaseDir returns the directory under public/ holding sources of this kind
func (k Kind) BaseDir() string {
	switch k {
	case KindCSS:
		return "stylesheets"
	case KindJS:
		return "javascripts"
	}
	return ""
}

// Label is the human readable name used in summaries
func (k Kind) Label() string {
	return strings.ToUpper(string(k))
}
