package services

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/ports"
)

var (
	// url( [ws] 'target' | "target" | target [ws] )
	cssURLRe  = regexp.MustCompile(`(?i)url\((\s*)(?:'([^']*)'|"([^"]*)"|([^'"()\s]*))(\s*)\)`)
	schemeRe  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)
	numericRe = regexp.MustCompile(`^[0-9]+$`)
)

// URLRewriter rewrites url() references inside stylesheets
type URLRewriter struct {
	fs         ports.FileSystem
	publicPath string // Root for references starting with "/"
}

// NewURLRewriter creates a rewriter resolving root-relative references against publicPath
func NewURLRewriter(fs ports.FileSystem, publicPath string) *URLRewriter {
	return &URLRewriter{
		fs:         fs,
		publicPath: publicPath,
	}
}

// AddAssetMtimes appends the modification time (epoch seconds) of every
// relative url() target as a query parameter. Relative targets are resolved
// against baseDir. Targets that cannot be found are left untouched and
// returned as skipped references.
func (r *URLRewriter) AddAssetMtimes(css string, baseDir string) (string, []domain.MissingAssetReference) {
	var skipped []domain.MissingAssetReference

	out := replaceCSSURLs(css, func(target string) (string, bool) {
		path, query, fragment := splitURL(target)
		if path == "" {
			return "", false
		}

		fsPath := r.resolve(path, baseDir)
		modTime, err := r.fs.ModTime(fsPath)
		if err != nil {
			skipped = append(skipped, domain.MissingAssetReference{
				URL:  target,
				Path: fsPath,
				Err:  err,
			})
			return "", false
		}

		params := []string{}
		if query != "" {
			for _, p := range strings.Split(query, "&") {
				// Drop stamps left by a previous run
				if p == "" || numericRe.MatchString(p) {
					continue
				}
				params = append(params, p)
			}
		}
		params = append(params, strconv.FormatInt(modTime.Unix(), 10))

		return path + "?" + strings.Join(params, "&") + fragment, true
	})

	return out, skipped
}

// AddAssetHosts prefixes every relative url() target with host.
// A blank host leaves the stylesheet unchanged.
func (r *URLRewriter) AddAssetHosts(css string, host string) string {
	return AddAssetHosts(css, host)
}

// AddAssetHosts prefixes every relative url() target with host
func AddAssetHosts(css string, host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return css
	}

	return replaceCSSURLs(css, func(target string) (string, bool) {
		return host + "/" + strings.TrimLeft(target, "/"), true
	})
}

func (r *URLRewriter) resolve(path string, baseDir string) string {
	if strings.HasPrefix(path, "/") {
		return filepath.Join(r.publicPath, filepath.FromSlash(path))
	}
	return filepath.Join(baseDir, filepath.FromSlash(path))
}

// replaceCSSURLs calls f for every relative url() target and splices the
// replacement back in, keeping the original quotes and whitespace. Tokens
// for which f returns false are copied through unchanged.
func replaceCSSURLs(css string, f func(target string) (string, bool)) string {
	return cssURLRe.ReplaceAllStringFunc(css, func(match string) string {
		m := cssURLRe.FindStringSubmatch(match)
		leading, trailing := m[1], m[5]

		var quote, target string
		switch {
		case strings.HasPrefix(match[4+len(leading):], "'"):
			quote, target = "'", m[2]
		case strings.HasPrefix(match[4+len(leading):], `"`):
			quote, target = `"`, m[3]
		default:
			target = m[4]
		}

		if !isRelativeURL(target) {
			return match
		}

		repl, ok := f(target)
		if !ok || repl == target {
			return match
		}

		return match[:4] + leading + quote + repl + quote + trailing + ")"
	})
}

// isRelativeURL reports whether u points at a file served next to the stylesheet
func isRelativeURL(u string) bool {
	switch {
	case u == "":
		return false
	case strings.HasPrefix(u, "//"):
		return false
	case strings.HasPrefix(u, "#"):
		return false
	case schemeRe.MatchString(u):
		return false
	}
	return true
}

// splitURL splits "path?query#fragment" into its parts. The fragment keeps its "#".
func splitURL(u string) (path, query, fragment string) {
	if i := strings.Index(u, "#"); i >= 0 {
		u, fragment = u[:i], u[i:]
	}
	if i := strings.Index(u, "?"); i >= 0 {
		u, query = u[:i], u[i+1:]
	}
	return u, query, fragment
}
