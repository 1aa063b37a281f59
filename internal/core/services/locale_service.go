package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/ports"
)

// DefaultLocaleHost is the application host used when none is given
const DefaultLocaleHost = "http://localhost:3000"

// LocaleService generates minified i18n scripts from pages rendered by the application
type LocaleService struct {
	fetcher  ports.PageFetcher
	fs       ports.FileSystem
	minifier ports.Minifier
	layout   domain.Layout
	locales  []string
}

// NewLocaleService creates a new locale service for the given locales
func NewLocaleService(fetcher ports.PageFetcher, fs ports.FileSystem, minifier ports.Minifier, layout domain.Layout, locales []string) *LocaleService {
	return &LocaleService{
		fetcher:  fetcher,
		fs:       fs,
		minifier: minifier,
		layout:   layout,
		locales:  locales,
	}
}

// LocaleResult is the outcome of generating one locale
type LocaleResult struct {
	Locale     string
	URL        string
	OutputPath string
	Err        error
}

// LocaleAllResponse represents the response from generating every locale
type LocaleAllResponse struct {
	Host      string
	Total     int
	Succeeded int
	Failed    int
	Results   []LocaleResult
}

// Locales returns the configured locales
func (s *LocaleService) Locales() []string {
	return s.locales
}

// GenerateFor fetches /javascripts/i18n.<locale>.js from host, minifies it
// and writes public/javascripts/locales/<locale>/i18n.min.js
func (s *LocaleService) GenerateFor(ctx context.Context, host string, locale string) (*LocaleResult, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" || strings.TrimSpace(locale) == "" {
		return nil, domain.NewConfigurationError("generate-for", "usage: locales generate-for <host> <locale>")
	}

	result := &LocaleResult{
		Locale:     locale,
		URL:        fmt.Sprintf("%s/javascripts/i18n.%s.js", host, locale),
		OutputPath: s.layout.LocalePath(locale),
	}

	body, err := s.fetcher.Fetch(ctx, result.URL)
	if err != nil {
		result.Err = fmt.Errorf("failed to fetch %s: %w", result.URL, err)
		return result, result.Err
	}

	output, err := s.minifier.Minify(domain.KindJS, body)
	if err != nil {
		result.Err = fmt.Errorf("failed to minify %s: %w", result.URL, err)
		return result, result.Err
	}

	if err := s.fs.WriteFile(result.OutputPath, output); err != nil {
		result.Err = fmt.Errorf("could not write file %s: %w", result.OutputPath, err)
		return result, result.Err
	}

	return result, nil
}

// GenerateAll runs GenerateFor for every configured locale. Failures are
// collected per locale and never abort the batch.
func (s *LocaleService) GenerateAll(ctx context.Context, host string) *LocaleAllResponse {
	if strings.TrimSpace(host) == "" {
		host = DefaultLocaleHost
	}

	response := &LocaleAllResponse{
		Host:    host,
		Total:   len(s.locales),
		Results: make([]LocaleResult, 0, len(s.locales)),
	}

	for _, locale := range s.locales {
		var result LocaleResult
		if err := ctx.Err(); err != nil {
			result = LocaleResult{Locale: locale, Err: err}
		} else {
			res, err := s.GenerateFor(ctx, host, locale)
			if res != nil {
				result = *res
			} else {
				result = LocaleResult{Locale: locale, Err: err}
			}
		}

		if result.Err != nil {
			response.Failed++
		} else {
			response.Succeeded++
		}
		response.Results = append(response.Results, result)
	}

	return response
}
