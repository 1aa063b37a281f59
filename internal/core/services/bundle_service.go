package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/ports"
)

// BundleService concatenates and minifies the bundles defined in the config
type BundleService struct {
	source     ports.BundleSource
	fs         ports.FileSystem
	minifier   ports.Minifier
	rewriter   *URLRewriter
	compressor ports.Compressor // Optional, nil disables precompression
	layout     domain.Layout
}

// NewBundleService creates a new bundle service
func NewBundleService(source ports.BundleSource, fs ports.FileSystem, minifier ports.Minifier, layout domain.Layout) *BundleService {
	return &BundleService{
		source:   source,
		fs:       fs,
		minifier: minifier,
		rewriter: NewURLRewriter(fs, layout.PublicPath),
		layout:   layout,
	}
}

// WithCompressor enables writing a precompressed copy of every bundle
func (s *BundleService) WithCompressor(c ports.Compressor) *BundleService {
	s.compressor = c
	return s
}

// BundleOptions carries settings that depend on the current environment
type BundleOptions struct {
	AssetHost string // Prefixed onto CSS asset URLs when non-blank
	DryRun    bool   // Assemble without writing anything
}

// BundleRequest represents a request to build one bundle
type BundleRequest struct {
	Kind    domain.Kind
	Name    string
	Options BundleOptions
}

// BundleResponse represents the response from building one bundle
type BundleResponse struct {
	Bundle         *domain.Bundle
	CompressedPath string
}

// BundleAllRequest represents a request to build every bundle of a kind
type BundleAllRequest struct {
	Kind    domain.Kind
	Options BundleOptions
}

// BundleResult is the outcome of one bundle inside a batch
type BundleResult struct {
	Name           string
	Bundle         *domain.Bundle
	CompressedPath string
	Err            error
}

// BundleAllResponse represents the response from building all bundles of a kind
type BundleAllResponse struct {
	Kind      domain.Kind
	Total     int
	Succeeded int
	Failed    int
	Results   []BundleResult
}

// Names returns the bundle names defined for a kind, in config order
func (s *BundleService) Names(kind domain.Kind) []string {
	return s.source.BundleNames(kind)
}

// Assemble reads, minifies and concatenates the members of a bundle in memory.
// Nothing is written to disk.
func (s *BundleService) Assemble(ctx context.Context, kind domain.Kind, name string, opts BundleOptions) (*domain.Bundle, error) {
	files, ok := s.source.BundleFiles(kind, name)
	if !ok {
		return nil, domain.NewConfigurationError(name, "no %s bundle named %q is defined in %s", kind.Label(), name, s.layout.ConfigPath)
	}
	if len(files) == 0 {
		return nil, domain.NewConfigurationError(name, "no %s files are specified for the %s bundle in %s", kind.Label(), name, s.layout.ConfigPath)
	}

	bundle := &domain.Bundle{
		Kind:       kind,
		Name:       name,
		OutputPath: s.layout.BundlePath(kind, name),
	}

	baseDir := s.layout.KindDir(kind)
	var output bytes.Buffer

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := s.layout.SourcePath(kind, file)
		raw, err := s.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		bundle.Members = append(bundle.Members, path)
		bundle.OldSize += len(raw)

		content, skipped, err := s.process(domain.AssetFile{Kind: kind, Path: path, Raw: raw}, baseDir, opts)
		if err != nil {
			return nil, err
		}
		bundle.Skipped = append(bundle.Skipped, skipped...)
		bundle.NewSize += len(content)

		output.Write(content)
		output.WriteByte('\n')
	}

	bundle.Output = output.Bytes()
	return bundle, nil
}

// process minifies one member and, for stylesheets, rewrites its asset URLs
func (s *BundleService) process(file domain.AssetFile, baseDir string, opts BundleOptions) ([]byte, []domain.MissingAssetReference, error) {
	// Already minified scripts are copied through as-is
	if file.Kind == domain.KindJS && domain.IsMinified(file.Path, file.Kind) {
		return file.Raw, nil, nil
	}

	minified, err := s.minifier.Minify(file.Kind, file.Raw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to minify %s: %w", file.Path, err)
	}

	if file.Kind != domain.KindCSS {
		return minified, nil, nil
	}

	css, skipped := s.rewriter.AddAssetMtimes(string(minified), baseDir)
	if opts.AssetHost != "" {
		css = s.rewriter.AddAssetHosts(css, opts.AssetHost)
	}
	return []byte(css), skipped, nil
}

// Execute assembles one bundle and writes it to its output path
func (s *BundleService) Execute(ctx context.Context, req BundleRequest) (*BundleResponse, error) {
	bundle, err := s.Assemble(ctx, req.Kind, req.Name, req.Options)
	if err != nil {
		return nil, err
	}

	resp := &BundleResponse{Bundle: bundle}
	if req.Options.DryRun {
		return resp, nil
	}

	if err := s.fs.WriteFile(bundle.OutputPath, bundle.Output); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", bundle.OutputPath, err)
	}

	if s.compressor != nil {
		compressed, err := s.compressor.Compress(bundle.OutputPath, bundle.Output)
		if err != nil {
			return resp, fmt.Errorf("failed to precompress %s: %w", bundle.OutputPath, err)
		}
		resp.CompressedPath = compressed
	}

	return resp, nil
}

// ExecuteAll builds every bundle of a kind one after another. A failing
// bundle is recorded in the results and does not stop the others.
func (s *BundleService) ExecuteAll(ctx context.Context, req BundleAllRequest) (*BundleAllResponse, error) {
	names := s.source.BundleNames(req.Kind)

	response := &BundleAllResponse{
		Kind:    req.Kind,
		Total:   len(names),
		Results: make([]BundleResult, 0, len(names)),
	}

	for _, name := range names {
		result := BundleResult{Name: name}

		if err := ctx.Err(); err != nil {
			result.Err = err
		} else {
			resp, err := s.Execute(ctx, BundleRequest{Kind: req.Kind, Name: name, Options: req.Options})
			if resp != nil {
				result.Bundle = resp.Bundle
				result.CompressedPath = resp.CompressedPath
			}
			result.Err = err
		}

		if result.Err != nil {
			response.Failed++
		} else {
			response.Succeeded++
		}
		response.Results = append(response.Results, result)
	}

	return response, nil
}

// ExecuteEverything builds all CSS bundles, then all JS bundles
func (s *BundleService) ExecuteEverything(ctx context.Context, opts BundleOptions) ([]*BundleAllResponse, error) {
	var responses []*BundleAllResponse
	for _, kind := range domain.Kinds {
		resp, err := s.ExecuteAll(ctx, BundleAllRequest{Kind: kind, Options: opts})
		if err != nil {
			return responses, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
