package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/ports"
)

// MinifyFileService minifies a single file next to its source
type MinifyFileService struct {
	fs       ports.FileSystem
	minifier ports.Minifier
}

// NewMinifyFileService creates a new minify-file service
func NewMinifyFileService(fs ports.FileSystem, minifier ports.Minifier) *MinifyFileService {
	return &MinifyFileService{
		fs:       fs,
		minifier: minifier,
	}
}

// MinifyFileRequest represents a request to minify one file
type MinifyFileRequest struct {
	Kind domain.Kind
	Path string
}

// MinifyFileResponse represents the response from minifying one file
type MinifyFileResponse struct {
	InputPath  string
	OutputPath string
	OldSize    int
	NewSize    int
}

// PercentSaved returns the fraction of bytes removed
func (r *MinifyFileResponse) PercentSaved() (float64, bool) {
	return domain.SizeSavings(r.OldSize, r.NewSize)
}

// Execute minifies req.Path and writes the result to its ".min" sibling
func (s *MinifyFileService) Execute(ctx context.Context, req MinifyFileRequest) (*MinifyFileResponse, error) {
	if req.Path == "" {
		return nil, domain.NewConfigurationError("minify-file", "a %s file path is required", req.Kind.Label())
	}
	if domain.IsMinified(req.Path, req.Kind) {
		return nil, fmt.Errorf("%s is already minified", req.Path)
	}

	target := domain.DeriveMinPath(req.Path, req.Kind)
	if target == req.Path {
		return nil, fmt.Errorf("%s is not a .%s file", req.Path, req.Kind.Ext())
	}

	input, err := s.fs.ReadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.Path, err)
	}

	output, err := s.minifier.Minify(req.Kind, input)
	if err != nil {
		return nil, fmt.Errorf("failed to minify %s: %w", req.Path, err)
	}

	if err := s.fs.WriteFile(target, output); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", target, err)
	}

	return &MinifyFileResponse{
		InputPath:  req.Path,
		OutputPath: target,
		OldSize:    len(input),
		NewSize:    len(output),
	}, nil
}
