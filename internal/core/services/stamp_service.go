package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/ports"
)

// StampService rewrites asset URLs of a stylesheet in place
type StampService struct {
	fs       ports.FileSystem
	rewriter *URLRewriter
}

// NewStampService creates a new stamp service
func NewStampService(fs ports.FileSystem, layout domain.Layout) *StampService {
	return &StampService{
		fs:       fs,
		rewriter: NewURLRewriter(fs, layout.PublicPath),
	}
}

// StampResponse represents the result of rewriting one stylesheet
type StampResponse struct {
	Path    string
	Skipped []domain.MissingAssetReference
}

// AddAssetMtimes stamps every local url() reference in the file with its mtime.
// References are resolved relative to the stylesheet's own directory.
func (s *StampService) AddAssetMtimes(ctx context.Context, path string) (*StampResponse, error) {
	if path == "" {
		return nil, domain.NewConfigurationError("add-asset-mtimes", "a stylesheet path is required")
	}

	css, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, skipped := s.rewriter.AddAssetMtimes(string(css), filepath.Dir(path))

	if err := s.fs.WriteFile(path, []byte(out)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return &StampResponse{Path: path, Skipped: skipped}, nil
}

// AddAssetHosts prefixes every relative url() reference in the file with host.
// env names the environment the host was looked up for, for error messages.
func (s *StampService) AddAssetHosts(ctx context.Context, path string, host string, env string) (*StampResponse, error) {
	if path == "" {
		return nil, domain.NewConfigurationError("add-asset-hosts", "a stylesheet path is required")
	}
	if strings.TrimSpace(host) == "" {
		return nil, domain.NewConfigurationError(env, "this environment doesn't have an asset_host configured")
	}

	css, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out := s.rewriter.AddAssetHosts(string(css), host)

	if err := s.fs.WriteFile(path, []byte(out)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return &StampResponse{Path: path}, nil
}
