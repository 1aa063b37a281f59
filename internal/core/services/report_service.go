package services

import (
	"context"

	"github.com/kamal-hamza/assethat/internal/core/domain"
)

// ReportService measures what every bundle would save without writing it
type ReportService struct {
	bundles *BundleService
}

// NewReportService creates a new report service
func NewReportService(bundles *BundleService) *ReportService {
	return &ReportService{bundles: bundles}
}

// ReportRow describes one bundle in a report
type ReportRow struct {
	Kind    domain.Kind
	Name    string
	Members int
	OldSize int
	NewSize int
	Skipped int
	Err     error
}

// PercentSaved returns the fraction of bytes removed for this bundle
func (r ReportRow) PercentSaved() (float64, bool) {
	return domain.SizeSavings(r.OldSize, r.NewSize)
}

// ReportResponse represents a size report of all bundles
type ReportResponse struct {
	Rows         []ReportRow
	TotalOldSize int
	TotalNewSize int
}

// PercentSaved returns the fraction of bytes removed across all bundles
func (r *ReportResponse) PercentSaved() (float64, bool) {
	return domain.SizeSavings(r.TotalOldSize, r.TotalNewSize)
}

// Execute assembles every bundle in memory and collects its sizes
func (s *ReportService) Execute(ctx context.Context, opts BundleOptions) (*ReportResponse, error) {
	response := &ReportResponse{}

	for _, kind := range domain.Kinds {
		for _, name := range s.bundles.Names(kind) {
			if err := ctx.Err(); err != nil {
				return response, err
			}

			row := ReportRow{Kind: kind, Name: name}
			bundle, err := s.bundles.Assemble(ctx, kind, name, opts)
			if err != nil {
				row.Err = err
			} else {
				row.Members = len(bundle.Members)
				row.OldSize = bundle.OldSize
				row.NewSize = bundle.NewSize
				row.Skipped = len(bundle.Skipped)
				response.TotalOldSize += bundle.OldSize
				response.TotalNewSize += bundle.NewSize
			}
			response.Rows = append(response.Rows, row)
		}
	}

	return response, nil
}
