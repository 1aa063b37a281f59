package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kamal-hamza/assethat/internal/core/services"
)

// RenderSavings writes an HTML bar chart comparing source and bundle sizes
func RenderSavings(w io.Writer, report *services.ReportResponse) error {
	var (
		labels   []string
		original []opts.BarData
		minified []opts.BarData
	)

	for _, row := range report.Rows {
		if row.Err != nil {
			continue
		}
		labels = append(labels, string(row.Kind)+"/"+row.Name)
		original = append(original, opts.BarData{Value: row.OldSize})
		minified = append(minified, opts.BarData{Value: row.NewSize})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Bundle sizes",
			Subtitle: "bytes before and after minification",
		}),
		charts.WithLegendOpts(opts.Legend{Right: "5%"}),
	)

	bar.SetXAxis(labels).
		AddSeries("Original", original).
		AddSeries("Minified", minified)

	return bar.Render(w)
}
