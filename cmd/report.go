package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/internal/adapters/chart"
	"github.com/kamal-hamza/assethat/internal/core/services"
	"github.com/kamal-hamza/assethat/pkg/ui"
)

var (
	reportChart string
)

// reportCmd shows what every bundle would save without writing anything
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the size savings of every bundle",
	Long: `Assemble every bundle in memory and print its source size, minified size
and savings. Nothing is written to public/.

Use --chart to also write an HTML bar chart of the sizes.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportChart, "chart", "", "Write an HTML chart of the sizes to this file")
}

func runReport(cmd *cobra.Command, args []string) error {
	report, err := reportService.Execute(getContext(), bundleOptions())
	if err != nil {
		return err
	}

	if len(report.Rows) == 0 {
		fmt.Println(ui.FormatWarning("No bundles defined in " + layout.ConfigPath))
		return nil
	}

	fmt.Println(ui.FormatTitle("Bundle Sizes"))
	fmt.Println(renderReportTable(report))

	failed := 0
	for _, row := range report.Rows {
		if row.Err != nil {
			failed++
			fmt.Fprintln(os.Stderr, ui.FormatError(fmt.Sprintf("%s bundle %s: %v", row.Kind.Label(), row.Name, row.Err)))
		}
	}

	if reportChart != "" {
		if err := writeChart(reportChart, report); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Chart written to " + reportChart))
	}

	return batchError(failed, len(report.Rows), "bundle")
}

func renderReportTable(report *services.ReportResponse) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Kind", Align: "left"},
		{Header: "Bundle", Align: "left"},
		{Header: "Files", Align: "right"},
		{Header: "Original", Align: "right"},
		{Header: "Minified", Align: "right"},
		{Header: "Saved", Align: "right"},
	})

	for _, row := range report.Rows {
		if row.Err != nil {
			table.AddRow([]string{row.Kind.Label(), row.Name, "-", "-", "-", "failed"})
			continue
		}
		table.AddRow([]string{
			row.Kind.Label(),
			row.Name,
			fmt.Sprintf("%d", row.Members),
			ui.FormatSize(row.OldSize),
			ui.FormatSize(row.NewSize),
			ui.FormatPercent(row.PercentSaved()),
		})
	}

	table.Footer = []string{
		"", "Total", "",
		ui.FormatSize(report.TotalOldSize),
		ui.FormatSize(report.TotalNewSize),
		ui.FormatPercent(report.PercentSaved()),
	}

	return table.Render()
}

func writeChart(path string, report *services.ReportResponse) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create chart file: %w", err)
	}
	defer f.Close()

	if err := chart.RenderSavings(f, report); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
