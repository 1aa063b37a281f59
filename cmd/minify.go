package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/pkg/ui"
)

// minifyCmd builds every bundle of every kind
var minifyCmd = &cobra.Command{
	Use:   "minify",
	Short: "Concatenate and minify all CSS and JS bundles",
	Long: `Build every CSS bundle, then every JS bundle, defined in config/assets.yml.

Each bundle is built independently. Failures are reported at the end and
make the command exit non-zero.`,
	Args: cobra.NoArgs,
	RunE: runMinify,
}

func runMinify(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.FormatRocket("Minifying all bundles..."))

	responses, err := bundleService.ExecuteEverything(getContext(), bundleOptions())
	total, failed := 0, 0
	for _, resp := range responses {
		printBundleAll(resp)
		total += resp.Total
		failed += resp.Failed
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Built %d of %d bundles", total-failed, total)))
	return batchError(failed, total, "bundle")
}
