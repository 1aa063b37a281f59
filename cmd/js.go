package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/internal/core/domain"
)

// jsCmd groups the javascript tasks
var jsCmd = &cobra.Command{
	Use:   "js",
	Short: "Minify JavaScript bundles",
	Long: `Tasks for scripts under public/javascripts.

Bundles are read from the js.bundles section of config/assets.yml.
Members already named *.min.js are copied into the bundle as they are.`,
}

func init() {
	jsCmd.AddCommand(newMinifyAllCmd(domain.KindJS))
	jsCmd.AddCommand(newMinifyBundleCmd(domain.KindJS))
	jsCmd.AddCommand(newMinifyFileCmd(domain.KindJS))
}
