package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/services"
	"github.com/kamal-hamza/assethat/pkg/ui"
)

// cssCmd groups the stylesheet tasks
var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Minify and stamp CSS bundles",
	Long: `Tasks for stylesheets under public/stylesheets.

Bundles are read from the css.bundles section of config/assets.yml.`,
}

var cssAddAssetMtimesCmd = &cobra.Command{
	Use:   "add-asset-mtimes <path>",
	Short: "Add modification times to url() references in a CSS file",
	Long: `Rewrite a CSS file in place so every relative url() reference carries the
referenced file's modification time as a cache-busting query string.

References to files that don't exist are left unchanged and listed.`,
	Args: cobra.ExactArgs(1),
	Annotations: map[string]string{
		annotationConfigOptional: "true",
	},
	RunE: runCSSAddAssetMtimes,
}

var cssAddAssetHostsCmd = &cobra.Command{
	Use:   "add-asset-hosts <path>",
	Short: "Prefix url() references in a CSS file with the asset host",
	Long: `Rewrite a CSS file in place so every relative url() reference is served
from the asset host configured for the current environment (--env), or
from --asset-host when given.`,
	Args: cobra.ExactArgs(1),
	RunE: runCSSAddAssetHosts,
}

func init() {
	cssCmd.AddCommand(newMinifyAllCmd(domain.KindCSS))
	cssCmd.AddCommand(newMinifyBundleCmd(domain.KindCSS))
	cssCmd.AddCommand(newMinifyFileCmd(domain.KindCSS))
	cssCmd.AddCommand(cssAddAssetMtimesCmd)
	cssCmd.AddCommand(cssAddAssetHostsCmd)
}

func runCSSAddAssetMtimes(cmd *cobra.Command, args []string) error {
	resp, err := stampService.AddAssetMtimes(getContext(), args[0])
	if err != nil {
		return err
	}
	printStamp(cmd.OutOrStdout(), resp, "Added asset mtimes to "+resp.Path)
	return nil
}

func runCSSAddAssetHosts(cmd *cobra.Command, args []string) error {
	resp, err := stampService.AddAssetHosts(getContext(), args[0], currentAssetHost(), envName)
	if err != nil {
		return err
	}
	printStamp(cmd.OutOrStdout(), resp, "Added asset hosts to "+resp.Path)
	return nil
}

func printStamp(w io.Writer, resp *services.StampResponse, msg string) {
	fmt.Fprintln(w, ui.FormatSuccess(msg))
	for _, ref := range resp.Skipped {
		fmt.Fprintln(w, ui.FormatWarning(fmt.Sprintf("Asset not found, URL left as-is: %s (%s)", ref.URL, ref.Path)))
	}
}
