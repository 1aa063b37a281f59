package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/internal/adapters/fetcher"
	"github.com/kamal-hamza/assethat/internal/core/ports"
	"github.com/kamal-hamza/assethat/internal/core/services"
	"github.com/kamal-hamza/assethat/pkg/ui"
)

var (
	localesBrowser bool
)

// localesCmd groups the locale script tasks
var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "Generate minified i18n scripts from the running application",
	Long: `Fetch /javascripts/i18n.<locale>.js from a running application, minify it
and write it to public/javascripts/locales/<locale>/i18n.min.js.

Use --browser to render pages in a headless Chrome instead of a plain
HTTP request.`,
}

var localesGenerateCmd = &cobra.Command{
	Use:   "generate [host]",
	Short: "Generate scripts for every configured locale",
	Long: `Generate the i18n script of every locale listed under "locales:" in
config/assets.yml. The host defaults to locale_host from the config, or
http://localhost:3000.

A failing locale is reported and the others are still generated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLocalesGenerate,
}

var localesGenerateForCmd = &cobra.Command{
	Use:   "generate-for <host> <locale>",
	Short: "Generate the script for one locale",
	Args:  cobra.ExactArgs(2),
	RunE:  runLocalesGenerateFor,
}

func init() {
	localesCmd.PersistentFlags().BoolVar(&localesBrowser, "browser", false, "Fetch pages with a headless browser")

	localesCmd.AddCommand(localesGenerateCmd)
	localesCmd.AddCommand(localesGenerateForCmd)
}

// newLocaleService picks a page fetcher and returns a cleanup func
func newLocaleService() (*services.LocaleService, func()) {
	var (
		pageFetcher ports.PageFetcher
		cleanup     = func() {}
	)

	if localesBrowser {
		browser := fetcher.NewBrowserFetcher()
		pageFetcher = browser
		cleanup = func() {
			if err := browser.Close(); err != nil {
				fmt.Fprintln(os.Stderr, ui.FormatWarning("Could not close browser: "+err.Error()))
			}
		}
	} else {
		timeout := time.Duration(appConfig.LocaleTimeoutSeconds) * time.Second
		pageFetcher = fetcher.NewHTTPFetcher(timeout)
	}

	svc := services.NewLocaleService(pageFetcher, fileSystem, assetMinifier, layout, appConfig.Locales)
	return svc, cleanup
}

func runLocalesGenerate(cmd *cobra.Command, args []string) error {
	host := appConfig.LocaleHost
	if len(args) > 0 {
		host = args[0]
	}

	svc, cleanup := newLocaleService()
	defer cleanup()

	if len(svc.Locales()) == 0 {
		fmt.Println(ui.FormatWarning("No locales configured in " + layout.ConfigPath))
		return nil
	}

	resp := svc.GenerateAll(getContext(), host)
	fmt.Println(ui.FormatRocket("Generating locales from " + resp.Host))

	for _, r := range resp.Results {
		if r.Err != nil {
			fmt.Fprintln(os.Stderr, ui.FormatError(fmt.Sprintf("%s: %v", r.Locale, r.Err)))
			continue
		}
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s: %s", r.Locale, r.OutputPath)))
	}

	return batchError(resp.Failed, resp.Total, "locale")
}

func runLocalesGenerateFor(cmd *cobra.Command, args []string) error {
	svc, cleanup := newLocaleService()
	defer cleanup()

	result, err := svc.GenerateFor(getContext(), args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s: %s", result.Locale, result.OutputPath)))
	if verbose {
		fmt.Println(ui.FormatMuted("  from " + result.URL))
	}
	return nil
}
