package cmd

import (
	"fmt"
	"os"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/services"
	"github.com/kamal-hamza/assethat/pkg/ui"
)

// newMinifyAllCmd builds "<kind> minify"
func newMinifyAllCmd(kind domain.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "minify",
		Short: fmt.Sprintf("Concatenate and minify all %s bundles", kind.Label()),
		Long: fmt.Sprintf(`Build every %s bundle defined in config/assets.yml, in file order.

A bundle that fails is reported and the remaining bundles are still built.
The command exits non-zero if any bundle failed.`, kind.Label()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bundleService.ExecuteAll(getContext(), services.BundleAllRequest{
				Kind:    kind,
				Options: bundleOptions(),
			})
			if err != nil {
				return err
			}
			printBundleAll(resp)
			return batchError(resp.Failed, resp.Total, "bundle")
		},
	}
}

// newMinifyBundleCmd builds "<kind> minify-bundle [name]"
func newMinifyBundleCmd(kind domain.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "minify-bundle [name]",
		Short: fmt.Sprintf("Concatenate and minify one %s bundle", kind.Label()),
		Long: fmt.Sprintf(`Build one %s bundle into public/%s/bundles.

If no name is given, pick one interactively.

Examples:
  assethat %s minify-bundle application`, kind.Label(), kind.BaseDir(), kind),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			} else {
				picked, err := pickBundle(kind)
				if err != nil {
					return err
				}
				if picked == "" {
					return nil
				}
				name = picked
			}

			resp, err := bundleService.Execute(getContext(), services.BundleRequest{
				Kind:    kind,
				Name:    name,
				Options: bundleOptions(),
			})
			if err != nil {
				return fmt.Errorf("bundle %s: %w", name, err)
			}
			printBundle(resp.Bundle, resp.CompressedPath)
			return nil
		},
	}
}

// newMinifyFileCmd builds "<kind> minify-file <path>"
func newMinifyFileCmd(kind domain.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "minify-file <path>",
		Short: fmt.Sprintf("Minify one %s file next to its source", kind.Label()),
		Long: fmt.Sprintf(`Minify a single %s file. The result is written next to the source
with a .min marker before the extension (app.%s -> app.min.%s).`, kind.Label(), kind.Ext(), kind.Ext()),
		Args: cobra.ExactArgs(1),
		Annotations: map[string]string{
			annotationConfigOptional: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := minifyFileService.Execute(getContext(), services.MinifyFileRequest{
				Kind: kind,
				Path: args[0],
			})
			if err != nil {
				return err
			}

			if verbose {
				pct, ok := resp.PercentSaved()
				fmt.Println(ui.FormatSuccess("Minified to " + resp.OutputPath))
				fmt.Println(ui.RenderKeyValue("        MINIFIED", ui.FormatPercent(pct, ok)))
			}
			return nil
		},
	}
}

// pickBundle opens a fuzzy finder over the bundle names of a kind
func pickBundle(kind domain.Kind) (string, error) {
	names := bundleService.Names(kind)
	if len(names) == 0 {
		return "", domain.NewConfigurationError(string(kind), "no %s bundles are defined in %s", kind.Label(), layout.ConfigPath)
	}

	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string { return names[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			files, _ := appConfig.BundleFiles(kind, names[i])
			var members []string
			for _, f := range files {
				members = append(members, layout.SourcePath(kind, f))
			}
			return fmt.Sprintf("Bundle: %s\nOutput: %s\n\n%s",
				names[i], layout.BundlePath(kind, names[i]), ui.RenderMembers(members))
		}),
	)
	if err != nil {
		fmt.Println(ui.FormatInfo("Selection cancelled."))
		return "", nil
	}
	return names[idx], nil
}

// printBundle prints the summary of one written bundle
func printBundle(b *domain.Bundle, compressedPath string) {
	fmt.Println()
	fmt.Println(ui.FormatBundle(fmt.Sprintf("Wrote %s bundle: %s", b.Kind.Label(), b.OutputPath)))
	fmt.Print(ui.RenderMembers(b.Members))
	if pct, ok := b.PercentSaved(); ok {
		fmt.Println(ui.RenderKeyValue("        MINIFIED", ui.FormatPercent(pct, ok)))
	}
	if compressedPath != "" {
		fmt.Println(ui.FormatMuted("      compressed: " + compressedPath))
	}
	for _, ref := range b.Skipped {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("Asset not found, URL left as-is: %s (%s)", ref.URL, ref.Path)))
	}
}

// printBundleAll prints every result of a batch, failures included
func printBundleAll(resp *services.BundleAllResponse) {
	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("No %s bundles defined", resp.Kind.Label())))
		return
	}

	for _, r := range resp.Results {
		if r.Err != nil {
			fmt.Println()
			fmt.Fprintln(os.Stderr, ui.FormatError(fmt.Sprintf("%s bundle %s: %v", resp.Kind.Label(), r.Name, r.Err)))
			continue
		}
		printBundle(r.Bundle, r.CompressedPath)
	}
}

// batchError turns a failure count into the command's error
func batchError(failed, total int, noun string) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d %ss failed", failed, total, noun)
}
