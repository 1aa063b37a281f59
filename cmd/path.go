package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/pkg/ui"
)

var (
	pathCopy bool
)

// pathCmd prints where a bundle is written
var pathCmd = &cobra.Command{
	Use:   "path <css|js> <bundle>",
	Short: "Print the output path of a bundle",
	Long: `Print the path a bundle is written to, for use in templates and scripts.

Examples:
  assethat path css application
  assethat path js vendor --copy`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func init() {
	pathCmd.Flags().BoolVarP(&pathCopy, "copy", "c", false, "Copy the path to the clipboard")
}

func runPath(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}

	name := args[1]
	if _, ok := appConfig.BundleFiles(kind, name); !ok {
		return domain.NewConfigurationError(string(kind), "no %s bundle named %q in %s", kind.Label(), name, layout.ConfigPath)
	}

	bundlePath := layout.BundlePath(kind, name)
	fmt.Println(bundlePath)

	if pathCopy {
		if err := clipboard.WriteAll(bundlePath); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Println(ui.FormatSuccess("Copied to clipboard"))
	}
	return nil
}
