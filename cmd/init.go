package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/pkg/config"
	"github.com/kamal-hamza/assethat/pkg/ui"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter config/assets.yml",
	Long: `Create config/assets.yml under the application root.

Every stylesheet and script found under public/ is listed in an
"application" bundle, in alphabetical order. Reorder the lists so
dependencies come first, then run 'assethat minify'.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	l := domain.NewLayout(rootPath)

	if _, err := os.Stat(l.ConfigPath); err == nil {
		fmt.Println(ui.FormatWarning("Config already exists"))
		fmt.Println(ui.FormatMuted("Location: " + l.ConfigPath))
		return nil
	}

	fmt.Println(ui.FormatRocket("Initializing assethat..."))
	fmt.Println()

	cfg := config.DefaultConfig()
	for _, kind := range domain.Kinds {
		names, err := scanSources(l, kind)
		if err != nil {
			fmt.Println(ui.FormatWarning(fmt.Sprintf("Failed to scan %s: %v", l.KindDir(kind), err)))
			continue
		}
		if len(names) == 0 {
			fmt.Println(ui.FormatMuted(fmt.Sprintf("No %s files found in %s", kind.Label(), l.KindDir(kind))))
			continue
		}

		section := &cfg.CSS
		if kind == domain.KindJS {
			section = &cfg.JS
		}
		section.Bundles.Set("application", names)
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("Found %d %s files", len(names), kind.Label())))
	}

	if err := cfg.Save(l.ConfigPath); err != nil {
		fmt.Println(ui.FormatError("Failed to write config"))
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess("Config created"))
	fmt.Println(ui.RenderKeyValue("Location", l.ConfigPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Reorder the bundle lists in " + l.ConfigPath))
	fmt.Println(ui.FormatMuted("  2. Build the bundles: assethat minify"))
	fmt.Println(ui.FormatMuted("  3. Check the savings: assethat report"))

	return nil
}

// scanSources lists the logical names of the source files of a kind
func scanSources(l domain.Layout, kind domain.Kind) ([]string, error) {
	root := l.KindDir(kind)
	ext := "." + kind.Ext()

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var names []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (path == l.BundleDir(kind) || strings.HasPrefix(d.Name(), ".") ||
				(kind == domain.KindJS && path == filepath.Join(root, "locales"))) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ext) || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		// Minified stylesheets are usually the output of minify-file
		if kind == domain.KindCSS && domain.IsMinified(path, kind) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(strings.TrimSuffix(rel, ext)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}
