package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/internal/adapters/compressor"
	"github.com/kamal-hamza/assethat/internal/adapters/minifier"
	"github.com/kamal-hamza/assethat/internal/adapters/repository"
	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/services"
	"github.com/kamal-hamza/assethat/pkg/config"
	"github.com/kamal-hamza/assethat/pkg/ui"
)

// Commands annotated with this key run without config/assets.yml
const annotationConfigOptional = "config-optional"

var (
	// Global flags
	rootPath      string
	envName       string
	assetHostFlag string
	colorTheme    string
	verbose       bool

	// Project
	layout    domain.Layout
	appConfig *config.Config

	// Adapters
	fileSystem    *repository.FileSystem
	assetMinifier *minifier.Minifier

	// Services
	bundleService     *services.BundleService
	minifyFileService *services.MinifyFileService
	stampService      *services.StampService
	reportService     *services.ReportService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assethat",
	Short: "Concatenate, minify and stamp CSS/JS bundles",
	Long: ui.StyleTitle.Render("assethat") + " - asset bundler for web applications\n\n" +
		"Builds the CSS and JS bundles listed in config/assets.yml into\n" +
		"public/stylesheets/bundles and public/javascripts/bundles, stamping\n" +
		"asset URLs with modification times and CDN hosts on the way.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))

		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, ui.FormatInfo("Check "+filepath.Join("config", "assets.yml")+" or run 'assethat --help'"))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", ".", "Application root containing config/ and public/")
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", defaultEnv(), "Environment used to look up the asset host")
	rootCmd.PersistentFlags().StringVar(&assetHostFlag, "asset-host", "", "Asset host to use instead of the configured one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print extra detail about written files")
	rootCmd.PersistentFlags().StringVar(&colorTheme, "theme", "auto", "Color theme (auto, dark, light)")

	rootCmd.AddCommand(minifyCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(jsCmd)
	rootCmd.AddCommand(localesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func defaultEnv() string {
	if env := os.Getenv("ASSETHAT_ENV"); env != "" {
		return env
	}
	return "development"
}

// initializeApp loads the config and wires adapters into services
func initializeApp(cmd *cobra.Command, args []string) error {
	ui.SetTheme(colorTheme)

	// Skip initialization for commands that don't touch the project
	if cmd.Name() == "version" || cmd.Name() == "init" {
		return nil
	}

	layout = domain.NewLayout(rootPath)

	cfg, err := config.Load(layout.ConfigPath)
	if err != nil {
		if cmd.Annotations[annotationConfigOptional] != "true" || !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		cfg = config.DefaultConfig()
	}
	appConfig = cfg

	m, err := minifier.New(appConfig.Minifier.CSS, appConfig.Minifier.JS)
	if err != nil {
		return domain.NewConfigurationError("minifier", "%v", err)
	}
	assetMinifier = m

	fileSystem = repository.NewFileSystem()

	bundleService = services.NewBundleService(appConfig, fileSystem, assetMinifier, layout)
	if appConfig.Precompress {
		bundleService.WithCompressor(compressor.NewBrotli())
	}
	minifyFileService = services.NewMinifyFileService(fileSystem, assetMinifier)
	stampService = services.NewStampService(fileSystem, layout)
	reportService = services.NewReportService(bundleService)

	return nil
}

// currentAssetHost returns the --asset-host flag or the host configured for --env
func currentAssetHost() string {
	if host := strings.TrimSpace(assetHostFlag); host != "" {
		return host
	}
	return strings.TrimSpace(appConfig.AssetHost(envName))
}

// bundleOptions returns the options shared by every bundle command
func bundleOptions() services.BundleOptions {
	return services.BundleOptions{AssetHost: currentAssetHost()}
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
