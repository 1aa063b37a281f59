package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/services"
	"github.com/kamal-hamza/assethat/pkg/config"
)

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"minify", "css", "js", "locales", "report", "path", "watch", "init", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil {
				t.Fatalf("Command '%s' is nil", cmdName)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("Root command is nil")
	}

	if rootCmd.Use != "assethat" {
		t.Errorf("Expected root command Use to be 'assethat', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	commands := rootCmd.Commands()

	if len(commands) == 0 {
		t.Fatal("No commands registered")
	}

	for _, cmd := range commands {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
			for _, sub := range cmd.Commands() {
				if sub.Short == "" {
					t.Errorf("Command '%s %s' has no Short description", cmd.Name(), sub.Name())
				}
			}
		})
	}
}

// TestSubcommands verifies specific subcommands exist
func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent     string
		subcommand string
	}{
		{"css", "minify"},
		{"css", "minify-bundle"},
		{"css", "minify-file"},
		{"css", "add-asset-mtimes"},
		{"css", "add-asset-hosts"},
		{"js", "minify"},
		{"js", "minify-bundle"},
		{"js", "minify-file"},
		{"locales", "generate"},
		{"locales", "generate-for"},
	}

	for _, tt := range tests {
		t.Run(tt.parent+"_"+tt.subcommand, func(t *testing.T) {
			parentCmd, _, err := rootCmd.Find([]string{tt.parent})
			if err != nil {
				t.Fatalf("Parent command '%s' not found: %v", tt.parent, err)
			}

			found := false
			for _, cmd := range parentCmd.Commands() {
				if cmd.Name() == tt.subcommand {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Subcommand '%s' not found under '%s'", tt.subcommand, tt.parent)
			}
		})
	}
}

// TestJSHasNoStampCommands verifies stamping is only offered for stylesheets
func TestJSHasNoStampCommands(t *testing.T) {
	for _, sub := range jsCmd.Commands() {
		if strings.HasPrefix(sub.Name(), "add-asset") {
			t.Errorf("Unexpected subcommand '%s' under js", sub.Name())
		}
	}
}

// TestFlagsExist verifies important flags are registered
func TestFlagsExist(t *testing.T) {
	tests := []struct {
		command  []string
		flagName string
	}{
		{[]string{"report"}, "chart"},
		{[]string{"path"}, "copy"},
		{[]string{"watch"}, "quiet"},
		{[]string{"locales", "generate"}, "browser"},
		{[]string{"css", "minify"}, "root"},
		{[]string{"css", "minify"}, "env"},
		{[]string{"css", "minify"}, "asset-host"},
		{[]string{"js", "minify-file"}, "verbose"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.command, "_")+"_"+tt.flagName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find(tt.command)
			if err != nil {
				t.Fatalf("Command '%v' not found: %v", tt.command, err)
			}

			if cmd.Flags().Lookup(tt.flagName) == nil && cmd.InheritedFlags().Lookup(tt.flagName) == nil {
				t.Errorf("Flag '--%s' not found on command '%v'", tt.flagName, tt.command)
			}
		})
	}
}

// TestVersionCommand verifies version command exists
func TestVersionCommand(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"version"})
	if err != nil {
		t.Fatalf("Version command not found: %v", err)
	}

	if cmd == nil {
		t.Fatal("Version command is nil")
	}
}

func TestDefaultEnv(t *testing.T) {
	t.Setenv("ASSETHAT_ENV", "")
	if got := defaultEnv(); got != "development" {
		t.Errorf("Expected 'development', got '%s'", got)
	}

	t.Setenv("ASSETHAT_ENV", "production")
	if got := defaultEnv(); got != "production" {
		t.Errorf("Expected 'production', got '%s'", got)
	}
}

func TestBatchError(t *testing.T) {
	if err := batchError(0, 3, "bundle"); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}

	err := batchError(1, 3, "bundle")
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "1 of 3 bundles failed" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

// withRoot points the global root at dir for one test
func withRoot(t *testing.T, dir string) {
	t.Helper()
	oldRoot, oldLayout, oldConfig := rootPath, layout, appConfig
	rootPath = dir
	t.Cleanup(func() {
		rootPath, layout, appConfig = oldRoot, oldLayout, oldConfig
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestInitializeApp_MissingConfig(t *testing.T) {
	withRoot(t, t.TempDir())

	cmd, _, err := rootCmd.Find([]string{"css", "minify"})
	if err != nil {
		t.Fatal(err)
	}

	err = initializeApp(cmd, nil)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestInitializeApp_OptionalConfig(t *testing.T) {
	withRoot(t, t.TempDir())

	for _, args := range [][]string{
		{"css", "minify-file"},
		{"js", "minify-file"},
		{"css", "add-asset-mtimes"},
	} {
		cmd, _, err := rootCmd.Find(args)
		if err != nil {
			t.Fatal(err)
		}
		if err := initializeApp(cmd, nil); err != nil {
			t.Errorf("%v: unexpected error: %v", args, err)
		}
		if minifyFileService == nil || stampService == nil {
			t.Errorf("%v: services not initialized", args)
		}
	}
}

func TestInitializeApp_LoadsConfig(t *testing.T) {
	dir := t.TempDir()
	withRoot(t, dir)

	writeFile(t, filepath.Join(dir, "config", "assets.yml"), `css:
  bundles:
    application:
      - reset
      - app
js:
  bundles: {}
asset_hosts:
  production: https://cdn.example.com
`)

	cmd, _, err := rootCmd.Find([]string{"css", "minify"})
	if err != nil {
		t.Fatal(err)
	}
	if err := initializeApp(cmd, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := bundleService.Names(domain.KindCSS); !reflect.DeepEqual(got, []string{"application"}) {
		t.Errorf("Unexpected bundle names: %v", got)
	}

	oldEnv, oldHost := envName, assetHostFlag
	t.Cleanup(func() { envName, assetHostFlag = oldEnv, oldHost })

	envName, assetHostFlag = "production", ""
	if got := currentAssetHost(); got != "https://cdn.example.com" {
		t.Errorf("Expected configured host, got '%s'", got)
	}

	assetHostFlag = "https://override.example.com"
	if got := currentAssetHost(); got != "https://override.example.com" {
		t.Errorf("Expected flag host, got '%s'", got)
	}

	// A blank flag does not override the configured host
	assetHostFlag = "   "
	if got := currentAssetHost(); got != "https://cdn.example.com" {
		t.Errorf("Expected configured host for blank flag, got '%s'", got)
	}

	envName = "staging"
	if got := currentAssetHost(); got != "" {
		t.Errorf("Expected no host for staging, got '%s'", got)
	}
}

func TestInitializeApp_MalformedOptionalConfig(t *testing.T) {
	dir := t.TempDir()
	withRoot(t, dir)

	writeFile(t, filepath.Join(dir, "config", "assets.yml"), "minifier:\n  css: cssmin\ncss:\n  bundles: [oops\n")

	cmd, _, err := rootCmd.Find([]string{"css", "minify-file"})
	if err != nil {
		t.Fatal(err)
	}

	err = initializeApp(cmd, nil)
	if err == nil {
		t.Fatal("Expected error for malformed config")
	}
	if errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a parse error, got %v", err)
	}
}

func TestPrintStamp(t *testing.T) {
	resp := &services.StampResponse{
		Path: "public/stylesheets/site.css",
		Skipped: []domain.MissingAssetReference{
			{URL: "img/gone.png", Path: "public/stylesheets/img/gone.png"},
		},
	}

	var buf bytes.Buffer
	printStamp(&buf, resp, "Added asset mtimes to "+resp.Path)

	out := buf.String()
	for _, want := range []string{"Added asset mtimes to public/stylesheets/site.css", "img/gone.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %q", want, out)
		}
	}
}

func TestRebuildQueue_FlushesDoNotOverlap(t *testing.T) {
	var (
		active  int32
		maxSeen int32
		mu      sync.Mutex
		built   []string
		once    sync.Once
		started = make(chan struct{})
	)

	queue := newRebuildQueue(func(k bundleKey) {
		once.Do(func() { close(started) })
		n := atomic.AddInt32(&active, 1)
		for {
			m := atomic.LoadInt32(&maxSeen)
			if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		built = append(built, string(k.kind)+"/"+k.name)
		mu.Unlock()
		atomic.AddInt32(&active, -1)
	})

	queue.add(bundleKey{kind: domain.KindJS, name: "app"})
	queue.add(bundleKey{kind: domain.KindCSS, name: "site"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		queue.flush()
	}()

	// Queue more work while the first flush is building
	<-started
	queue.add(bundleKey{kind: domain.KindCSS, name: "print"})
	wg.Add(1)
	go func() {
		defer wg.Done()
		queue.flush()
	}()
	wg.Wait()

	if got := atomic.LoadInt32(&maxSeen); got != 1 {
		t.Errorf("Expected rebuilds to run one at a time, saw %d at once", got)
	}
	if len(built) != 3 {
		t.Fatalf("Expected 3 rebuilds, got %v", built)
	}
	if built[0] != "css/site" || built[1] != "js/app" {
		t.Errorf("Expected first flush in kind/name order, got %v", built)
	}
}

func TestRebuildQueue_Deduplicates(t *testing.T) {
	var built []bundleKey
	queue := newRebuildQueue(func(k bundleKey) { built = append(built, k) })

	queue.add(bundleKey{kind: domain.KindCSS, name: "site"})
	queue.add(bundleKey{kind: domain.KindCSS, name: "site"})
	queue.flush()
	queue.flush()

	if len(built) != 1 {
		t.Errorf("Expected a single rebuild, got %v", built)
	}
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	withRoot(t, dir)

	l := domain.NewLayout(dir)
	writeFile(t, l.SourcePath(domain.KindCSS, "reset"), "html{}")
	writeFile(t, l.SourcePath(domain.KindCSS, "app"), "body{}")
	writeFile(t, l.SourcePath(domain.KindCSS, "print.min"), "p{}")
	writeFile(t, l.BundlePath(domain.KindCSS, "application"), "old")
	writeFile(t, l.SourcePath(domain.KindJS, "vendor/jquery.min"), "var $;")
	writeFile(t, l.SourcePath(domain.KindJS, "app"), "var a;")
	writeFile(t, l.LocalePath("en"), "var t;")

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cfg, err := config.Load(l.ConfigPath)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}

	css, _ := cfg.BundleFiles(domain.KindCSS, "application")
	if want := []string{"app", "reset"}; !reflect.DeepEqual(css, want) {
		t.Errorf("CSS bundle: expected %v, got %v", want, css)
	}

	js, _ := cfg.BundleFiles(domain.KindJS, "application")
	if want := []string{"app", "vendor/jquery.min"}; !reflect.DeepEqual(js, want) {
		t.Errorf("JS bundle: expected %v, got %v", want, js)
	}

	// A second run leaves the config alone
	writeFile(t, l.SourcePath(domain.KindCSS, "extra"), "a{}")
	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	cfg, _ = config.Load(l.ConfigPath)
	css, _ = cfg.BundleFiles(domain.KindCSS, "application")
	if len(css) != 2 {
		t.Errorf("Expected config to be unchanged, got %v", css)
	}
}

func TestLogicalName(t *testing.T) {
	withRoot(t, "/app")
	layout = domain.NewLayout("/app")

	tests := []struct {
		path     string
		wantKind domain.Kind
		wantName string
		wantOK   bool
	}{
		{"/app/public/stylesheets/reset.css", domain.KindCSS, "reset", true},
		{"/app/public/javascripts/vendor/jquery.min.js", domain.KindJS, "vendor/jquery.min", true},
		{"/app/public/stylesheets/.reset.css.swp", "", "", false},
		{"/app/public/stylesheets/notes.txt", "", "", false},
		{"/app/public/javascripts/app.js~", "", "", false},
		{"/elsewhere/app.js", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, name, ok := logicalName(tt.path)
			if ok != tt.wantOK || kind != tt.wantKind || name != tt.wantName {
				t.Errorf("logicalName(%s) = (%s, %s, %v), want (%s, %s, %v)",
					tt.path, kind, name, ok, tt.wantKind, tt.wantName, tt.wantOK)
			}
		})
	}
}

func TestSkipWatchDir(t *testing.T) {
	withRoot(t, "/app")
	layout = domain.NewLayout("/app")

	tests := []struct {
		path string
		want bool
	}{
		{"/app/public/stylesheets/bundles", true},
		{"/app/public/javascripts/bundles", true},
		{"/app/public/javascripts/locales", true},
		{"/app/public/javascripts/.cache", true},
		{"/app/public/javascripts/vendor", false},
	}

	for _, tt := range tests {
		if got := skipWatchDir(tt.path); got != tt.want {
			t.Errorf("skipWatchDir(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRenderReportTable(t *testing.T) {
	report := &services.ReportResponse{
		Rows: []services.ReportRow{
			{Kind: domain.KindCSS, Name: "application", Members: 2, OldSize: 200, NewSize: 100},
			{Kind: domain.KindJS, Name: "broken", Err: errors.New("boom")},
		},
		TotalOldSize: 200,
		TotalNewSize: 100,
	}

	out := renderReportTable(report)
	for _, want := range []string{"application", "50.0%", "failed", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, out)
		}
	}
}
