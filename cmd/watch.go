package cmd

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assethat/internal/core/domain"
	"github.com/kamal-hamza/assethat/internal/core/services"
	"github.com/kamal-hamza/assethat/pkg/ui"
)

var (
	watchQuiet bool
)

// watchCmd rebuilds bundles when their member files change
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild bundles when their source files change",
	Long: `Watch public/stylesheets and public/javascripts and rebuild every bundle
that lists a changed file.

Generated bundles, hidden files and editor backups are ignored.
Use --quiet to print only failures.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress rebuild notifications")
}

// bundleKey identifies one bundle of one kind
type bundleKey struct {
	kind domain.Kind
	name string
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, kind := range domain.Kinds {
		if err := addWatchDirs(watcher, kind); err != nil {
			return err
		}
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Watching assets..."))
		for _, kind := range domain.Kinds {
			fmt.Println(ui.FormatMuted("Watching: " + layout.KindDir(kind)))
		}
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	queue := newRebuildQueue(func(k bundleKey) {
		resp, err := bundleService.Execute(ctx, services.BundleRequest{
			Kind:    k.kind,
			Name:    k.name,
			Options: bundleOptions(),
		})
		if err != nil {
			fmt.Println(ui.FormatError(fmt.Sprintf("%s bundle %s: %v", k.kind.Label(), k.name, err)))
			log.Printf("Rebuild error: %v", err)
			return
		}
		if !watchQuiet {
			printBundle(resp.Bundle, resp.CompressedPath)
		}
	})
	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			// New subdirectories need their own watch
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipWatchDir(event.Name) {
					if err := watcher.Add(event.Name); err != nil {
						log.Printf("Watcher error: %v", err)
					}
					continue
				}
			}

			kind, name, ok := logicalName(event.Name)
			if !ok {
				continue
			}

			affected := appConfig.BundlesContaining(kind, name)
			if len(affected) == 0 {
				continue
			}

			for _, b := range affected {
				queue.add(bundleKey{kind: kind, name: b})
			}
			queue.schedule(debounce)

			if !watchQuiet {
				fmt.Println(ui.FormatInfo("Changed: " + event.Name))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			queue.stop()
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}

// rebuildQueue collects changed bundles and rebuilds them after a quiet period.
// Flushes never overlap: a flush started while another is running waits for it.
type rebuildQueue struct {
	mu      sync.Mutex
	running sync.Mutex
	pending map[bundleKey]bool
	timer   *time.Timer
	build   func(bundleKey)
}

func newRebuildQueue(build func(bundleKey)) *rebuildQueue {
	return &rebuildQueue{
		pending: make(map[bundleKey]bool),
		build:   build,
	}
}

// add marks a bundle for rebuilding
func (q *rebuildQueue) add(k bundleKey) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending[k] = true
}

// schedule (re)starts the debounce timer
func (q *rebuildQueue) schedule(d time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
	}
	q.timer = time.AfterFunc(d, q.flush)
}

// stop cancels a pending flush
func (q *rebuildQueue) stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
	}
}

// flush rebuilds every pending bundle in kind and name order
func (q *rebuildQueue) flush() {
	q.running.Lock()
	defer q.running.Unlock()

	q.mu.Lock()
	keys := make([]bundleKey, 0, len(q.pending))
	for k := range q.pending {
		keys = append(keys, k)
	}
	q.pending = make(map[bundleKey]bool)
	q.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].name < keys[j].name
	})

	for _, k := range keys {
		q.build(k)
	}
}

// addWatchDirs watches the source directory of a kind and its subdirectories
func addWatchDirs(watcher *fsnotify.Watcher, kind domain.Kind) error {
	root := layout.KindDir(kind)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipWatchDir(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// skipWatchDir reports directories holding generated output
func skipWatchDir(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, kind := range domain.Kinds {
		if path == layout.BundleDir(kind) {
			return true
		}
	}
	return path == filepath.Join(layout.KindDir(domain.KindJS), "locales")
}

// logicalName maps a changed file to the name bundles refer to it by
func logicalName(path string) (domain.Kind, string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") || strings.HasSuffix(base, "~") {
		return "", "", false
	}

	for _, kind := range domain.Kinds {
		ext := "." + kind.Ext()
		if !strings.HasSuffix(path, ext) {
			continue
		}
		rel, err := filepath.Rel(layout.KindDir(kind), path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		return kind, filepath.ToSlash(strings.TrimSuffix(rel, ext)), true
	}
	return "", "", false
}
