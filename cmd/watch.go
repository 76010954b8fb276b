package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/internal/core/services"
	"github.com/kamal-hamza/deckindex/pkg/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index page whenever presentations change",
	Long: `Build once, then watch the presentations directory, every presentation
folder in it and the template, rebuilding the whole page after changes.

Bursts of events are collapsed: a rebuild starts once nothing has changed
for watch_debounce_ms milliseconds (500 by default).

Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	rebuild := func() {
		console.Reset()
		resp, err := indexService.Execute(ctx, services.BuildRequest{})
		if err != nil {
			fmt.Fprintln(out, ui.FormatError("Rebuild failed: "+err.Error()))
			return
		}
		fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("%s  %d presentation(s) -> %s",
			time.Now().Format("15:04:05"), resp.Total, appWorkspace.Rel(resp.OutputPath))))
	}

	// The first build also creates the presentations directory if needed
	rebuild()

	if err := watchTree(watcher, appWorkspace.PresentationsPath); err != nil {
		return err
	}
	templateDir := filepath.Dir(appWorkspace.TemplatePath)
	if err := watcher.Add(templateDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", templateDir, err)
	}

	if !quiet {
		fmt.Fprintln(out, ui.FormatStep(ui.IconWatch, "Watching "+appWorkspace.Rel(appWorkspace.PresentationsPath)+" and "+appWorkspace.Rel(appWorkspace.TemplatePath)))
		fmt.Fprintln(out, ui.FormatMuted("Press Ctrl+C to stop"))
	}

	return watchLoop(ctx, watcher, time.Duration(appConfig.WatchDebounceMS)*time.Millisecond, out, rebuild)
}

// watchLoop collects relevant events and calls rebuild once they settle.
// rebuild always runs on this goroutine, so builds never overlap.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, out io.Writer, rebuild func()) error {
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}

			// New presentation folders need their own watch
			if event.Has(fsnotify.Create) && isPresentationDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					fmt.Fprintln(out, ui.FormatWarning("Cannot watch "+event.Name+": "+err.Error()))
				}
			}

			timer.Reset(debounce)

		case <-timer.C:
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(out, ui.FormatWarning("Watcher error: "+err.Error()))

		case <-ctx.Done():
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.FormatMuted("Watch stopped"))
			return nil
		}
	}
}

// watchTree watches root and each directory directly inside it
func watchTree(watcher *fsnotify.Watcher, root string) error {
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", root, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if err := watcher.Add(filepath.Join(root, entry.Name())); err != nil {
			return fmt.Errorf("failed to watch %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func relevantEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") || strings.HasSuffix(base, "~") {
		return false
	}

	// The output page may live inside a watched directory
	if appWorkspace != nil && filepath.Clean(event.Name) == appWorkspace.OutputPath {
		return false
	}

	return true
}

// isPresentationDir reports whether path is a directory directly inside the presentations folder
func isPresentationDir(path string) bool {
	if appWorkspace == nil || filepath.Dir(path) != appWorkspace.PresentationsPath {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
