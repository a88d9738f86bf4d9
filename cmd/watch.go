package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/tunesheet/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var watchDelay time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 200*time.Millisecond, "how long edits must settle before recompiling")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Recompiles a sheet whenever it changes",
	Long:  `Watches a sheet and recompiles it after every change, logging a summary or the error.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0], watchDelay, recompile)
	},
}

// recompile reports whether path compiled.
func recompile(path string) bool {
	s, err := compileFile(path)
	if err != nil {
		logger.Error("compile failed", "file", path, "err", err)
		return false
	}
	st := model.Collect(s.Root)
	logger.Info("compiled", "file", path, "entries", s.Root.Len(), "events", st.Events, "shared", st.Shared)
	return true
}

// watch calls onChange once for path, and again whenever it is written,
// recreated or renamed over, after events have settled for delay. The
// directory is watched rather than the file so that editors which save by
// renaming keep being followed. It runs until ctx is done.
func watch(ctx context.Context, path string, delay time.Duration, onChange func(string) bool) error {
	if delay <= 0 {
		return errors.Errorf("watch delay must be positive, got %v", delay)
	}
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, "could not watch sheet")
	}
	target := filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "could not create watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "could not watch %v", filepath.Dir(target))
	}
	logger.Info("watching", "file", target)

	onChange(path)
	debounced := debounce.New(delay)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("sheet changed", "file", target, "op", event.Op.String())
				debounced(func() {
					// a rename away leaves nothing to compile until the new file lands
					if _, err := os.Stat(path); err == nil {
						onChange(path)
					}
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}
