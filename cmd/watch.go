package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/makampitch/constants"
	"github.com/jsphweid/makampitch/extractor"
	"github.com/jsphweid/makampitch/util"
	"github.com/spf13/cobra"
)

var watchOut string

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output directory (default $OUTPUT_PATH or ./out)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-extracts contour sets under a directory whenever they change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := constants.GetContourDir()
		if len(args) == 1 {
			dir = args[0]
		}
		return watch(cmd.Context(), dir, BatchOptions{OutDir: watchOut})
	},
}

// pendingSet collects changed paths between debounced flushes.
type pendingSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func (p *pendingSet) add(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paths == nil {
		p.paths = map[string]struct{}{}
	}
	p.paths[path] = struct{}{}
}

func (p *pendingSet) drain() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := util.GetKeys(p.paths)
	p.paths = nil
	return keys
}

// rebuilder re-extracts pending contour sets. Flushes run one at a time.
type rebuilder struct {
	mu      sync.Mutex
	pending pendingSet
	process func(path string) (string, error)
}

func (b *rebuilder) flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, path := range b.pending.drain() {
		out, err := b.process(path)
		if err != nil {
			logger.Warn("skipping contour set", slog.String("path", path), slog.Any("error", err))
			continue
		}
		logger.Info("extracted", slog.String("path", path), slog.String("out", out))
	}
}

// watchTree adds dir and every directory below it, the same tree batch walks.
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("could not watch %v: %w", path, err)
		}
		return nil
	})
}

func watch(ctx context.Context, dir string, opts BatchOptions) error {
	opts = opts.withDefaults()
	if err := util.EnsureDir(opts.OutDir); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	defer watcher.Close()
	if err := watchTree(watcher, dir); err != nil {
		return err
	}

	ex := extractor.New(cfg.Extractor, logger)
	b := &rebuilder{process: func(path string) (string, error) {
		return processContourFile(ctx, ex, path, opts)
	}}
	debounced := debounce.New(time.Duration(cfg.Batch.WatchDelayMS) * time.Millisecond)

	logger.Info("watching", slog.String("dir", dir), slog.String("out", opts.OutDir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := watchTree(watcher, event.Name); err != nil {
					logger.Warn("watch error", slog.Any("error", err))
				}
				continue
			}
			if !util.IsContourFile(event.Name) {
				continue
			}
			b.pending.add(event.Name)
			debounced(b.flush)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.Any("error", err))
		}
	}
}
