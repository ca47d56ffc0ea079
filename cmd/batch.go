package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/makampitch/constants"
	"github.com/jsphweid/makampitch/extractor"
	"github.com/jsphweid/makampitch/file"
	"github.com/jsphweid/makampitch/util"
	"github.com/spf13/cobra"
)

var (
	batchOut     string
	batchFormat  string
	batchWorkers int
)

func init() {
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "output directory (default $OUTPUT_PATH or ./out)")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "output format: json, tsv or midi (default batch.output_format)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel recordings (default batch.workers)")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch [dir] [maxNum]",
	Short: "Extracts pitch tracks for every contour set in a directory",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := constants.GetContourDir()
		if len(args) > 0 {
			dir = args[0]
		}
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("maxNum: %w", err)
			}
			maxNum = n
		}

		opts := BatchOptions{
			OutDir:  batchOut,
			Format:  batchFormat,
			Workers: batchWorkers,
		}
		_, err := Index(cmd.Context(), dir, maxNum, opts)
		return err
	},
}

type BatchOptions struct {
	OutDir  string
	Format  string
	Workers int
}

func (o BatchOptions) withDefaults() BatchOptions {
	if o.OutDir == "" {
		o.OutDir = constants.GetOutputDir()
	}
	if o.Format == "" {
		o.Format = cfg.Batch.OutputFormat
	}
	if o.Workers <= 0 {
		o.Workers = cfg.Batch.Workers
	}
	return o
}

// Index extracts every contour set under dir and returns the written paths.
// Recordings are independent, so they run on a bounded pool of workers.
func Index(ctx context.Context, dir string, maxNum int, opts BatchOptions) ([]string, error) {
	opts = opts.withDefaults()
	if err := util.EnsureDir(opts.OutDir); err != nil {
		return nil, err
	}
	paths, err := util.GatherAllContourPaths(dir, maxNum)
	if err != nil {
		return nil, err
	}

	runLogger := logger.With(slog.String("run_id", uuid.New().String()))
	runLogger.Info("batch started",
		slog.String("dir", dir),
		slog.Int("files", len(paths)),
		slog.Int("workers", opts.Workers),
	)

	ex := extractor.New(cfg.Extractor, runLogger)
	jobs := make(chan int)
	written := make([]string, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < util.Min(opts.Workers, len(paths)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				written[i], errs[i] = processContourFile(ctx, ex, paths[i], opts)
				if errs[i] != nil {
					runLogger.Warn("skipping contour set",
						slog.String("path", paths[i]),
						slog.Any("error", errs[i]),
					)
				}
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	var res []string
	for _, p := range written {
		if p != "" {
			res = append(res, p)
		}
	}
	runLogger.Info("batch finished", slog.Int("written", len(res)), slog.Int("failed", len(paths)-len(res)))

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, errors.Join(errs...)
}

func processContourFile(ctx context.Context, ex *extractor.Extractor, path string, opts BatchOptions) (string, error) {
	set, err := file.ReadContourSet(path)
	if err != nil {
		return "", fmt.Errorf("%v: %w", path, err)
	}
	res, err := ex.Run(ctx, set, path)
	if err != nil {
		return "", err
	}
	out := file.OutputPath(path, opts.OutDir, opts.Format)
	if err := writeOutput(out, res, opts.Format); err != nil {
		return "", err
	}
	return out, nil
}
