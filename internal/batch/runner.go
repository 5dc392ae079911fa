// File: internal/batch/runner.go
// Package batch rescales many independent model files concurrently. Each
// model is a self-contained single-threaded pipeline; the runner only fans
// them out across workers.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kinemorph/skelscale-cli/internal/rescale"
)

// Runner processes a set of models with bounded concurrency.
type Runner struct {
	opts        rescale.Options
	concurrency int
	outputDir   string
	suffix      string
	logger      *zap.Logger
}

// Summary aggregates the per-model reports of one batch.
type Summary struct {
	Reports []*rescale.Report `json:"reports"`
}

// New builds a runner. Concurrency below 1 is clamped to 1.
func New(opts rescale.Options, concurrency int, outputDir, suffix string, logger *zap.Logger) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		opts:        opts,
		concurrency: concurrency,
		outputDir:   outputDir,
		suffix:      suffix,
		logger:      logger.Named("batch"),
	}
}

// Run rescales every model path, at most concurrency at a time. The first
// failure cancels outstanding work; reports for models that completed are
// still returned, ordered by input path.
func (r *Runner) Run(ctx context.Context, models []string) (*Summary, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("no model files to process")
	}

	r.logger.Info("Starting batch rescale",
		zap.Int("models", len(models)),
		zap.Int("concurrency", r.concurrency),
	)

	var mu sync.Mutex
	reports := make(map[string]*rescale.Report, len(models))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, model := range models {
		model := model
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := rescale.ProcessFile(model, r.outputPath(model), r.opts, r.logger)
			if err != nil {
				return err
			}
			mu.Lock()
			reports[model] = report
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	summary := &Summary{}
	paths := make([]string, 0, len(reports))
	for p := range reports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		summary.Reports = append(summary.Reports, reports[p])
	}

	if err != nil {
		return summary, fmt.Errorf("batch rescale failed: %w", err)
	}
	r.logger.Info("Batch rescale complete", zap.Int("models", len(summary.Reports)))
	return summary, nil
}

// outputPath places the rescaled model either next to the input or, when an
// output directory is configured, inside it.
func (r *Runner) outputPath(model string) string {
	out := rescale.OutputPath(model, r.suffix)
	if r.outputDir == "" {
		return out
	}
	return filepath.Join(r.outputDir, filepath.Base(out))
}
