// File: cmd/batch.go
package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kinemorph/skelscale-cli/internal/batch"
	"github.com/kinemorph/skelscale-cli/internal/observability"
	"github.com/kinemorph/skelscale-cli/internal/rescale"
)

// newBatchCmd creates the `batch` command: rescale many models at once.
func newBatchCmd() *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch <models...>",
		Short: "Rescales multiple models concurrently",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("batch.concurrency", cmd.Flags().Lookup("concurrency")); err != nil {
				return err
			}
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			cfg := appCfg

			if c := viper.GetInt("batch.concurrency"); c > 0 {
				cfg.Batch.Concurrency = c
			}

			models, err := expandModelArgs(args)
			if err != nil {
				return err
			}

			opts := rescale.Options{
				GlobalRatio:    cfg.Rescale.GlobalRatio,
				SkipParts:      cfg.Rescale.SkipParts,
				MeshRenameFrom: cfg.Rescale.MeshRenameFrom,
				MeshRenameTo:   cfg.Rescale.MeshRenameTo,
				Segments:       cfg.RescaleSegments(),
			}
			runner := batch.New(opts, cfg.Batch.Concurrency, cfg.Batch.OutputDir, cfg.Rescale.OutputSuffix, logger)

			summary, err := runner.Run(cmd.Context(), models)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Batch complete: %d models rescaled.\n", len(summary.Reports))
			return nil
		},
	}

	batchCmd.Flags().IntP("concurrency", "j", 0, "Number of concurrent model workers. (Overrides config/env)")
	return batchCmd
}

// expandModelArgs resolves glob patterns and deduplicates the model list.
func expandModelArgs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var models []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad model pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// Not a pattern; keep the literal path so missing files fail
			// loudly in the pipeline instead of being silently dropped.
			matches = []string{arg}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				models = append(models, m)
			}
		}
	}
	sort.Strings(models)
	return models, nil
}
