// File: cmd/rescale.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kinemorph/skelscale-cli/internal/observability"
	"github.com/kinemorph/skelscale-cli/internal/rescale"
	"github.com/kinemorph/skelscale-cli/internal/viewer"
)

// newRescaleCmd creates and configures the `rescale` command.
func newRescaleCmd() *cobra.Command {
	rescaleCmd := &cobra.Command{
		Use:   "rescale <model.xml>",
		Short: "Rescales a model's bone segments to their literature lengths",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to viper keys so command-line values override the
			// config file and environment with the right precedence.
			if err := viper.BindPFlag("rescale.global_ratio", cmd.Flags().Lookup("global-ratio")); err != nil {
				return err
			}
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg := appCfg

			// Flags were bound in PreRunE; pick up the final ratio.
			cfg.Rescale.GlobalRatio = viper.GetFloat64("rescale.global_ratio")

			inPath := args[0]
			outPath := viper.GetString("output")
			if outPath == "" {
				outPath = rescale.OutputPath(inPath, cfg.Rescale.OutputSuffix)
			}

			opts := rescale.Options{
				GlobalRatio:    cfg.Rescale.GlobalRatio,
				SkipParts:      cfg.Rescale.SkipParts,
				MeshRenameFrom: cfg.Rescale.MeshRenameFrom,
				MeshRenameTo:   cfg.Rescale.MeshRenameTo,
				Segments:       cfg.RescaleSegments(),
			}

			report, err := rescale.ProcessFile(inPath, outPath, opts, logger)
			if err != nil {
				return err
			}

			if reportPath := viper.GetString("report"); reportPath != "" {
				if err := report.WriteFile(reportPath); err != nil {
					return err
				}
				logger.Info("Wrote rescale report", zap.String("path", reportPath))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rescaled %s -> %s (run %s, max residual %.3g mm)\n",
				inPath, outPath, report.RunID, report.MaxResidualMM)

			if viper.GetBool("view") {
				return viewer.Launch(ctx, cfg.Viewer, outPath, logger)
			}
			return nil
		},
	}

	rescaleCmd.Flags().StringP("output", "o", "", "Output model path. Defaults to the input with the configured suffix.")
	rescaleCmd.Flags().StringP("report", "r", "", "Write a JSON run report to this path.")
	rescaleCmd.Flags().Float64("global-ratio", 1.13, "Uniform pre-scale ratio. (Overrides config/env)")
	rescaleCmd.Flags().Bool("view", false, "Launch the configured interactive viewer on the result.")

	return rescaleCmd
}
