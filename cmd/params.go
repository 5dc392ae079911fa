// File: cmd/params.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kinemorph/skelscale-cli/internal/fitparams"
	"github.com/kinemorph/skelscale-cli/internal/observability"
)

// newParamsCmd groups the fitting-pipeline parameter file operations.
func newParamsCmd() *cobra.Command {
	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "Manages the fitting-pipeline parameter files",
	}
	paramsCmd.AddCommand(newParamsInitCmd())
	paramsCmd.AddCommand(newParamsValidateCmd())
	return paramsCmd
}

// newParamsInitCmd writes the default parameter tables.
func newParamsInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Writes default fit.yaml and keypoints.yaml parameter files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}

			fitPath := filepath.Join(dir, "fit.yaml")
			if err := fitparams.Default().WriteFile(fitPath); err != nil {
				return err
			}
			keypointsPath := filepath.Join(dir, "keypoints.yaml")
			if err := fitparams.DefaultKeypoints().WriteFile(keypointsPath); err != nil {
				return err
			}

			logger.Info("Wrote default parameter files",
				zap.String("fit", fitPath),
				zap.String("keypoints", keypointsPath),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", fitPath, keypointsPath)
			return nil
		},
	}
	return initCmd
}

// newParamsValidateCmd checks the configured parameter files.
func newParamsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validates the configured parameter files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appCfg

			params, err := fitparams.LoadFitParams(cfg.Fit.ParamsPath)
			if err != nil {
				return err
			}
			keypoints, err := fitparams.LoadKeypoints(cfg.Fit.KeypointsPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (scale factor %g, arena %gx%g m)\n",
				cfg.Fit.ParamsPath, params.ScaleFactor, params.ArenaSize[0], params.ArenaSize[1])
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d keypoints)\n", cfg.Fit.KeypointsPath, len(keypoints.Keypoints))
			return nil
		},
	}
}
