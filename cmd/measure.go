// File: cmd/measure.go
package cmd

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kinemorph/skelscale-cli/internal/mjcf"
	"github.com/kinemorph/skelscale-cli/internal/observability"
	"github.com/kinemorph/skelscale-cli/internal/rescale"
)

// newMeasureCmd creates the `measure` command: report landmark distances
// against the literature targets without touching the model.
func newMeasureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "measure <model.xml>",
		Short: "Measures bone segment lengths without modifying the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			cfg := appCfg

			doc, err := mjcf.Load(args[0])
			if err != nil {
				return err
			}
			scaler, err := rescale.NewScaler(doc, cfg.RescaleSegments(), logger)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SEGMENT\tMEASURED (mm)\tTARGET (mm)\tRESIDUAL (mm)")
			for _, seg := range cfg.RescaleSegments() {
				d, err := scaler.Measure(seg)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4g\n",
					seg.Name, d*1000, seg.TargetMM, math.Abs(d*1000-seg.TargetMM))
			}
			return w.Flush()
		},
	}
}
