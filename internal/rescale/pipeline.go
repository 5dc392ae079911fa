// internal/rescale/pipeline.go
package rescale

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kinemorph/skelscale-cli/internal/mjcf"
)

// Options bundles everything one rescale run needs beyond the input model.
type Options struct {
	// GlobalRatio is the uniform pre-scale applied to all positions.
	GlobalRatio float64
	// SkipParts exempts matching element names from the global pass.
	SkipParts []string
	// MeshRenameFrom/To rewrite mesh asset filenames on output.
	MeshRenameFrom string
	MeshRenameTo   string
	// Segments is the bone segment table.
	Segments []Segment
}

// ProcessFile runs the full procedure on one model file: load, global
// scale, per-segment correction, verification, mesh rename, write. The
// report describes the run; the rescaled model lands at outPath.
func ProcessFile(inPath, outPath string, opts Options, logger *zap.Logger) (*Report, error) {
	doc, err := mjcf.Load(inPath)
	if err != nil {
		return nil, err
	}

	scaler, err := NewScaler(doc, opts.Segments, logger)
	if err != nil {
		return nil, err
	}
	report, err := scaler.Run(opts.GlobalRatio, opts.SkipParts)
	if err != nil {
		return nil, fmt.Errorf("rescale of %s failed: %w", inPath, err)
	}

	if n := doc.SubstituteMeshFile(opts.MeshRenameFrom, opts.MeshRenameTo); n > 0 {
		scaler.logger.Info("Renamed mesh assets",
			zap.Int("meshes", n),
			zap.String("from", opts.MeshRenameFrom),
			zap.String("to", opts.MeshRenameTo),
		)
	}

	if err := doc.Save(outPath); err != nil {
		return nil, err
	}
	report.Output = outPath
	return report, nil
}

// OutputPath derives the default output path for a model by appending
// suffix to its basename: models/rat.xml -> models/rat_scaled.xml.
func OutputPath(inPath, suffix string) string {
	ext := filepath.Ext(inPath)
	base := strings.TrimSuffix(inPath, ext)
	return base + suffix + ext
}
