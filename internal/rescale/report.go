// internal/rescale/report.go
package rescale

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SegmentResult records the before/after state of one segment.
type SegmentResult struct {
	Name       string  `json:"name"`
	TargetMM   float64 `json:"target_mm"`
	MeasuredMM float64 `json:"measured_mm"`
	Ratio      float64 `json:"ratio"`
	RescaledMM float64 `json:"rescaled_mm"`
	ResidualMM float64 `json:"residual_mm"`
	Elements   int     `json:"elements_scaled"`
}

// Report is the serialized record of one rescale run.
type Report struct {
	RunID          string          `json:"run_id"`
	Model          string          `json:"model"`
	Output         string          `json:"output,omitempty"`
	GlobalRatio    float64         `json:"global_ratio"`
	GlobalElements int             `json:"global_elements_scaled"`
	Segments       []SegmentResult `json:"segments"`
	MaxResidualMM  float64         `json:"max_residual_mm"`
	MeanResidualMM float64         `json:"mean_residual_mm"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// Run executes the full procedure: global scale, per-segment correction,
// verification. The document is mutated in place; serialization is the
// caller's business.
func (s *Scaler) Run(globalRatio float64, skip []string) (*Report, error) {
	report := &Report{
		RunID:       uuid.New().String(),
		Model:       s.doc.Model(),
		GlobalRatio: globalRatio,
		GeneratedAt: time.Now().UTC(),
	}
	s.logger.Info("Starting rescale run",
		zap.String("run_id", report.RunID),
		zap.String("model", report.Model),
	)

	n, err := s.GlobalScale(globalRatio, skip)
	if err != nil {
		return nil, err
	}
	report.GlobalElements = n

	results, err := s.ApplySegments()
	if err != nil {
		return nil, err
	}
	if err := s.Verify(results); err != nil {
		return nil, err
	}
	report.Segments = results
	report.MaxResidualMM, report.MeanResidualMM = residualStats(results)

	s.logger.Info("Rescale run complete",
		zap.String("run_id", report.RunID),
		zap.Float64("max_residual_mm", report.MaxResidualMM),
		zap.Float64("mean_residual_mm", report.MeanResidualMM),
	)
	return report, nil
}

// residualStats summarizes the verification residuals.
func residualStats(results []SegmentResult) (max, mean float64) {
	if len(results) == 0 {
		return 0, 0
	}
	residuals := make([]float64, len(results))
	for i, r := range results {
		residuals[i] = r.ResidualMM
	}
	return floats.Max(residuals), stat.Mean(residuals, nil)
}

// WriteFile persists the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
