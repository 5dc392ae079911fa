// internal/rescale/scaler.go
package rescale

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/kinemorph/skelscale-cli/internal/kinematics"
	"github.com/kinemorph/skelscale-cli/internal/mjcf"
)

// Scaler runs the rescaling procedure against a single in-memory model.
type Scaler struct {
	doc      *mjcf.Document
	resolver *kinematics.Resolver
	segments []Segment
	logger   *zap.Logger
}

// NewScaler builds a scaler. The segment table is validated up front so a
// bad configuration fails before the model is touched.
func NewScaler(doc *mjcf.Document, segments []Segment, logger *zap.Logger) (*Scaler, error) {
	if err := ValidateSegments(segments); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scaler{
		doc:      doc,
		resolver: kinematics.NewResolver(doc),
		segments: segments,
		logger:   logger.Named("rescale"),
	}, nil
}

// GlobalScale applies one uniform ratio to every position field in the
// model, skipping elements whose names contain a skip substring (eye parts
// keep their fine local placement). Returns the number of elements scaled.
func (s *Scaler) GlobalScale(ratio float64, skip []string) (int, error) {
	n, err := s.doc.ScalePositions(ratio, skip)
	if err != nil {
		return n, fmt.Errorf("global scale pass failed: %w", err)
	}
	s.logger.Info("Applied global scale ratio",
		zap.Float64("ratio", ratio),
		zap.Int("elements", n),
		zap.Strings("skipped_parts", skip),
	)
	return n, nil
}

// Measure returns the current simulated length of a segment in meters.
func (s *Scaler) Measure(seg Segment) (float64, error) {
	d, err := s.resolver.SiteDistance(seg.Proximal, seg.Distal)
	if err != nil {
		return 0, fmt.Errorf("segment %q: %w", seg.Name, err)
	}
	return d, nil
}

// ApplySegments measures each segment in order, derives its correction
// ratio against the literature target, and scales the segment's parts. The
// returned results carry the pre-correction lengths and applied ratios;
// Verify fills in the rest.
func (s *Scaler) ApplySegments() ([]SegmentResult, error) {
	results := make([]SegmentResult, 0, len(s.segments))
	for _, seg := range s.segments {
		current, err := s.Measure(seg)
		if err != nil {
			return nil, err
		}
		if current < minMeasurableLength {
			return nil, fmt.Errorf("segment %q: measured length %g m is degenerate, cannot derive scale ratio", seg.Name, current)
		}

		ratio := seg.TargetMeters() / current
		n, err := s.doc.ScaleMatching(ratio, seg.Parts, seg.Exclude)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", seg.Name, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("segment %q: no model parts matched %v", seg.Name, seg.Parts)
		}

		s.logger.Info("Rescaled segment",
			zap.String("segment", seg.Name),
			zap.Float64("measured_mm", current*1000),
			zap.Float64("target_mm", seg.TargetMM),
			zap.Float64("ratio", ratio),
			zap.Int("elements", n),
		)

		results = append(results, SegmentResult{
			Name:       seg.Name,
			TargetMM:   seg.TargetMM,
			MeasuredMM: current * 1000,
			Ratio:      ratio,
			Elements:   n,
		})
	}
	return results, nil
}

// Verify re-measures every segment and records the residual error against
// its target. On success each residual is at floating-point-level zero.
func (s *Scaler) Verify(results []SegmentResult) error {
	byName := make(map[string]Segment, len(s.segments))
	for _, seg := range s.segments {
		byName[seg.Name] = seg
	}
	for i := range results {
		seg, ok := byName[results[i].Name]
		if !ok {
			return fmt.Errorf("result for unknown segment %q", results[i].Name)
		}
		after, err := s.Measure(seg)
		if err != nil {
			return err
		}
		results[i].RescaledMM = after * 1000
		results[i].ResidualMM = math.Abs(after*1000 - seg.TargetMM)

		s.logger.Info("Verified segment length",
			zap.String("segment", seg.Name),
			zap.Float64("rescaled_mm", results[i].RescaledMM),
			zap.Float64("residual_mm", results[i].ResidualMM),
		)
	}
	return nil
}

// minMeasurableLength guards the ratio division: a landmark pair closer
// than a nanometer carries no usable length information.
const minMeasurableLength = 1e-9
