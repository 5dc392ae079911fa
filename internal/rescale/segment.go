// internal/rescale/segment.go
// Package rescale adjusts an MJCF skeletal model so that configured bone
// segments match literature-measured lengths. A segment is measured as the
// Euclidean distance between two landmark sites; the correction multiplies
// the positions and sizes of every named part belonging to that segment.
package rescale

import (
	"fmt"
)

// Segment describes one bone segment to rescale.
type Segment struct {
	// Name identifies the segment in logs and reports (e.g. "humerus").
	Name string
	// TargetMM is the literature-measured bone length in millimeters.
	TargetMM float64
	// Proximal and Distal are the exact names of the landmark sites whose
	// simulated distance approximates the bone.
	Proximal string
	Distal   string
	// Parts are name substrings selecting the bodies, geoms and sites whose
	// local offsets compose the proximal-to-distal vector. In a nested MJCF
	// tree a bone's extent is stored on its distal children, so these
	// substrings routinely name the next segment down the chain.
	Parts []string
	// Exclude removes matches that belong to another segment's pass, e.g.
	// hand collision geoms are excluded from the radius pass so they are not
	// scaled twice.
	Exclude []string
}

// TargetMeters converts the literature length to model units.
func (s Segment) TargetMeters() float64 {
	return s.TargetMM / 1000.0
}

// Validate rejects segments the pipeline cannot act on.
func (s Segment) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("segment has no name")
	}
	if s.TargetMM <= 0 {
		return fmt.Errorf("segment %q: target length must be positive, got %g mm", s.Name, s.TargetMM)
	}
	if s.Proximal == "" || s.Distal == "" {
		return fmt.Errorf("segment %q: both landmark sites must be named", s.Name)
	}
	if s.Proximal == s.Distal {
		return fmt.Errorf("segment %q: proximal and distal landmarks are identical (%s)", s.Name, s.Proximal)
	}
	if len(s.Parts) == 0 {
		return fmt.Errorf("segment %q: no part substrings configured", s.Name)
	}
	return nil
}

// ValidateSegments validates a whole table and rejects duplicate names.
func ValidateSegments(segments []Segment) error {
	seen := make(map[string]bool, len(segments))
	for _, seg := range segments {
		if err := seg.Validate(); err != nil {
			return err
		}
		if seen[seg.Name] {
			return fmt.Errorf("duplicate segment %q", seg.Name)
		}
		seen[seg.Name] = true
	}
	return nil
}
