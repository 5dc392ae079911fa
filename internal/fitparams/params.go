// internal/fitparams/params.go
// Package fitparams defines the two parameter files consumed by the
// downstream model-fitting pipeline: a table of scalar tuning constants
// (convergence tolerances, regularization coefficients, arena geometry) and
// a keypoint table mapping tracked marker names to display colors, initial
// offsets and source bodies. This tool only authors and validates them; the
// optimizer that reads them lives elsewhere.
package fitparams

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// FitParams is the scalar tuning table.
type FitParams struct {
	// Convergence tolerances for the three optimization phases.
	FTol     float64 `yaml:"ftol"`
	RootFTol float64 `yaml:"root_ftol"`
	LimbFTol float64 `yaml:"limb_ftol"`
	// DiffStep is the finite-difference step used by the optimizer.
	DiffStep float64 `yaml:"diff_step"`
	// Alpha weights the per-segment scale regularization.
	Alpha           float64 `yaml:"alpha"`
	QRegCoef        float64 `yaml:"q_reg_coef"`
	MRegCoef        float64 `yaml:"m_reg_coef"`
	TemporalRegCoef float64 `yaml:"temporal_reg_coef"`
	// ZOffset lifts reference poses so feet rest on the floor plane, meters.
	ZOffset float64 `yaml:"z_offset"`
	// ArenaSize is the floor extent in meters (x, y).
	ArenaSize [2]float64 `yaml:"arena_size"`
	// NFitFrames caps how many frames the calibration phase consumes.
	NFitFrames int `yaml:"n_fit_frames"`
	// InferQvel toggles velocity inference from consecutive poses.
	InferQvel bool `yaml:"infer_qvel"`
	// ScaleFactor is the uniform ratio applied to the model before
	// per-segment correction.
	ScaleFactor float64 `yaml:"scale_factor"`
	// ModelPath and DataPath locate the rescaled model and the motion data.
	ModelPath string `yaml:"model_path"`
	DataPath  string `yaml:"data_path"`
}

// Keypoint describes one tracked marker.
type Keypoint struct {
	// Color is the RGB display color used by the viewer.
	Color [3]uint8 `yaml:"color"`
	// Offset is the initial offset of the marker from its body, meters.
	Offset [3]float64 `yaml:"offset"`
	// Body names the model body the marker is attached to.
	Body string `yaml:"body"`
}

// KeypointTable is the keypoint parameter file.
type KeypointTable struct {
	Keypoints map[string]Keypoint `yaml:"keypoints"`
}

// Validate rejects tuning tables the fitting pipeline cannot run with.
func (p FitParams) Validate() error {
	for _, tol := range []struct {
		name  string
		value float64
	}{
		{"ftol", p.FTol},
		{"root_ftol", p.RootFTol},
		{"limb_ftol", p.LimbFTol},
		{"diff_step", p.DiffStep},
	} {
		if tol.value <= 0 {
			return fmt.Errorf("%s must be positive, got %g", tol.name, tol.value)
		}
	}
	for _, coef := range []struct {
		name  string
		value float64
	}{
		{"alpha", p.Alpha},
		{"q_reg_coef", p.QRegCoef},
		{"m_reg_coef", p.MRegCoef},
		{"temporal_reg_coef", p.TemporalRegCoef},
	} {
		if coef.value < 0 || math.IsNaN(coef.value) {
			return fmt.Errorf("%s must be non-negative, got %g", coef.name, coef.value)
		}
	}
	if p.ArenaSize[0] <= 0 || p.ArenaSize[1] <= 0 {
		return fmt.Errorf("arena_size must be positive in both extents, got %v", p.ArenaSize)
	}
	if p.NFitFrames < 0 {
		return fmt.Errorf("n_fit_frames must not be negative, got %d", p.NFitFrames)
	}
	if p.ScaleFactor <= 0 {
		return fmt.Errorf("scale_factor must be positive, got %g", p.ScaleFactor)
	}
	return nil
}

// Validate rejects malformed keypoint tables.
func (k KeypointTable) Validate() error {
	if len(k.Keypoints) == 0 {
		return fmt.Errorf("keypoint table is empty")
	}
	names := make([]string, 0, len(k.Keypoints))
	for name := range k.Keypoints {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kp := k.Keypoints[name]
		if name == "" {
			return fmt.Errorf("keypoint with empty name")
		}
		if kp.Body == "" {
			return fmt.Errorf("keypoint %q: source body must be named", name)
		}
		for _, c := range kp.Offset {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("keypoint %q: offset must be finite, got %v", name, kp.Offset)
			}
		}
	}
	return nil
}

// LoadFitParams reads and validates a tuning table.
func LoadFitParams(path string) (FitParams, error) {
	var p FitParams
	if err := loadYAML(path, &p); err != nil {
		return p, err
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadKeypoints reads and validates a keypoint table.
func LoadKeypoints(path string) (KeypointTable, error) {
	var k KeypointTable
	if err := loadYAML(path, &k); err != nil {
		return k, err
	}
	if err := k.Validate(); err != nil {
		return k, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// WriteFile serializes the tuning table.
func (p FitParams) WriteFile(path string) error {
	return writeYAML(path, p)
}

// WriteFile serializes the keypoint table.
func (k KeypointTable) WriteFile(path string) error {
	return writeYAML(path, k)
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeYAML(path string, in any) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
