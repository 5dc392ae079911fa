// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/kinemorph/skelscale-cli/internal/rescale"
)

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Rescale  RescaleConfig   `mapstructure:"rescale" yaml:"rescale"`
	Segments []SegmentConfig `mapstructure:"segments" yaml:"segments"`
	Viewer   ViewerConfig    `mapstructure:"viewer" yaml:"viewer"`
	Batch    BatchConfig     `mapstructure:"batch" yaml:"batch"`
	Fit      FitConfig       `mapstructure:"fit" yaml:"fit"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the terminal color names for each log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
	Fatal string `mapstructure:"fatal" yaml:"fatal"`
}

// RescaleConfig tunes the rescaling pipeline itself.
type RescaleConfig struct {
	// GlobalRatio is the uniform scale applied to all positions before the
	// per-segment correction.
	GlobalRatio float64 `mapstructure:"global_ratio" yaml:"global_ratio"`
	// SkipParts lists name substrings exempt from the global pass.
	SkipParts []string `mapstructure:"skip_parts" yaml:"skip_parts"`
	// MeshRenameFrom/To perform the cosmetic substring substitution on mesh
	// asset filenames when the rescaled model is written.
	MeshRenameFrom string `mapstructure:"mesh_rename_from" yaml:"mesh_rename_from"`
	MeshRenameTo   string `mapstructure:"mesh_rename_to" yaml:"mesh_rename_to"`
	// OutputSuffix derives the default output path from the input path.
	OutputSuffix string `mapstructure:"output_suffix" yaml:"output_suffix"`
}

// SegmentConfig is the configurable form of one bone segment.
type SegmentConfig struct {
	Name     string   `mapstructure:"name" yaml:"name"`
	TargetMM float64  `mapstructure:"target_mm" yaml:"target_mm"`
	Proximal string   `mapstructure:"proximal" yaml:"proximal"`
	Distal   string   `mapstructure:"distal" yaml:"distal"`
	Parts    []string `mapstructure:"parts" yaml:"parts"`
	Exclude  []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
}

// ViewerConfig describes the external interactive viewer hand-off.
type ViewerConfig struct {
	Command string        `mapstructure:"command" yaml:"command"`
	Args    []string      `mapstructure:"args" yaml:"args"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// BatchConfig tunes concurrent processing of multiple models.
type BatchConfig struct {
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
}

// FitConfig locates the fitting-pipeline parameter files.
type FitConfig struct {
	ParamsPath    string `mapstructure:"params_path" yaml:"params_path"`
	KeypointsPath string `mapstructure:"keypoints_path" yaml:"keypoints_path"`
}

// Load unmarshals the full configuration from viper on top of the defaults.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate applies the cross-field checks viper cannot express.
func (c *Config) Validate() error {
	if c.Rescale.GlobalRatio <= 0 {
		return fmt.Errorf("rescale.global_ratio must be positive, got %g", c.Rescale.GlobalRatio)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	return rescale.ValidateSegments(c.RescaleSegments())
}

// RescaleSegments converts the configured segment table into the form the
// rescale package consumes.
func (c *Config) RescaleSegments() []rescale.Segment {
	segments := make([]rescale.Segment, len(c.Segments))
	for i, s := range c.Segments {
		segments[i] = rescale.Segment{
			Name:     s.Name,
			TargetMM: s.TargetMM,
			Proximal: s.Proximal,
			Distal:   s.Distal,
			Parts:    s.Parts,
			Exclude:  s.Exclude,
		}
	}
	return segments
}
