// File: internal/config/defaults.go
package config

// Default returns the configuration used when no config file overrides it.
// The segment table carries the literature-measured rodent bone lengths and
// the part substrings whose local offsets compose each bone vector. In the
// nested model tree a bone's extent is stored on its distal children, which
// is why the humerus entry scales radius-named parts, and why the radius
// entry scales hand-named parts while excluding the hand collision geoms
// (those belong to the hand entry's own pass).
func Default() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "skelscale",
			MaxSize:     20,
			MaxBackups:  3,
			MaxAge:      14,
			Colors: ColorConfig{
				Debug: "cyan",
				Info:  "green",
				Warn:  "yellow",
				Error: "red",
				Fatal: "magenta",
			},
		},
		Rescale: RescaleConfig{
			GlobalRatio:    1.13,
			SkipParts:      []string{"eye"},
			MeshRenameFrom: "_v1",
			MeshRenameTo:   "_scaled",
			OutputSuffix:   "_scaled",
		},
		Segments: []SegmentConfig{
			{Name: "humerus", TargetMM: 30.0, Proximal: "shoulder_L", Distal: "elbow_L",
				Parts: []string{"radius"}},
			{Name: "radius", TargetMM: 29.6, Proximal: "elbow_L", Distal: "wrist_L",
				Parts: []string{"hand", "wrist"}, Exclude: []string{"hand_collision"}},
			{Name: "hand", TargetMM: 10.0, Proximal: "wrist_L", Distal: "finger_tip_L",
				Parts: []string{"finger", "hand_collision"}},
			{Name: "femur", TargetMM: 36.5, Proximal: "hip_L", Distal: "knee_L",
				Parts: []string{"tibia", "knee"}},
			{Name: "tibia", TargetMM: 42.8, Proximal: "knee_L", Distal: "ankle_L",
				Parts: []string{"foot", "ankle"}},
			{Name: "metatarsal", TargetMM: 23.4, Proximal: "ankle_L", Distal: "toe_tip_L",
				Parts: []string{"toe"}},
		},
		Viewer: ViewerConfig{
			Command: "simulate",
			Timeout: 0, // run until the viewer is closed
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Fit: FitConfig{
			ParamsPath:    "configs/fit.yaml",
			KeypointsPath: "configs/keypoints.yaml",
		},
	}
}
