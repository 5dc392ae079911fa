// internal/fitparams/defaults.go
package fitparams

// Default returns the tuning table shipped for the rodent pipeline. The
// tolerances and regularization weights are the values the fitting runs
// converge well with; the arena matches the 10x10 m open floor the motion
// data was collected on.
func Default() FitParams {
	return FitParams{
		FTol:            5e-03,
		RootFTol:        1e-05,
		LimbFTol:        1e-06,
		DiffStep:        3e-08,
		Alpha:           1e-03,
		QRegCoef:        0.0,
		MRegCoef:        0.9,
		TemporalRegCoef: 0.2,
		ZOffset:         0.013,
		ArenaSize:       [2]float64{10.0, 10.0},
		NFitFrames:      1000,
		InferQvel:       true,
		ScaleFactor:     1.13,
		ModelPath:       "models/rodent_scaled.xml",
		DataPath:        "data/mocap.mat",
	}
}

// DefaultKeypoints returns the keypoint table for the standard 20-marker
// rodent arrangement: spine and head markers plus bilateral limb markers.
func DefaultKeypoints() KeypointTable {
	return KeypointTable{Keypoints: map[string]Keypoint{
		"HeadF":     {Color: [3]uint8{255, 0, 0}, Offset: [3]float64{0.01, 0, 0.01}, Body: "skull"},
		"HeadB":     {Color: [3]uint8{204, 0, 0}, Offset: [3]float64{-0.01, 0, 0.01}, Body: "skull"},
		"HeadL":     {Color: [3]uint8{153, 0, 0}, Offset: [3]float64{0, 0.01, 0.01}, Body: "skull"},
		"SpineF":    {Color: [3]uint8{0, 255, 0}, Offset: [3]float64{0, 0, 0.02}, Body: "vertebra_cervical_5"},
		"SpineM":    {Color: [3]uint8{0, 204, 0}, Offset: [3]float64{0, 0, 0.02}, Body: "vertebra_thoracic_6"},
		"SpineL":    {Color: [3]uint8{0, 153, 0}, Offset: [3]float64{0, 0, 0.02}, Body: "vertebra_lumbar_3"},
		"Offset1":   {Color: [3]uint8{0, 255, 255}, Offset: [3]float64{0.015, 0.01, 0.01}, Body: "torso"},
		"Offset2":   {Color: [3]uint8{0, 204, 204}, Offset: [3]float64{-0.015, -0.01, 0.01}, Body: "torso"},
		"ShoulderL": {Color: [3]uint8{0, 0, 255}, Offset: [3]float64{0, 0.005, 0}, Body: "humerus_L"},
		"ShoulderR": {Color: [3]uint8{0, 0, 204}, Offset: [3]float64{0, -0.005, 0}, Body: "humerus_R"},
		"ElbowL":    {Color: [3]uint8{51, 51, 255}, Offset: [3]float64{0, 0.003, 0}, Body: "radius_L"},
		"ElbowR":    {Color: [3]uint8{51, 51, 204}, Offset: [3]float64{0, -0.003, 0}, Body: "radius_R"},
		"ArmL":      {Color: [3]uint8{102, 102, 255}, Offset: [3]float64{0, 0.002, 0}, Body: "hand_L"},
		"ArmR":      {Color: [3]uint8{102, 102, 204}, Offset: [3]float64{0, -0.002, 0}, Body: "hand_R"},
		"HipL":      {Color: [3]uint8{255, 0, 255}, Offset: [3]float64{0, 0.008, 0.005}, Body: "femur_L"},
		"HipR":      {Color: [3]uint8{204, 0, 204}, Offset: [3]float64{0, -0.008, 0.005}, Body: "femur_R"},
		"KneeL":     {Color: [3]uint8{255, 51, 255}, Offset: [3]float64{0, 0.004, 0}, Body: "tibia_L"},
		"KneeR":     {Color: [3]uint8{204, 51, 204}, Offset: [3]float64{0, -0.004, 0}, Body: "tibia_R"},
		"ShinL":     {Color: [3]uint8{255, 102, 255}, Offset: [3]float64{0, 0.003, 0}, Body: "foot_L"},
		"ShinR":     {Color: [3]uint8{204, 102, 204}, Offset: [3]float64{0, -0.003, 0}, Body: "foot_R"},
	}}
}
