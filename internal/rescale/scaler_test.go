// internal/rescale/scaler_test.go
package rescale

import (
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kinemorph/skelscale-cli/internal/kinematics"
	"github.com/kinemorph/skelscale-cli/internal/mjcf"
)

// geomSize returns the first size component of a named geom.
func geomSize(t *testing.T, doc *mjcf.Document, name string) float64 {
	t.Helper()
	var size float64
	found := false
	err := doc.EachElement(func(el *etree.Element) error {
		if el.Tag == "geom" && el.SelectAttrValue("name", "") == name {
			vals, ok, perr := mjcf.ParseVec(el, "size")
			if perr != nil {
				return perr
			}
			require.True(t, ok)
			size = vals[0]
			found = true
		}
		return nil
	})
	require.NoError(t, err)
	require.True(t, found, "geom %s not found", name)
	return size
}

// testSegments mirrors the default rodent segment table: literature lengths
// in mm, landmark site pairs, and the part substrings whose local offsets
// compose each bone vector.
func testSegments() []Segment {
	return []Segment{
		{Name: "humerus", TargetMM: 30.0, Proximal: "shoulder_L", Distal: "elbow_L", Parts: []string{"radius"}},
		{Name: "radius", TargetMM: 29.6, Proximal: "elbow_L", Distal: "wrist_L", Parts: []string{"hand", "wrist"}, Exclude: []string{"hand_collision"}},
		{Name: "hand", TargetMM: 10.0, Proximal: "wrist_L", Distal: "finger_tip_L", Parts: []string{"finger", "hand_collision"}},
		{Name: "femur", TargetMM: 36.5, Proximal: "hip_L", Distal: "knee_L", Parts: []string{"tibia", "knee"}},
		{Name: "tibia", TargetMM: 42.8, Proximal: "knee_L", Distal: "ankle_L", Parts: []string{"foot", "ankle"}},
		{Name: "metatarsal", TargetMM: 23.4, Proximal: "ankle_L", Distal: "toe_tip_L", Parts: []string{"toe"}},
	}
}

func loadFixture(t *testing.T) *mjcf.Document {
	t.Helper()
	doc, err := mjcf.Load(filepath.Join("testdata", "rodent.xml"))
	require.NoError(t, err)
	return doc
}

func newTestScaler(t *testing.T, doc *mjcf.Document) *Scaler {
	t.Helper()
	s, err := NewScaler(doc, testSegments(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestRunMatchesLiteratureLengths(t *testing.T) {
	doc := loadFixture(t)
	scaler := newTestScaler(t, doc)

	report, err := scaler.Run(1.13, []string{"eye"})
	require.NoError(t, err)

	resolver := kinematics.NewResolver(doc)
	for _, seg := range testSegments() {
		d, err := resolver.SiteDistance(seg.Proximal, seg.Distal)
		require.NoError(t, err, "segment %s", seg.Name)
		assert.InDelta(t, seg.TargetMeters(), d, 1e-12,
			"segment %s must match its literature length", seg.Name)
	}

	assert.Len(t, report.Segments, 6)
	assert.Less(t, report.MaxResidualMM, 1e-9)
	assert.Less(t, report.MeanResidualMM, 1e-9)
	assert.Equal(t, "rodent", report.Model)
	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err, "run ID must be a valid uuid")
}

func TestRunRecordsPerSegmentRatios(t *testing.T) {
	doc := loadFixture(t)
	scaler := newTestScaler(t, doc)

	const global = 1.5
	report, err := scaler.Run(global, nil)
	require.NoError(t, err)

	// The fixture's humerus (shoulder to elbow) is 28 mm before any scaling.
	var humerus *SegmentResult
	for i := range report.Segments {
		if report.Segments[i].Name == "humerus" {
			humerus = &report.Segments[i]
		}
	}
	require.NotNil(t, humerus)
	assert.InDelta(t, 28.0*global, humerus.MeasuredMM, 1e-9)
	assert.InDelta(t, 30.0/(0.028*global*1000), humerus.Ratio, 1e-12)
	assert.InDelta(t, 30.0, humerus.RescaledMM, 1e-9)
}

func TestGlobalScaleSkipsEyes(t *testing.T) {
	doc := loadFixture(t)
	scaler := newTestScaler(t, doc)

	_, err := scaler.GlobalScale(2.0, []string{"eye"})
	require.NoError(t, err)

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), `<geom name="eye_L" type="sphere" size="0.002" pos="0.01 0.008 0"/>`)
}

func TestExclusionPreventsDoubleScaling(t *testing.T) {
	doc := loadFixture(t)
	scaler := newTestScaler(t, doc)

	report, err := scaler.Run(1.0, []string{"eye"})
	require.NoError(t, err)

	var handRatio float64
	for _, r := range report.Segments {
		if r.Name == "hand" {
			handRatio = r.Ratio
		}
	}
	require.NotZero(t, handRatio)

	// The hand collision geom is excluded from the radius pass, so its size
	// carries exactly one correction: the hand segment's ratio.
	collisionSize := geomSize(t, doc, "hand_collision_L")
	assert.InDelta(t, 0.005*handRatio, collisionSize, 1e-12)
}

func TestApplySegmentsErrors(t *testing.T) {
	t.Run("degenerate segment length", func(t *testing.T) {
		doc, err := mjcf.Parse([]byte(`<mujoco model="m">
  <worldbody>
    <body name="b" pos="0 0 0">
      <site name="a_site" pos="0 0 0"/>
      <site name="b_site" pos="0 0 0"/>
      <body name="part_x" pos="0 0 0.1"/>
    </body>
  </worldbody>
</mujoco>`))
		require.NoError(t, err)
		s, err := NewScaler(doc, []Segment{
			{Name: "seg", TargetMM: 10, Proximal: "a_site", Distal: "b_site", Parts: []string{"part"}},
		}, nil)
		require.NoError(t, err)
		_, err = s.ApplySegments()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "degenerate")
	})

	t.Run("missing landmark site", func(t *testing.T) {
		doc := loadFixture(t)
		s, err := NewScaler(doc, []Segment{
			{Name: "seg", TargetMM: 10, Proximal: "shoulder_L", Distal: "no_such_site", Parts: []string{"hand"}},
		}, nil)
		require.NoError(t, err)
		_, err = s.ApplySegments()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no_such_site")
	})

	t.Run("no matching parts", func(t *testing.T) {
		doc := loadFixture(t)
		s, err := NewScaler(doc, []Segment{
			{Name: "seg", TargetMM: 10, Proximal: "shoulder_L", Distal: "elbow_L", Parts: []string{"wing"}},
		}, nil)
		require.NoError(t, err)
		_, err = s.ApplySegments()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no model parts matched")
	})
}

func TestValidateSegments(t *testing.T) {
	valid := Segment{Name: "s", TargetMM: 1, Proximal: "a", Distal: "b", Parts: []string{"p"}}

	cases := []struct {
		name string
		segs []Segment
	}{
		{"empty name", []Segment{{TargetMM: 1, Proximal: "a", Distal: "b", Parts: []string{"p"}}}},
		{"non-positive target", []Segment{{Name: "s", TargetMM: 0, Proximal: "a", Distal: "b", Parts: []string{"p"}}}},
		{"missing landmark", []Segment{{Name: "s", TargetMM: 1, Distal: "b", Parts: []string{"p"}}}},
		{"identical landmarks", []Segment{{Name: "s", TargetMM: 1, Proximal: "a", Distal: "a", Parts: []string{"p"}}}},
		{"no parts", []Segment{{Name: "s", TargetMM: 1, Proximal: "a", Distal: "b"}}},
		{"duplicate names", []Segment{valid, valid}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateSegments(tc.segs))
		})
	}

	assert.NoError(t, ValidateSegments([]Segment{valid}))
	assert.NoError(t, ValidateSegments(testSegments()))
}

func TestReportWriteFile(t *testing.T) {
	doc := loadFixture(t)
	scaler := newTestScaler(t, doc)
	report, err := scaler.Run(1.0, []string{"eye"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, stdjson.Unmarshal(data, &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Len(t, decoded.Segments, 6)
	assert.Equal(t, "rodent", decoded.Model)
}
