// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinemorph/skelscale-cli/internal/config"
	"github.com/kinemorph/skelscale-cli/internal/rescale"
)

// writeTestModel copies the rodent fixture into a temp dir so each test can
// feed the commands a disposable input file.
func writeTestModel(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "internal", "rescale", "testdata", "rodent.xml"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "rodent.xml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// executeCommand runs a freshly constructed subcommand against the default
// configuration, bypassing the root command's config bootstrap. Each call
// resets the shared viper state so flag bindings do not leak between tests.
func executeCommand(t *testing.T, newCmd func() *cobra.Command, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	appCfg = config.Default()

	c := newCmd()
	buf := new(bytes.Buffer)
	c.SetOut(buf)
	c.SetErr(buf)
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRescaleCmd_RequiredArgs(t *testing.T) {
	output, err := executeCommand(t, newRescaleCmd)
	require.Error(t, err)
	assert.Contains(t, output, "accepts 1 arg(s), received 0")
}

func TestRescaleCmd_WritesScaledModelAndReport(t *testing.T) {
	modelPath := writeTestModel(t)
	outPath := filepath.Join(filepath.Dir(modelPath), "rodent_scaled.xml")
	reportPath := filepath.Join(filepath.Dir(modelPath), "report.json")

	output, err := executeCommand(t, newRescaleCmd,
		modelPath, "-o", outPath, "-r", reportPath)
	require.NoError(t, err)
	assert.Contains(t, output, "Rescaled")

	scaled, err := os.ReadFile(outPath)
	require.NoError(t, err)
	// The mesh asset reference follows the rescaled model.
	assert.Contains(t, string(scaled), "rat_skull_scaled.stl")
	assert.NotContains(t, string(scaled), "rat_skull_v1.stl")

	reportData, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report rescale.Report
	require.NoError(t, json.Unmarshal(reportData, &report))
	assert.NotEmpty(t, report.RunID)
	assert.Len(t, report.Segments, 6)
	assert.Less(t, report.MaxResidualMM, 1e-9)
}

func TestRescaleCmd_DefaultOutputPath(t *testing.T) {
	modelPath := writeTestModel(t)

	_, err := executeCommand(t, newRescaleCmd, modelPath)
	require.NoError(t, err)

	wantOut := filepath.Join(filepath.Dir(modelPath), "rodent_scaled.xml")
	_, err = os.Stat(wantOut)
	assert.NoError(t, err, "scaled model should land next to the input with the configured suffix")
}

func TestMeasureCmd_ReportsAllSegments(t *testing.T) {
	modelPath := writeTestModel(t)

	output, err := executeCommand(t, newMeasureCmd, modelPath)
	require.NoError(t, err)

	assert.Contains(t, output, "SEGMENT")
	for _, name := range []string{"humerus", "radius", "hand", "femur", "tibia", "metatarsal"} {
		assert.Contains(t, output, name)
	}
}

func TestMeasureCmd_MissingModel(t *testing.T) {
	_, err := executeCommand(t, newMeasureCmd, filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)
}

func TestBatchCmd_RescalesAllInputs(t *testing.T) {
	modelA := writeTestModel(t)
	modelB := writeTestModel(t)

	output, err := executeCommand(t, newBatchCmd, modelA, modelB)
	require.NoError(t, err)
	assert.Contains(t, output, "Batch complete: 2 models rescaled.")

	for _, in := range []string{modelA, modelB} {
		out := filepath.Join(filepath.Dir(in), "rodent_scaled.xml")
		_, err := os.Stat(out)
		assert.NoError(t, err)
	}
}

func TestParamsInitAndValidate(t *testing.T) {
	dir := t.TempDir()

	output, err := executeCommand(t, newParamsCmd, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote")

	// Point the validate pass at the files init just produced.
	viper.Reset()
	cfg := config.Default()
	cfg.Fit.ParamsPath = filepath.Join(dir, "fit.yaml")
	cfg.Fit.KeypointsPath = filepath.Join(dir, "keypoints.yaml")
	appCfg = cfg

	c := newParamsCmd()
	buf := new(bytes.Buffer)
	c.SetOut(buf)
	c.SetErr(buf)
	c.SetArgs([]string{"validate"})
	require.NoError(t, c.ExecuteContext(context.Background()))
	assert.Contains(t, buf.String(), "20 keypoints")
	assert.Contains(t, buf.String(), "scale factor 1.13")
}

func TestParamsValidate_MissingFiles(t *testing.T) {
	_, err := executeCommand(t, newParamsCmd, "validate")
	require.Error(t, err)
}

func TestExpandModelArgs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.xml", "b.xml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<mujoco/>"), 0o644))
	}

	models, err := expandModelArgs([]string{
		filepath.Join(dir, "*.xml"),
		filepath.Join(dir, "a.xml"), // duplicate of a glob match
		"missing.xml",               // literal path kept so the pipeline reports it
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.xml"),
		filepath.Join(dir, "b.xml"),
		"missing.xml",
	}, models)
}
