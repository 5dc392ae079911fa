// File: cmd/root_test.go
package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_VersionFlag tests if the --version flag works correctly.
func TestRootCmd_VersionFlag(t *testing.T) {
	// Disable the config bootstrap; the version template needs none of it.
	savedPreRun := rootCmd.PersistentPreRunE
	rootCmd.PersistentPreRunE = nil
	defer func() {
		rootCmd.PersistentPreRunE = savedPreRun
		// Reset the auto-generated version flag so it does not leak into
		// later tests that execute the shared rootCmd.
		if f := rootCmd.Flags().Lookup("version"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--version"})

	err := rootCmd.ExecuteContext(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out.String())
}

// TestRootCmd_NoArgs tests the behavior when no arguments are provided.
func TestRootCmd_NoArgs(t *testing.T) {
	savedPreRun := rootCmd.PersistentPreRunE
	rootCmd.PersistentPreRunE = nil
	defer func() { rootCmd.PersistentPreRunE = savedPreRun }()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{})

	err := rootCmd.ExecuteContext(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "skelscale")
	assert.Contains(t, out.String(), "rescale")
}
