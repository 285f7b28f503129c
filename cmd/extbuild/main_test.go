package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		os.Args = originalArgs
		_ = os.Chdir(originalDir)
	}()

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{
			name:         "version exits zero",
			args:         []string{"extbuild", "version"},
			expectedExit: 0,
		},
		{
			name:         "build without a manifest exits non-zero",
			args:         []string{"extbuild", "build", "--config", "does_not_exist.yaml"},
			expectedExit: 1,
		},
		{
			name:         "unknown command exits non-zero",
			args:         []string{"extbuild", "frobnicate"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Run in a scratch directory so state files do not leak into
			// the working tree.
			require.NoError(t, os.Chdir(t.TempDir()))
			defer func() { _ = os.Chdir(originalDir) }()

			os.Args = tt.args
			require.Equal(t, tt.expectedExit, run())
		})
	}
}

func TestRun_StateFileLocation(t *testing.T) {
	// The clean command tolerates a missing state file.
	originalArgs := os.Args
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		os.Args = originalArgs
		_ = os.Chdir(originalDir)
	}()

	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))

	os.Args = []string{"extbuild", "clean"}
	require.Equal(t, 0, run())

	_, err = os.Stat(filepath.Join(dir, "extbuild_state.json"))
	require.True(t, os.IsNotExist(err))
}
