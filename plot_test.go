package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rwcarlsen/barfem/bar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePlots(t *testing.T) {
	res, err := bar.Run(defaultConfig())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "plots")
	require.NoError(t, writePlots(dir, res))
	for _, name := range plotFiles {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestSolve_PlotDir(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runCmd(t, "solve", "--plot-dir", dir, "--elements", "3")
	require.Equal(t, exitOK, code, stderr)
	for _, name := range plotFiles {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}
