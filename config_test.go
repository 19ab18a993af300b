package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rwcarlsen/barfem/bar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "bar.yaml", `
length: 2
num_elements: 4
applied_force: 0
loads:
  - node: 2
    force: 300
supports:
  - node: 0
  - node: 4
    value: 0.001
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Length)
	assert.Equal(t, 4, cfg.NumElements)
	assert.Equal(t, 0.0, cfg.AppliedForce)
	// unset keys keep their defaults
	assert.Equal(t, 210e9, cfg.YoungModulus)
	assert.Equal(t, 0.01, cfg.Area)
	assert.Equal(t, []bar.PointLoad{{Node: 2, Force: 300}}, cfg.Loads)
	assert.Equal(t, []bar.Constraint{{Node: 0}, {Node: 4, Value: 0.001}}, cfg.Supports)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "bar.json", `{"length": 3, "young_modulus": 70e9, "cross_section_area": 0.002, "fixed_node_index": 0}`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Length)
	assert.Equal(t, 70e9, cfg.YoungModulus)
	assert.Equal(t, 0.002, cfg.Area)
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := loadConfig(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := loadConfig(writeFile(t, "typo.yaml", "lenght: 2\n"))
	assert.ErrorIs(t, err, bar.ErrInvalidConfig)

	_, err = loadConfig(writeFile(t, "bad.yaml", "length: [1, 2\n"))
	assert.ErrorIs(t, err, bar.ErrInvalidConfig)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, bar.ErrInvalidConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSolve_FlagsOverrideConfig(t *testing.T) {
	path := writeFile(t, "bar.yaml", "num_elements: 3\napplied_force: 2000\n")

	code, out, stderr := runCmd(t, "solve", "--config", path, "-o", "json")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, out, `"strain_energy"`)
	assert.Contains(t, out, `"index": 2`)
	assert.NotContains(t, out, `"index": 3`)

	code, out, stderr = runCmd(t, "solve", "--config", path, "--elements", "5", "-o", "json")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, out, `"index": 4`)
}

func TestSolve_DoublyClampedFromConfig(t *testing.T) {
	path := writeFile(t, "bar.yaml", `
applied_force: 0
loads: [{node: 5, force: 2000}]
supports: [{node: 0}, {node: 10}]
`)
	code, out, stderr := runCmd(t, "solve", "--config", path)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, out, "reaction at node 0:")
	assert.Contains(t, out, "reaction at node 10:")
	// no closed form comparison for this load case
	assert.NotContains(t, out, "tip displacement:")
}
