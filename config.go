package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rwcarlsen/barfem/bar"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// defaultConfig is a 1 m steel bar with a 100 cm^2 section and a 1 kN tip
// load.
func defaultConfig() bar.Config {
	return bar.Config{
		Length:       1,
		YoungModulus: 210e9,
		Area:         0.01,
		NumElements:  10,
		AppliedForce: 1000,
		FixedNode:    0,
	}
}

// loadConfig decodes a YAML (or JSON) model file over the defaults.  Keys
// missing from the file keep their default value.
func loadConfig(path string) (bar.Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", bar.ErrInvalidConfig, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %v: %w", bar.ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// modelFlags binds the bar model parameters to command line flags.  Flags
// given explicitly take precedence over the config file.
type modelFlags struct {
	path string
	cfg  bar.Config
}

func (m *modelFlags) register(fs *pflag.FlagSet) {
	def := defaultConfig()
	fs.StringVarP(&m.path, "config", "c", "", "YAML or JSON model file")
	fs.Float64Var(&m.cfg.Length, "length", def.Length, "bar length (m)")
	fs.Float64Var(&m.cfg.YoungModulus, "young-modulus", def.YoungModulus, "Young's modulus E (Pa)")
	fs.Float64Var(&m.cfg.Area, "area", def.Area, "cross section area A (m^2)")
	fs.IntVarP(&m.cfg.NumElements, "elements", "n", def.NumElements, "number of elements")
	fs.Float64VarP(&m.cfg.AppliedForce, "force", "f", def.AppliedForce, "axial force at the free end (N)")
	fs.IntVar(&m.cfg.FixedNode, "fixed-node", def.FixedNode, "index of the clamped node")
}

// resolve merges defaults, the config file and explicitly set flags.
func (m *modelFlags) resolve(fs *pflag.FlagSet) (bar.Config, error) {
	cfg := defaultConfig()
	if m.path != "" {
		var err error
		if cfg, err = loadConfig(m.path); err != nil {
			return cfg, err
		}
	}

	overrides := map[string]func(){
		"length":        func() { cfg.Length = m.cfg.Length },
		"young-modulus": func() { cfg.YoungModulus = m.cfg.YoungModulus },
		"area":          func() { cfg.Area = m.cfg.Area },
		"elements":      func() { cfg.NumElements = m.cfg.NumElements },
		"force":         func() { cfg.AppliedForce = m.cfg.AppliedForce },
		"fixed-node":    func() { cfg.FixedNode = m.cfg.FixedNode },
	}
	fs.Visit(func(f *pflag.Flag) {
		if set, ok := overrides[f.Name]; ok {
			set()
		}
	})
	return cfg, nil
}
