package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/rwcarlsen/barfem/bar"
	"gopkg.in/yaml.v3"
)

var formats = []string{"table", "json", "yaml"}

func writeResult(w io.Writer, format string, cfg bar.Config, res *bar.Result) error {
	switch format {
	case "", "table":
		return writeTable(w, cfg, res)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(res)
	}
	return fmt.Errorf("%w: unknown output format %q (have %v)", bar.ErrInvalidConfig, format, formats)
}

// writeTable prints the mesh, nodal displacements and element results along
// with a comparison against the closed form tip displacement.
func writeTable(w io.Writer, cfg bar.Config, res *bar.Result) error {
	fmt.Fprintf(w, "Bar: L=%g m, E=%g Pa, A=%g m^2, %d elements (%s, %s)\n\n",
		cfg.Length, cfg.YoungModulus, cfg.Area, len(res.Elements), res.Method, res.Solver)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "node\tx (m)\tu (m)\t\n")
	for i, x := range res.NodeCoordinates {
		fmt.Fprintf(tw, "%d\t%.6g\t%.6e\t\n", i, x, res.Displacements[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "elem\tnodes\tmidpoint (m)\tstrain\tstress (Pa)\tforce (N)\t\n")
	for _, e := range res.Elements {
		conn := res.Connectivity[e.Index]
		fmt.Fprintf(tw, "%d\t%d-%d\t%.6g\t%.6e\t%.6e\t%.6g\t\n",
			e.Index, conn[0], conn[1], e.Midpoint, e.Strain, e.Stress, e.AxialForce)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range res.Reactions {
		fmt.Fprintf(tw, "reaction at node %d:\t%.6g N\n", r.Node, r.Force)
	}
	if e, ok := res.MaxStress(); ok {
		fmt.Fprintf(tw, "max stress:\t%.6e Pa (element %d)\n", e.Stress, e.Index)
	}
	fmt.Fprintf(tw, "strain energy:\t%.6e J\n", res.StrainEnergy)
	if isCantilever(cfg) {
		tip := res.Displacements[len(res.Displacements)-1]
		exact := bar.TipDisplacement(cfg.Material(), cfg.AppliedForce, cfg.Length)
		fmt.Fprintf(tw, "tip displacement:\t%.6e m (exact %.6e m, rel. error %.2e)\n", tip, exact, relErr(tip, exact))
	}
	return tw.Flush()
}

// isCantilever reports whether cfg is a bar clamped at x=0 with a single
// tip load, the case with a closed form solution.
func isCantilever(cfg bar.Config) bool {
	if len(cfg.Loads) > 0 {
		return false
	}
	cs := cfg.Constraints()
	return len(cs) == 1 && cs[0].Node == 0 && cs[0].Value == 0
}

func relErr(got, want float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}
