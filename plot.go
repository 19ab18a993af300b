package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/rwcarlsen/barfem/bar"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var plotFiles = []string{"displacement.png", "strain.png", "stress.png"}

// writePlots renders the displacement along the bar and the element strains
// and stresses at the element midpoints into dir.
func writePlots(dir string, res *bar.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create plot directory: %w", err)
	}

	disp := make(plotter.XYs, len(res.NodeCoordinates))
	for i, x := range res.NodeCoordinates {
		disp[i].X, disp[i].Y = x, res.Displacements[i]
	}
	strain := make(plotter.XYs, len(res.Elements))
	stress := make(plotter.XYs, len(res.Elements))
	for i, e := range res.Elements {
		strain[i].X, strain[i].Y = e.Midpoint, e.Strain
		stress[i].X, stress[i].Y = e.Midpoint, e.Stress
	}

	p, err := linePlot("Displacement", "x (m)", "u (m)", disp)
	if err != nil {
		return err
	}
	if err := savePlot(p, filepath.Join(dir, plotFiles[0])); err != nil {
		return err
	}

	if p, err = linePlot("Strain", "x (m)", "strain", strain); err != nil {
		return err
	}
	if err := savePlot(p, filepath.Join(dir, plotFiles[1])); err != nil {
		return err
	}

	if p, err = linePlot("Stress", "x (m)", "stress (Pa)", stress); err != nil {
		return err
	}
	if e, ok := res.MaxStress(); ok {
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: e.Midpoint, Y: e.Stress}},
			Labels: []string{fmt.Sprintf("max %.3g Pa", e.Stress)},
		})
		if err != nil {
			return err
		}
		p.Add(labels)
	}
	return savePlot(p, filepath.Join(dir, plotFiles[2]))
}

func linePlot(title, xlabel, ylabel string, pts plotter.XYs) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{B: 200, A: 255}
	points.Radius = vg.Points(2)
	p.Add(line, points)
	return p, nil
}

func savePlot(p *plot.Plot, filename string) error {
	if err := p.Save(8*vg.Inch, 5*vg.Inch, filename); err != nil {
		return fmt.Errorf("cannot write %v: %w", filename, err)
	}
	return nil
}
