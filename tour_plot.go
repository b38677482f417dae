package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	fenceColour  = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	pathColour   = color.RGBA{R: 40, G: 90, B: 200, A: 255}
	sensorColour = color.RGBA{R: 20, G: 160, B: 60, A: 255}
)

// PlotTour renders the no-fly zones, the confinement rectangle, the
// waypoints and the flown path to a PNG (or any extension gonum/plot
// understands) at file.
func PlotTour(file string, cfg Config, fences []*Geofence, waypoints []Waypoint, plan *FlightPlan) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Tour: %d moves over %d waypoints", plan.TotalSteps(), len(waypoints))
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	c := cfg.Confinement
	box, err := plotter.NewLine(plotter.XYs{
		{X: c.MinLng, Y: c.MinLat}, {X: c.MaxLng, Y: c.MinLat},
		{X: c.MaxLng, Y: c.MaxLat}, {X: c.MinLng, Y: c.MaxLat},
		{X: c.MinLng, Y: c.MinLat},
	})
	if err != nil {
		return err
	}
	box.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(box)

	for _, fence := range fences {
		xys := make(plotter.XYs, 0, len(fence.vertices))
		for _, v := range fence.vertices {
			xys = append(xys, plotter.XY{X: v.X, Y: v.Y})
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return fmt.Errorf("fence %q: %w", fence.Name, err)
		}
		poly.Color = fenceColour
		p.Add(poly)
	}

	path := plan.Path()
	pathXYs := make(plotter.XYs, len(path))
	for i, pt := range path {
		pathXYs[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	line, err := plotter.NewLine(pathXYs)
	if err != nil {
		return err
	}
	line.Color = pathColour
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("path", line)

	wpXYs := make(plotter.XYs, len(waypoints))
	for i, wp := range waypoints {
		wpXYs[i] = plotter.XY{X: wp.X, Y: wp.Y}
	}
	sensors, err := plotter.NewScatter(wpXYs)
	if err != nil {
		return err
	}
	sensors.GlyphStyle.Color = sensorColour
	p.Add(sensors)
	p.Legend.Add("waypoints", sensors)
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save tour plot: %w", err)
	}
	Logf("💾 Wrote %s\n", file)
	return nil
}
