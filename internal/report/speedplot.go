package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/nav.report/internal/geom"
	"github.com/banshee-data/nav.report/internal/nav"
)

// WriteSpeedPlot renders interval speeds over session time to a PNG at
// the given path. Intervals without a positive time delta are skipped,
// matching the movement analyzer's speed accounting. Returns an error
// when fewer than two samples are available.
func WriteSpeedPlot(samples []nav.PositionSample, path string) error {
	if len(samples) < 2 {
		return fmt.Errorf("speed plot needs at least 2 samples, got %d", len(samples))
	}

	pts := make(plotter.XYs, 0, len(samples)-1)
	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		dt := curr.SessionTime - prev.SessionTime
		if dt <= 0 {
			continue
		}
		d := geom.Distance(prev.Position, curr.Position)
		pts = append(pts, plotter.XY{X: curr.SessionTime, Y: d / dt})
	}
	if len(pts) == 0 {
		return fmt.Errorf("no intervals with a positive time delta to plot")
	}

	p := plot.New()
	p.Title.Text = "Movement Speed"
	p.X.Label.Text = "session time (s)"
	p.Y.Label.Text = "speed (units/s)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build speed line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save speed plot: %w", err)
	}
	return nil
}
