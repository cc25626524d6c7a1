// Package heatmap exports positional density data for external
// visualization: a JSON document for offline tools and a rendered
// ground-plane chart for quick inspection in a browser.
package heatmap

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/nav.report/internal/fsutil"
	"github.com/banshee-data/nav.report/internal/geom"
	"github.com/banshee-data/nav.report/internal/navlog"
)

// Data is the heatmap export document: raw positions, their timestamps,
// and the recorder's bounds block, in the shape downstream visualization
// tooling expects.
type Data struct {
	Positions  []geom.Vec3         `json:"positions"`
	Timestamps []float64           `json:"timestamps"`
	Bounds     navlog.SessionStats `json:"bounds"`
}

// FromLog builds the export document from a validated session.
func FromLog(log *navlog.NavLog) *Data {
	d := &Data{
		Positions:  make([]geom.Vec3, 0, len(log.Positions)),
		Timestamps: make([]float64, 0, len(log.Positions)),
		Bounds:     log.Statistics,
	}
	for _, p := range log.Positions {
		d.Positions = append(d.Positions, p.Position)
		d.Timestamps = append(d.Timestamps, p.SessionTime)
	}
	return d
}

// ExportJSON writes the heatmap document to path through the given
// filesystem.
func ExportJSON(fsys fsutil.FileSystem, log *navlog.NavLog, path string) error {
	data, err := json.MarshalIndent(FromLog(log), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal heatmap data: %w", err)
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write heatmap data: %w", err)
	}
	return nil
}

// RenderHTML renders a ground-plane (X/Z) scatter of the session's
// positions, colored by elapsed session time so the traversal order is
// visible. The vertical axis is dropped, mirroring the exploration
// footprint calculation.
func RenderHTML(w io.Writer, log *navlog.NavLog) error {
	data := make([]opts.ScatterData, 0, len(log.Positions))
	maxAbs := 0.0
	maxTime := 0.0
	for _, p := range log.Positions {
		x := p.Position.X()
		z := p.Position.Z()
		if math.Abs(x) > maxAbs {
			maxAbs = math.Abs(x)
		}
		if math.Abs(z) > maxAbs {
			maxAbs = math.Abs(z)
		}
		if p.SessionTime > maxTime {
			maxTime = p.SessionTime
		}
		data = append(data, opts.ScatterData{Value: []interface{}{x, z, p.SessionTime}})
	}

	// Pad the axes so edge points stay visible; force a square plot.
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}
	if maxTime == 0 {
		maxTime = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Navigation Heatmap", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Navigation Heatmap", Subtitle: fmt.Sprintf("points=%d duration=%.0fs", len(data), log.Statistics.SessionDuration)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (units)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Z (units)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxTime),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#b5de2b", "#fde725"}},
		}),
	)

	scatter.AddSeries("positions", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render heatmap chart: %w", err)
	}
	return nil
}
