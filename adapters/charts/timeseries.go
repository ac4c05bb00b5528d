package charts

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"solarqc/domain/table"
)

// renderTimeseries draws every target column against the time axis.
func (r *Renderer) renderTimeseries(ds *table.Dataset, targets []string, path string) error {
	p := plot.New()
	p.Title.Text = "Cleaned series over time"
	p.X.Label.Text = ds.TimeColumn
	p.Y.Label.Text = "Value"
	p.X.Tick.Marker = plot.TimeTicks{Format: "01-02 15:04"}
	p.Add(plotter.NewGrid())

	for i, col := range targets {
		pts := timeSeries(ds, col)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(col, line)
	}
	p.Legend.Top = true

	return p.Save(vg.Length(r.cfg.WidthInches)*vg.Inch, vg.Length(r.cfg.HeightInches)*vg.Inch, path)
}

// timeSeries pairs the time column with one value column, in Unix
// seconds so plot.TimeTicks can label the axis.
func timeSeries(ds *table.Dataset, col string) plotter.XYs {
	var pts plotter.XYs
	for _, row := range ds.Rows {
		t, okT := row[ds.TimeColumn].AsTime()
		v, okV := row[col].AsFloat64()
		if okT && okV {
			pts = append(pts, plotter.XY{X: float64(t.Unix()), Y: v})
		}
	}
	return pts
}
