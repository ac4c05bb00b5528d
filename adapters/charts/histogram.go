package charts

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"solarqc/domain/table"
)

// renderHistogram overlays the raw and cleaned distributions of one
// column. The raw bars draw first in grey so the cleaned shape sits on
// top of them.
func (r *Renderer) renderHistogram(raw, cleaned *table.Dataset, col string, path string) error {
	p := plot.New()
	p.Title.Text = col + " distribution"
	p.X.Label.Text = col
	p.Y.Label.Text = "Count"

	bins := r.cfg.HistogramBins
	if bins <= 0 {
		bins = 40
	}

	rawVals, _ := raw.NumericColumn(col)
	if len(rawVals) > 0 {
		hist, err := plotter.NewHist(plotter.Values(rawVals), bins)
		if err != nil {
			return err
		}
		hist.FillColor = color.NRGBA{R: 196, G: 196, B: 196, A: 255}
		hist.LineStyle.Width = vg.Length(0)
		p.Add(hist)
	}

	if cleaned != nil {
		cleanVals, _ := cleaned.NumericColumn(col)
		if len(cleanVals) > 0 {
			hist, err := plotter.NewHist(plotter.Values(cleanVals), bins)
			if err != nil {
				return err
			}
			hist.FillColor = color.NRGBA{R: 70, G: 130, B: 180, A: 180}
			hist.LineStyle.Width = vg.Length(0)
			p.Add(hist)
		}
	}

	return p.Save(vg.Length(r.cfg.WidthInches)*vg.Inch, vg.Length(r.cfg.HeightInches)*vg.Inch, path)
}
