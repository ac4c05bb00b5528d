package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"solarqc/domain/table"
)

// renderScatter plots two columns against each other over their
// pairwise-complete rows.
func (r *Renderer) renderScatter(ds *table.Dataset, xCol, yCol string, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", xCol, yCol)
	p.X.Label.Text = xCol
	p.Y.Label.Text = yCol
	p.Add(plotter.NewGrid())

	pts := pairedSeries(ds, xCol, yCol)
	if len(pts) > 0 {
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = color.NRGBA{R: 70, G: 130, B: 180, A: 160}
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
	}

	return p.Save(vg.Length(r.cfg.WidthInches)*vg.Inch, vg.Length(r.cfg.HeightInches)*vg.Inch, path)
}
