package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"solarqc/domain/table"
)

// renderBubble plots irradiance against ambient temperature with the
// glyph radius carrying relative humidity.
func (r *Renderer) renderBubble(ds *table.Dataset, xCol, yCol, zCol string, path string) error {
	var xyzs plotter.XYZs
	for _, row := range ds.Rows {
		x, okX := row[xCol].AsFloat64()
		y, okY := row[yCol].AsFloat64()
		z, okZ := row[zCol].AsFloat64()
		if okX && okY && okZ {
			xyzs = append(xyzs, plotter.XYZ{X: x, Y: y, Z: z})
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s sized by %s", xCol, yCol, zCol)
	p.X.Label.Text = xCol
	p.Y.Label.Text = yCol
	p.Add(plotter.NewGrid())

	if len(xyzs) > 0 {
		bubbles, err := plotter.NewBubbles(xyzs, vg.Points(1), vg.Points(8))
		if err != nil {
			return err
		}
		bubbles.Color = color.NRGBA{R: 233, G: 121, B: 50, A: 120}
		p.Add(bubbles)
	}

	return p.Save(vg.Length(r.cfg.WidthInches)*vg.Inch, vg.Length(r.cfg.HeightInches)*vg.Inch, path)
}
