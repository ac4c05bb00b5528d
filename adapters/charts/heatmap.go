package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"solarqc/internal/analysis"
)

// corrGrid adapts a correlation matrix to the heat map grid interface.
type corrGrid struct {
	m *analysis.Matrix
}

func (g corrGrid) Dims() (c, r int) {
	n := g.m.Size()
	return n, n
}

func (g corrGrid) Z(c, r int) float64 { return g.m.R[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// renderHeatmap draws the correlation matrix on a diverging blue-red
// scale pinned to [-1, 1], with the coefficient printed in each cell.
func (r *Renderer) renderHeatmap(m *analysis.Matrix, path string) error {
	p := plot.New()
	p.Title.Text = "Correlation heatmap"

	pal := moreland.SmoothBlueRed().Palette(256)
	heat := plotter.NewHeatMap(corrGrid{m: m}, pal)
	heat.Min = -1
	heat.Max = 1
	p.Add(heat)

	ticks := make([]plot.Tick, m.Size())
	for i, col := range m.Columns {
		ticks[i] = plot.Tick{Value: float64(i), Label: col}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	cells := make(plotter.XYs, 0, m.Size()*m.Size())
	texts := make([]string, 0, m.Size()*m.Size())
	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			cells = append(cells, plotter.XY{X: float64(j), Y: float64(i)})
			texts = append(texts, fmt.Sprintf("%.2f", m.R[i][j]))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: cells, Labels: texts})
	if err != nil {
		return err
	}
	p.Add(labels)

	side := vg.Length(r.cfg.HeightInches) * vg.Inch
	return p.Save(side, side, path)
}
