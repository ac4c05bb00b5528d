package charts

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"solarqc/domain/table"
)

// compassSectors are the 16-point rose labels in clockwise order from
// north.
var compassSectors = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// speedClasses are the stacked bands of the rose in m/s. The last band
// is open-ended.
var speedClasses = []struct {
	label string
	upper float64
}{
	{"0-2 m/s", 2},
	{"2-4 m/s", 4},
	{"4-6 m/s", 6},
	{">6 m/s", math.Inf(1)},
}

// sectorOf maps a direction in degrees onto a compass sector index.
// Sector N spans the wraparound from 348.75 to 11.25 degrees.
func sectorOf(degrees float64) int {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return int((d+11.25)/22.5) % 16
}

// speedClassOf maps a wind speed onto a band index.
func speedClassOf(speed float64) int {
	for i, class := range speedClasses {
		if speed < class.upper {
			return i
		}
	}
	return len(speedClasses) - 1
}

// renderWindRose draws observation counts per compass sector, stacked
// by speed band.
func (r *Renderer) renderWindRose(ds *table.Dataset, speedCol, dirCol string, path string) error {
	counts := make([][]float64, len(speedClasses))
	for i := range counts {
		counts[i] = make([]float64, len(compassSectors))
	}
	for _, row := range ds.Rows {
		speed, okS := row[speedCol].AsFloat64()
		dir, okD := row[dirCol].AsFloat64()
		if !okS || !okD || speed < 0 {
			continue
		}
		counts[speedClassOf(speed)][sectorOf(dir)]++
	}

	p := plot.New()
	p.Title.Text = "Wind speed by direction"
	p.X.Label.Text = "Direction"
	p.Y.Label.Text = "Observations"

	var prev *plotter.BarChart
	for i, class := range speedClasses {
		bars, err := plotter.NewBarChart(plotter.Values(counts[i]), vg.Points(12))
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		if prev != nil {
			bars.StackOn(prev)
		}
		p.Add(bars)
		p.Legend.Add(class.label, bars)
		prev = bars
	}
	p.Legend.Top = true
	p.NominalX(compassSectors...)

	return p.Save(vg.Length(r.cfg.WidthInches)*vg.Inch, vg.Length(r.cfg.HeightInches)*vg.Inch, path)
}
