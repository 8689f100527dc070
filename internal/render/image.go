package render

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ImageRenderer writes one image file per chart. Format is any extension
// gonum/plot can save (png, svg, pdf).
type ImageRenderer struct {
	Format string
}

// Render writes <outDir>/<report>_<chart>.<format> for every chart
func (r ImageRenderer) Render(outDir, report string, list []Chart) ([]string, error) {
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}

	var paths []string
	for _, c := range list {
		p, err := drawPlot(c)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(outDir, fmt.Sprintf("%s_%s.%s", report, c.Name, r.Format))
		if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
			return nil, errors.Wrapf(err, "save %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func drawPlot(c Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(grid)

	for _, l := range c.Lines {
		if len(l.X) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(l.X))
		for i := range l.X {
			xys[i].X = l.X[i]
			xys[i].Y = l.Y[i]
		}

		stroke := hexColor(l.Color)
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "chart %s: line %s", c.Name, l.Label)
		}
		line.Color = stroke
		line.Width = vg.Points(2.5)
		line.FillColor = color.NRGBA{R: 51, G: 51, B: 51, A: 26}

		points, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "chart %s: points %s", c.Name, l.Label)
		}
		points.Color = stroke
		points.Radius = vg.Points(2)

		p.Add(line, points)
		if c.Legend() {
			p.Legend.Add(l.Label, line)
		}
	}
	return p, nil
}

// hexColor parses #rrggbb, falling back to black
func hexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
