package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/vlasim/internal/grid"
)

// distGrid adapts a distribution to the plotter grid interface.
// Columns map to x, rows to v.
type distGrid struct {
	f grid.Dist
	g *grid.Grid
}

func (d distGrid) Dims() (int, int)   { return d.g.Nx, d.g.Nv }
func (d distGrid) X(c int) float64    { return d.g.X[c] }
func (d distGrid) Y(r int) float64    { return d.g.V[r] }
func (d distGrid) Z(c, r int) float64 { return d.f[c][r] }

// PhaseSpacePNG renders the distribution function over the (x, v) plane
// to path.
func PhaseSpacePNG(f grid.Dist, g *grid.Grid, title, path string) error {
	if len(f) != g.Nx {
		return fmt.Errorf("export: distribution has %d columns, grid wants %d", len(f), g.Nx)
	}

	hm := plotter.NewHeatMap(distGrid{f: f, g: g}, palette.Heat(64, 1))

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "v"
	p.Add(hm)

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
