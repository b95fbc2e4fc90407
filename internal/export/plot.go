// Package export renders stored run histories to image files.
package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// AmplitudePNG writes a plot of the first field mode's amplitude over
// time to path.
func AmplitudePNG(times, amps []float64, title, path string) error {
	if len(times) == 0 || len(times) != len(amps) {
		return fmt.Errorf("export: mismatched or empty series (%d times, %d amps)", len(times), len(amps))
	}

	pts := make(plotter.XYs, len(times))
	for i := range times {
		pts[i].X = times[i]
		pts[i].Y = amps[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "|E_k1|"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
