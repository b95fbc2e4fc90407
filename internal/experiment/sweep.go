package experiment

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vlasim/internal/config"
	"github.com/san-kum/vlasim/internal/diagnostics"
	"github.com/san-kum/vlasim/internal/dispersion"
)

// Point is one sweep sample: the wave metrics measured from a run next
// to the kinetic-theory prediction at the same wavenumber.
type Point struct {
	K0             float64
	MeasuredGamma  float64
	PredictedGamma float64
	MeasuredOmega  float64
	PredictedOmega float64
	Steps          int
}

// Sweep runs the configured scenario across a range of driver
// wavenumbers. The base config supplies everything except K0 and its
// derived parameters, which are refilled per point.
type Sweep struct {
	base *config.Config
	ks   []float64
}

func NewSweep(base *config.Config, kmin, kmax float64, n int) (*Sweep, error) {
	if n < 2 {
		return nil, fmt.Errorf("experiment: sweep needs at least 2 points, got %d", n)
	}
	if kmin <= 0 || kmax <= kmin {
		return nil, fmt.Errorf("experiment: bad wavenumber range [%g, %g]", kmin, kmax)
	}
	ks := make([]float64, n)
	floats.Span(ks, kmin, kmax)
	return &Sweep{base: base, ks: ks}, nil
}

// Run executes the sweep sequentially. Each point is a full simulation;
// cancellation takes effect at the next point boundary or inside the
// running simulation.
func (s *Sweep) Run(ctx context.Context) ([]Point, error) {
	points := make([]Point, 0, len(s.ks))

	for _, k := range s.ks {
		cfg := *s.base
		cfg.Driver.K0 = k
		cfg.Driver.W0 = 0
		cfg.Xmax = 0
		cfg.Perturbation.K = 0
		if err := cfg.Finalize(); err != nil {
			return points, fmt.Errorf("experiment: k0=%g: %w", k, err)
		}

		root, err := dispersion.EPWRoot(k)
		if err != nil {
			return points, err
		}

		runner, f0, _, err := Build(&cfg)
		if err != nil {
			return points, err
		}
		hist := &diagnostics.FieldHistory{}
		runner.AddObserver(hist)

		res, err := runner.Run(ctx, f0)
		if err != nil {
			return points, fmt.Errorf("experiment: k0=%g: %w", k, err)
		}

		// Fit only after the driver envelope has closed.
		off := cfg.Driver.Start + cfg.Driver.Rise + cfg.Driver.Flat + cfg.Driver.Fall
		var ft, fa, fre []float64
		for i, tm := range hist.Times {
			if tm > off {
				ft = append(ft, tm)
				fa = append(fa, hist.Amp[i])
				fre = append(fre, hist.Re[i])
			}
		}
		if len(ft) < 4 {
			ft, fa, fre = hist.Times, hist.Amp, hist.Re
		}

		points = append(points, Point{
			K0:             k,
			MeasuredGamma:  diagnostics.DampingRate(ft, fa),
			PredictedGamma: imag(root),
			MeasuredOmega:  diagnostics.OscillationFrequency(ft, fre),
			PredictedOmega: real(root),
			Steps:          res.Steps,
		})
	}
	return points, nil
}
