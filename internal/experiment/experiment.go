// Package experiment assembles a full run from a finalized config and
// provides parameter sweeps over assembled runs.
package experiment

import (
	"github.com/san-kum/vlasim/internal/config"
	"github.com/san-kum/vlasim/internal/driver"
	"github.com/san-kum/vlasim/internal/fokkerplanck"
	"github.com/san-kum/vlasim/internal/grid"
	"github.com/san-kum/vlasim/internal/integrate"
	"github.com/san-kum/vlasim/internal/sim"
)

// Build constructs the runner, initial condition and grid described by
// cfg. cfg must already be finalized.
func Build(cfg *config.Config) (*sim.Runner, grid.Dist, *grid.Grid, error) {
	g, err := grid.New(cfg.Nx, cfg.Xmin, cfg.Xmax, cfg.Nv, cfg.Vmax)
	if err != nil {
		return nil, nil, nil, err
	}

	var pulses []driver.Pulse
	if cfg.Driver.A0 != 0 {
		pulses = append(pulses, driver.Pulse{
			A0:    cfg.Driver.A0,
			K0:    cfg.Driver.K0,
			W0:    cfg.Driver.W0,
			Start: cfg.Driver.Start,
			Rise:  cfg.Driver.Rise,
			Flat:  cfg.Driver.Flat,
			Fall:  cfg.Driver.Fall,
		})
	}
	drv := driver.New(g.X, pulses...)

	stepper, err := integrate.New(cfg.Integrator, g, cfg.Dt, drv)
	if err != nil {
		return nil, nil, nil, err
	}

	kind, err := fokkerplanck.KindFromString(cfg.Operator)
	if err != nil {
		return nil, nil, nil, err
	}
	collide := fokkerplanck.Operator{Nu: cfg.Nu, Kind: kind}

	f0 := grid.Maxwellian(g, cfg.Perturbation.Amp, cfg.Perturbation.K)

	return sim.New(g, stepper, collide, drv, cfg.Dt, cfg.Nt), f0, g, nil
}
