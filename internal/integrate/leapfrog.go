package integrate

import (
	"github.com/san-kum/vlasim/internal/driver"
	"github.com/san-kum/vlasim/internal/field"
	"github.com/san-kum/vlasim/internal/grid"
	"github.com/san-kum/vlasim/internal/vlasov"
)

// Leapfrog is the second-order Strang splitting of the two advection
// operators: half-step velocity advection with the field from the start
// of the step, full-step spatial advection, field recompute, half-step
// velocity advection.
type Leapfrog struct {
	g   *grid.Grid
	dt  float64
	drv *driver.Driver
}

func (s *Leapfrog) Name() string { return "leapfrog" }

func (s *Leapfrog) Step(e []float64, f grid.Dist, t float64) ([]float64, grid.Dist) {
	f = vlasov.AdvectVelocity(f, s.g, e, 0.5*s.dt)
	f = vlasov.AdvectSpace(f, s.g, s.dt)
	e = field.Total(s.drv.Force(t+s.dt), f, s.g)
	f = vlasov.AdvectVelocity(f, s.g, e, 0.5*s.dt)
	return e, f
}
