package integrate

import (
	"github.com/san-kum/vlasim/internal/driver"
	"github.com/san-kum/vlasim/internal/field"
	"github.com/san-kum/vlasim/internal/grid"
	"github.com/san-kum/vlasim/internal/vlasov"
)

// Coefficients of the sixth-order Hamiltonian splitting for 1D
// Vlasov-Poisson from Casas, Crouseilles, Faou & Mehrenberger,
// Numer. Math. 135 (2017) 769.
const (
	sixthA1 = 0.168735950563437422448196
	sixthA2 = 0.377851589220928303880766
	sixthA3 = -0.093175079568731452657924
	sixthB1 = 0.049086460976116245491441
	sixthB2 = 0.264177609888976700200146
	sixthB3 = 0.186735929134907054308413
	sixthC1 = -0.000069728715055305084099
	sixthC2 = -0.000625704827430047189169
	sixthC3 = -0.002213085124045325561636
	sixthD2 = -2.916600457689847816445691e-6
	sixthD3 = 3.048480261700038788680723e-5
	sixthE3 = 4.985549387875068121593988e-7
)

// Sixth is the sixth-order splitting scheme. Its velocity weights
// depend on powers of dt, so they are derived per stepper rather than
// being plain constants.
type Sixth struct {
	g   *grid.Grid
	dt  float64
	drv *driver.Driver
}

func (s *Sixth) Name() string { return "h-sixth" }

func (s *Sixth) Step(e []float64, f grid.Dist, t float64) ([]float64, grid.Dist) {
	dt := s.dt
	dt2 := dt * dt

	d1 := sixthB1 + 2*sixthC1*dt2
	d2 := sixthB2 + 2*sixthC2*dt2 + 4*sixthD2*dt2*dt2
	d3 := sixthB3 + 2*sixthC3*dt2 + 4*sixthD3*dt2*dt2 - 8*sixthE3*dt2*dt2*dt2

	tau := t
	kick := func(w float64) {
		f = vlasov.AdvectVelocity(f, s.g, e, w*dt)
	}
	drift := func(a float64) {
		tau += a * dt
		f = vlasov.AdvectSpace(f, s.g, a*dt)
		e = field.Total(s.drv.Force(tau), f, s.g)
	}

	kick(d1)
	drift(sixthA1)
	kick(d2)
	drift(sixthA2)
	kick(d3)
	drift(sixthA3)
	kick(d3)
	drift(sixthA2)
	kick(d2)
	drift(sixthA1)
	kick(d1)

	return e, f
}
