package integrate

import (
	"github.com/san-kum/vlasim/internal/driver"
	"github.com/san-kum/vlasim/internal/field"
	"github.com/san-kum/vlasim/internal/grid"
	"github.com/san-kum/vlasim/internal/vlasov"
)

// Coefficients of the Position-Extended Forest-Ruth-Like scheme from
// Omelyan, Mryglod & Folk, Comput. Phys. Commun. 146 (2002) 188.
const (
	pefrlXi     = 0.1786178958448091
	pefrlLambda = -0.2123418310626054
	pefrlChi    = -0.6626458266981849e-1
)

// PEFRL is a fourth-order symplectic composition of five spatial and
// four velocity advection sub-steps, with the field recomputed after
// every spatial sub-step.
type PEFRL struct {
	g   *grid.Grid
	dt  float64
	drv *driver.Driver
}

func (s *PEFRL) Name() string { return "pefrl" }

func (s *PEFRL) Step(e []float64, f grid.Dist, t float64) ([]float64, grid.Dist) {
	dt := s.dt

	dt1 := pefrlXi * dt
	dt2 := pefrlChi * dt
	dt3 := (1 - 2*(pefrlChi+pefrlXi)) * dt
	dt4 := dt2
	dt5 := dt1

	vdtOuter := 0.5 * (1 - 2*pefrlLambda) * dt
	vdtInner := pefrlLambda * dt

	tau := t

	advance := func(xdt, vdt float64) {
		tau += xdt
		f = vlasov.AdvectSpace(f, s.g, xdt)
		e = field.Total(s.drv.Force(tau), f, s.g)
		if vdt != 0 {
			f = vlasov.AdvectVelocity(f, s.g, e, vdt)
		}
	}

	advance(dt1, vdtOuter)
	advance(dt2, vdtInner)
	advance(dt3, vdtInner)
	advance(dt4, vdtOuter)
	advance(dt5, 0)

	return e, f
}
