// Package integrate composes the advection operators and the field
// solve into symplectic time-stepping schemes for the Vlasov-Poisson
// subsystem. The scheme is selected once at configuration time and held
// fixed for the run.
package integrate

import (
	"fmt"

	"github.com/san-kum/vlasim/internal/driver"
	"github.com/san-kum/vlasim/internal/grid"
)

// Stepper advances the Hamiltonian (collisionless) part of the system
// by one timestep. The collision operator is applied separately, once
// per full step, by the run loop.
type Stepper interface {
	// Step advances (e, f) from time t to t+dt and returns the new
	// field and distribution. Inputs are not mutated.
	Step(e []float64, f grid.Dist, t float64) ([]float64, grid.Dist)
	Name() string
}

// Names lists the selectable integrators.
func Names() []string { return []string{"leapfrog", "pefrl", "h-sixth"} }

// New returns the stepper registered under name.
func New(name string, g *grid.Grid, dt float64, drv *driver.Driver) (Stepper, error) {
	switch name {
	case "leapfrog":
		return &Leapfrog{g: g, dt: dt, drv: drv}, nil
	case "pefrl":
		return &PEFRL{g: g, dt: dt, drv: drv}, nil
	case "h-sixth":
		return &Sixth{g: g, dt: dt, drv: drv}, nil
	}
	return nil, fmt.Errorf("integrate: unknown integrator %q (want leapfrog, pefrl or h-sixth)", name)
}
