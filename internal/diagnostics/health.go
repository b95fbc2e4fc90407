package diagnostics

import (
	"github.com/san-kum/vlasim/internal/grid"
	"github.com/san-kum/vlasim/internal/sim"
)

// Health tracks the box-averaged conserved moments over the run:
// density exactly, momentum for the Dougherty operator, thermal energy
// approximately.
type Health struct {
	g *grid.Grid

	Times    []float64
	Density  []float64
	Momentum []float64
	Thermal  []float64
}

func NewHealth(g *grid.Grid) *Health { return &Health{g: g} }

func (h *Health) OnStep(s sim.Snapshot) {
	var n, p, t float64
	for i := range s.F {
		n += grid.Moment(h.g, s.F[i], func(float64) float64 { return 1 })
		p += grid.Moment(h.g, s.F[i], func(v float64) float64 { return v })
		t += grid.Moment(h.g, s.F[i], func(v float64) float64 { return v * v })
	}
	nx := float64(h.g.Nx)

	h.Times = append(h.Times, s.Time)
	h.Density = append(h.Density, n/nx)
	h.Momentum = append(h.Momentum, p/nx)
	h.Thermal = append(h.Thermal, t/nx)
}
