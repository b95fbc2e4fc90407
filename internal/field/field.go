// Package field computes the self-consistent electrostatic field from
// the distribution function via a spectral Poisson solve. Ions are a
// static neutralizing background. The electron charge sign is folded
// into the field, so the advection operators accelerate with +E.
package field

import (
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/integrate"

	"github.com/san-kum/vlasim/internal/grid"
)

// ChargeDensity integrates f over the velocity axis at each spatial
// point using the trapezoidal rule.
func ChargeDensity(f grid.Dist, g *grid.Grid) []float64 {
	rho := make([]float64, g.Nx)
	for i := range f {
		rho[i] = integrate.Trapezoidal(g.V, f[i])
	}
	return rho
}

// Solve returns the electric field for the net charge density
// 1 - rho_e. The k=0 mode is fixed to zero: the background is
// charge-neutral, so the spatial mean of E carries no information and is
// removed by convention.
func Solve(rho []float64, g *grid.Grid) []float64 {
	net := make([]complex128, g.Nx)
	for i, r := range rho {
		net[i] = complex(1-r, 0)
	}

	rhok := fft.FFT(net)
	rhok[0] = 0
	for m := 1; m < g.Nx; m++ {
		rhok[m] /= complex(0, -g.Kx[m])
	}

	ek := fft.IFFT(rhok)
	e := make([]float64, g.Nx)
	for i := range e {
		e[i] = real(ek[i])
	}
	return e
}

// Total returns the force field seen by the electrons: the
// self-consistent field plus the external driver field.
func Total(driver []float64, f grid.Dist, g *grid.Grid) []float64 {
	e := Solve(ChargeDensity(f, g), g)
	for i := range e {
		e[i] += driver[i]
	}
	return e
}
