package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Grid holds the phase-space discretization for a run. It is built once
// and never mutated afterwards.
type Grid struct {
	Nx, Nv     int
	Xmin, Xmax float64
	Vmax       float64
	Dx, Dv     float64

	// Cell-centered axes.
	X, V []float64

	// Angular wavenumbers in FFT ordering.
	Kx, Kv []float64
}

func New(nx int, xmin, xmax float64, nv int, vmax float64) (*Grid, error) {
	if nx < 4 || nv < 4 {
		return nil, fmt.Errorf("grid: nx and nv must be at least 4, got %d, %d", nx, nv)
	}
	if xmax <= xmin {
		return nil, fmt.Errorf("grid: xmax (%g) must exceed xmin (%g)", xmax, xmin)
	}
	if vmax <= 0 {
		return nil, fmt.Errorf("grid: vmax must be positive, got %g", vmax)
	}

	g := &Grid{
		Nx:   nx,
		Nv:   nv,
		Xmin: xmin,
		Xmax: xmax,
		Vmax: vmax,
		Dx:   (xmax - xmin) / float64(nx),
		Dv:   2 * vmax / float64(nv),
	}

	g.X = make([]float64, nx)
	floats.Span(g.X, xmin+g.Dx/2, xmax-g.Dx/2)
	g.V = make([]float64, nv)
	floats.Span(g.V, -vmax+g.Dv/2, vmax-g.Dv/2)

	g.Kx = wavenumbers(nx, g.Dx)
	g.Kv = wavenumbers(nv, g.Dv)

	return g, nil
}

// wavenumbers returns the angular wavenumber axis in standard FFT
// ordering: positive frequencies first, then negative.
func wavenumbers(n int, d float64) []float64 {
	k := make([]float64, n)
	for i := range k {
		m := i
		if i > (n-1)/2 {
			m = i - n
		}
		k[i] = 2 * math.Pi * float64(m) / (float64(n) * d)
	}
	return k
}

// Dist is the electron distribution function f(x, v), stored as Nx rows
// of Nv values.
type Dist [][]float64

func NewDist(nx, nv int) Dist {
	f := make(Dist, nx)
	for i := range f {
		f[i] = make([]float64, nv)
	}
	return f
}

func (f Dist) Clone() Dist {
	c := make(Dist, len(f))
	for i := range f {
		c[i] = make([]float64, len(f[i]))
		copy(c[i], f[i])
	}
	return c
}

// IsFinite reports whether every entry of f is a finite number.
func (f Dist) IsFinite() bool {
	for i := range f {
		for _, v := range f[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Maxwellian initializes f as a Maxwell-Boltzmann distribution with unit
// thermal velocity, modulated by a density perturbation
// 1 + amp*cos(k*x). Each column is normalized to the perturbed density.
func Maxwellian(g *Grid, amp, k float64) Dist {
	f := NewDist(g.Nx, g.Nv)

	col := make([]float64, g.Nv)
	for j, v := range g.V {
		col[j] = math.Exp(-v * v / 2)
	}
	n0 := integrate.Trapezoidal(g.V, col)

	for i := range f {
		scale := (1 + amp*math.Cos(k*g.X[i])) / n0
		for j := range f[i] {
			f[i][j] = scale * col[j]
		}
	}
	return f
}

// Moment integrates w(v)*f over the velocity axis for a single spatial
// column using the trapezoidal rule.
func Moment(g *Grid, col []float64, w func(v float64) float64) float64 {
	tmp := make([]float64, g.Nv)
	for j, v := range g.V {
		tmp[j] = w(v) * col[j]
	}
	return integrate.Trapezoidal(g.V, tmp)
}
