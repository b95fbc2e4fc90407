// Package fokkerplanck relaxes the distribution function toward a local
// Maxwellian with an implicit backward-Euler, centered-difference
// discretization of a model collision operator. The discrete operator is
// the divergence of a flux, so number density is conserved by
// construction under the vanishing-edge closure.
//
// Two operator variants are provided:
//
//   - Lenard-Bernstein: relaxes toward a zero-mean Maxwellian whose
//     variance is the current second moment of f.
//   - Dougherty: relaxes toward a Maxwellian drifting at the current
//     mean velocity, which additionally conserves momentum.
package fokkerplanck

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/vlasim/internal/grid"
)

type Kind int

const (
	LenardBernstein Kind = iota
	Dougherty
)

func KindFromString(s string) (Kind, error) {
	switch s {
	case "lb":
		return LenardBernstein, nil
	case "dg":
		return Dougherty, nil
	}
	return 0, fmt.Errorf("fokkerplanck: unknown operator %q (want lb or dg)", s)
}

func (k Kind) String() string {
	if k == Dougherty {
		return "dg"
	}
	return "lb"
}

// Operator holds the collision configuration for a run.
type Operator struct {
	Nu   float64
	Kind Kind
}

// Apply advances f by one implicit collision step of length dt,
// independently per spatial column. With Nu == 0 the tridiagonal system
// degenerates to the identity and f is returned unchanged apart from the
// copy.
//
// The moments entering the coefficients are recomputed from the current
// column every call; caching them across steps would break conservation.
func (op Operator) Apply(f grid.Dist, g *grid.Grid, dt float64) grid.Dist {
	out := grid.NewDist(g.Nx, g.Nv)

	columns(g.Nx, func(i int) {
		sub, diag, sup := op.coefficients(f[i], g, dt)
		solveTridiag(sub, diag, sup, f[i], out[i])
	})

	return out
}

// coefficients builds the tridiagonal system for one spatial column.
// Row j couples f_{j-1}, f_j, f_{j+1}; the first and last rows simply
// drop the out-of-domain neighbor, which is the vanishing-edge closure
// (f ~ 0 near +-vmax by the velocity-domain sizing contract).
func (op Operator) coefficients(col []float64, g *grid.Grid, dt float64) (sub, diag, sup []float64) {
	n := grid.Moment(g, col, func(float64) float64 { return 1 })

	vbar := 0.0
	if op.Kind == Dougherty && n != 0 {
		vbar = grid.Moment(g, col, func(v float64) float64 { return v }) / n
	}
	vth2 := 0.0
	if n != 0 {
		vth2 = grid.Moment(g, col, func(v float64) float64 {
			return (v - vbar) * (v - vbar)
		}) / n
	}

	nudt := op.Nu * dt
	dv := g.Dv
	nv := g.Nv

	sub = make([]float64, nv)
	diag = make([]float64, nv)
	sup = make([]float64, nv)

	for j := 0; j < nv; j++ {
		diag[j] = 1 + nudt*2*vth2/(dv*dv)
		if j > 0 {
			sub[j] = nudt * (-vth2/(dv*dv) + (g.V[j-1]-vbar)/(2*dv))
		}
		if j < nv-1 {
			sup[j] = nudt * (-vth2/(dv*dv) - (g.V[j+1]-vbar)/(2*dv))
		}
	}
	return sub, diag, sup
}

// solveTridiag solves the system with the Thomas algorithm. sub[j],
// diag[j], sup[j] are the coefficients of row j; sub[0] and sup[nv-1]
// are unused. O(Nv) per column.
func solveTridiag(sub, diag, sup, rhs, out []float64) {
	n := len(diag)
	cp := make([]float64, n)
	dp := make([]float64, n)

	cp[0] = sup[0] / diag[0]
	dp[0] = rhs[0] / diag[0]
	for j := 1; j < n; j++ {
		m := diag[j] - sub[j]*cp[j-1]
		cp[j] = sup[j] / m
		dp[j] = (rhs[j] - sub[j]*dp[j-1]) / m
	}

	out[n-1] = dp[n-1]
	for j := n - 2; j >= 0; j-- {
		out[j] = dp[j] - cp[j]*out[j+1]
	}
}

// columns runs body(i) for each spatial index, chunked across CPUs. The
// per-column solves are independent.
func columns(n int, body func(i int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			body(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				body(i)
			}
		}(start, end)
	}
	wg.Wait()
}
