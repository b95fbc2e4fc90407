// Package vlasov advances the distribution function under the two
// advection terms of the Vlasov equation using pseudo-spectral
// exponential integrators. Both operators are exact for their linear
// sub-problem up to spectral truncation, so neither imposes a timestep
// restriction on its own.
package vlasov

import (
	"math/cmplx"
	"runtime"
	"sync"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/vlasim/internal/grid"
)

// AdvectSpace advances f by dt under df/dt + v df/dx = 0. Each velocity
// row is an independent periodic advection in x: transform, rotate every
// mode by exp(-i kx v dt), transform back. The imaginary residue of the
// inverse transform is numerical noise and is discarded.
func AdvectSpace(f grid.Dist, g *grid.Grid, dt float64) grid.Dist {
	out := grid.NewDist(g.Nx, g.Nv)

	parallelFor(g.Nv, func(j int) {
		row := make([]complex128, g.Nx)
		for i := range row {
			row[i] = complex(f[i][j], 0)
		}
		fp := fft.FFT(row)
		for m := range fp {
			fp[m] *= cmplx.Exp(complex(0, -g.Kx[m]*g.V[j]*dt))
		}
		back := fft.IFFT(fp)
		for i := range back {
			out[i][j] = real(back[i])
		}
	})

	return out
}

// AdvectVelocity advances f by dt under df/dt + e df/dv = 0, where e is
// the total force field (self-consistent plus driver). The mirror of
// AdvectSpace with the roles of x and v exchanged: each spatial column
// is translated in v by e(x)*dt.
//
// The velocity domain is treated as periodic, which is only valid while
// f vanishes near +-vmax; choosing vmax large enough is the caller's
// contract.
func AdvectVelocity(f grid.Dist, g *grid.Grid, e []float64, dt float64) grid.Dist {
	out := grid.NewDist(g.Nx, g.Nv)

	parallelFor(g.Nx, func(i int) {
		col := make([]complex128, g.Nv)
		for j := range col {
			col[j] = complex(f[i][j], 0)
		}
		fp := fft.FFT(col)
		for m := range fp {
			fp[m] *= cmplx.Exp(complex(0, -g.Kv[m]*e[i]*dt))
		}
		back := fft.IFFT(fp)
		for j := range back {
			out[i][j] = real(back[j])
		}
	})

	return out
}

// parallelFor runs body(i) for i in [0, n) split into contiguous chunks
// across the available CPUs. The rows/columns are independent, so no
// synchronization is needed beyond the final join.
func parallelFor(n int, body func(i int)) {
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
