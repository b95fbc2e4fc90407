package fokkerplanck

import (
	"math"
	"testing"

	"github.com/san-kum/vlasim/internal/grid"
)

func collisionGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(4, 0, 1, 256, 6)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// shifted returns a drifting Maxwellian with unit thermal velocity,
// normalized to unit density per column.
func shifted(g *grid.Grid, vshift float64) grid.Dist {
	f := grid.NewDist(g.Nx, g.Nv)
	for i := range f {
		for j, v := range g.V {
			f[i][j] = math.Exp(-(v - vshift) * (v - vshift) / 2)
		}
		n := grid.Moment(g, f[i], func(float64) float64 { return 1 })
		for j := range f[i] {
			f[i][j] /= n
		}
	}
	return f
}

func TestZeroNuIsIdentity(t *testing.T) {
	g := collisionGrid(t)
	f := shifted(g, 0.4)

	out := Operator{Nu: 0, Kind: LenardBernstein}.Apply(f, g, 0.1)

	for i := range f {
		for j := range f[i] {
			if out[i][j] != f[i][j] {
				t.Fatalf("nu=0 must be exact identity, drifted at [%d][%d]", i, j)
			}
		}
	}
}

func TestMaxwellianFixedPoint(t *testing.T) {
	g := collisionGrid(t)

	for _, kind := range []Kind{LenardBernstein, Dougherty} {
		f := shifted(g, 0)
		op := Operator{Nu: 1e-3, Kind: kind}

		out := f
		for it := 0; it < 32; it++ {
			out = op.Apply(out, g, 0.1)
		}

		for i := range f {
			for j := range f[i] {
				if math.Abs(out[i][j]-f[i][j]) > 1e-5 {
					t.Fatalf("%s: Maxwellian not stationary at [%d][%d]: %g vs %g",
						kind, i, j, out[i][j], f[i][j])
				}
			}
		}
	}
}

func TestDensityConservation(t *testing.T) {
	g := collisionGrid(t)

	for _, kind := range []Kind{LenardBernstein, Dougherty} {
		f := shifted(g, 0.5)
		op := Operator{Nu: 1e-3, Kind: kind}

		before := grid.Moment(g, f[0], func(float64) float64 { return 1 })

		out := f
		for it := 0; it < 32; it++ {
			out = op.Apply(out, g, 0.1)
		}

		after := grid.Moment(g, out[0], func(float64) float64 { return 1 })
		if math.Abs(after-before) > 1e-6 {
			t.Errorf("%s: density drifted %.10f -> %.10f", kind, before, after)
		}
	}
}

func TestEnergyConservation(t *testing.T) {
	g := collisionGrid(t)

	for _, kind := range []Kind{LenardBernstein, Dougherty} {
		f := shifted(g, 0.5)
		op := Operator{Nu: 1e-3, Kind: kind}

		energy := func(col []float64) float64 {
			return grid.Moment(g, col, func(v float64) float64 { return v * v })
		}

		before := energy(f[0])
		out := f
		for it := 0; it < 32; it++ {
			out = op.Apply(out, g, 0.1)
		}
		after := energy(out[0])

		if math.Abs(after-before) > 1e-4 {
			t.Errorf("%s: second moment drifted %.10f -> %.10f", kind, before, after)
		}
	}
}

func TestDoughertyConservesMomentum(t *testing.T) {
	g := collisionGrid(t)
	f := shifted(g, 0.7)
	op := Operator{Nu: 0.05, Kind: Dougherty}

	momentum := func(col []float64) float64 {
		return grid.Moment(g, col, func(v float64) float64 { return v })
	}

	before := momentum(f[0])
	out := f
	for it := 0; it < 64; it++ {
		out = op.Apply(out, g, 0.1)
	}
	after := momentum(out[0])

	if math.Abs(after-before) > 1e-4 {
		t.Errorf("dg: momentum drifted %.10f -> %.10f", before, after)
	}
}

func TestLenardBernsteinRelaxesDrift(t *testing.T) {
	g := collisionGrid(t)
	f := shifted(g, 0.5)
	op := Operator{Nu: 0.05, Kind: LenardBernstein}

	momentum := func(col []float64) float64 {
		return grid.Moment(g, col, func(v float64) float64 { return v })
	}

	before := momentum(f[0])
	out := f
	for it := 0; it < 200; it++ {
		out = op.Apply(out, g, 0.1)
	}
	after := momentum(out[0])

	if math.Abs(after) > 0.5*math.Abs(before) {
		t.Errorf("lb: drift not relaxing toward zero: %.6f -> %.6f", before, after)
	}
}

func TestKindFromString(t *testing.T) {
	if k, err := KindFromString("lb"); err != nil || k != LenardBernstein {
		t.Errorf("lb: got %v, %v", k, err)
	}
	if k, err := KindFromString("dg"); err != nil || k != Dougherty {
		t.Errorf("dg: got %v, %v", k, err)
	}
	if _, err := KindFromString("krook"); err == nil {
		t.Error("expected error for unknown operator")
	}
}
