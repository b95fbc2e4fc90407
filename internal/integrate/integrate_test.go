package integrate

import (
	"math"
	"testing"

	"github.com/san-kum/vlasim/internal/driver"
	"github.com/san-kum/vlasim/internal/field"
	"github.com/san-kum/vlasim/internal/grid"
)

func TestNewUnknownName(t *testing.T) {
	g, err := grid.New(16, 0, 2*math.Pi, 64, 6)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New("rk4", g, 0.1, driver.New(g.X)); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestNamesMatchConstructors(t *testing.T) {
	g, err := grid.New(16, 0, 2*math.Pi, 64, 6)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range Names() {
		s, err := New(name, g, 0.1, driver.New(g.X))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("constructed %q, Name() reports %q", name, s.Name())
		}
	}
}

// A spatially uniform Maxwellian with no driver is an exact equilibrium:
// the field vanishes and nothing should move.
func TestUniformPlasmaIsStationary(t *testing.T) {
	g, err := grid.New(16, 0, 2*math.Pi, 128, 6)
	if err != nil {
		t.Fatal(err)
	}
	drv := driver.New(g.X)

	for _, name := range Names() {
		f0 := grid.Maxwellian(g, 0, 1)
		e0 := field.Total(drv.Force(0), f0, g)

		s, err := New(name, g, 0.1, drv)
		if err != nil {
			t.Fatal(err)
		}

		e, f := e0, f0
		for it := 0; it < 10; it++ {
			e, f = s.Step(e, f, float64(it)*0.1)
		}

		for i := range e {
			if math.Abs(e[i]) > 1e-10 {
				t.Errorf("%s: field grew from equilibrium: e[%d]=%g", name, i, e[i])
			}
		}
		for i := range f {
			for j := range f[i] {
				if math.Abs(f[i][j]-f0[i][j]) > 1e-10 {
					t.Fatalf("%s: distribution drifted at [%d][%d]", name, i, j)
				}
			}
		}
	}
}

func TestStepConservesDensity(t *testing.T) {
	g, err := grid.New(16, 0, 2*math.Pi/0.3, 128, 6)
	if err != nil {
		t.Fatal(err)
	}
	drv := driver.New(g.X)

	for _, name := range Names() {
		f := grid.Maxwellian(g, 1e-3, 0.3)
		e := field.Total(drv.Force(0), f, g)

		total := func(f grid.Dist) float64 {
			rho := field.ChargeDensity(f, g)
			sum := 0.0
			for _, r := range rho {
				sum += r * g.Dx
			}
			return sum
		}

		before := total(f)
		s, err := New(name, g, 0.1, drv)
		if err != nil {
			t.Fatal(err)
		}
		for it := 0; it < 20; it++ {
			e, f = s.Step(e, f, float64(it)*0.1)
		}
		after := total(f)

		if math.Abs(after-before) > 1e-9 {
			t.Errorf("%s: total density drifted %.12f -> %.12f", name, before, after)
		}
	}
}

func TestStepFieldHasZeroMean(t *testing.T) {
	g, err := grid.New(16, 0, 2*math.Pi/0.3, 128, 6)
	if err != nil {
		t.Fatal(err)
	}
	drv := driver.New(g.X)

	for _, name := range Names() {
		f := grid.Maxwellian(g, 1e-3, 0.3)
		e := field.Total(drv.Force(0), f, g)

		s, err := New(name, g, 0.1, drv)
		if err != nil {
			t.Fatal(err)
		}
		for it := 0; it < 20; it++ {
			e, f = s.Step(e, f, float64(it)*0.1)
		}

		mean := 0.0
		for _, ei := range e {
			mean += ei
		}
		mean /= float64(len(e))
		if math.Abs(mean) > 1e-12 {
			t.Errorf("%s: field mean %g, want 0", name, mean)
		}
	}
}
