package grid

import (
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(2, 0, 1, 64, 6); err == nil {
		t.Error("expected error for tiny nx")
	}
	if _, err := New(32, 1, 1, 64, 6); err == nil {
		t.Error("expected error for empty x domain")
	}
	if _, err := New(32, 0, 1, 64, -1); err == nil {
		t.Error("expected error for negative vmax")
	}
}

func TestAxes(t *testing.T) {
	g, err := New(16, 0, 8, 32, 4)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(g.Dx-0.5) > 1e-14 {
		t.Errorf("dx: got %f, expected 0.5", g.Dx)
	}
	if math.Abs(g.Dv-0.25) > 1e-14 {
		t.Errorf("dv: got %f, expected 0.25", g.Dv)
	}
	if math.Abs(g.X[0]-0.25) > 1e-14 || math.Abs(g.X[15]-7.75) > 1e-14 {
		t.Errorf("x axis not cell-centered: [%f, %f]", g.X[0], g.X[15])
	}
	if math.Abs(g.V[0]+4-g.Dv/2) > 1e-14 {
		t.Errorf("v axis start: got %f", g.V[0])
	}
}

func TestWavenumbers(t *testing.T) {
	g, err := New(16, 0, 2*math.Pi, 32, 4)
	if err != nil {
		t.Fatal(err)
	}

	if g.Kx[0] != 0 {
		t.Errorf("kx[0] must be 0, got %f", g.Kx[0])
	}
	// Fundamental mode of a 2*pi box is k=1.
	if math.Abs(g.Kx[1]-1) > 1e-14 {
		t.Errorf("kx[1]: got %f, expected 1", g.Kx[1])
	}
	// The last entry is the negative fundamental.
	if math.Abs(g.Kx[15]+1) > 1e-14 {
		t.Errorf("kx[15]: got %f, expected -1", g.Kx[15])
	}
}

func TestMaxwellianDensity(t *testing.T) {
	g, err := New(32, 0, 2*math.Pi/0.3, 256, 6.4)
	if err != nil {
		t.Fatal(err)
	}

	amp := 1e-2
	f := Maxwellian(g, amp, 0.3)

	for i := range f {
		n := Moment(g, f[i], func(float64) float64 { return 1 })
		want := 1 + amp*math.Cos(0.3*g.X[i])
		if math.Abs(n-want) > 1e-10 {
			t.Fatalf("density at x[%d]: got %.12f, expected %.12f", i, n, want)
		}
	}
}

func TestMomentSymmetry(t *testing.T) {
	g, err := New(8, 0, 1, 256, 6.4)
	if err != nil {
		t.Fatal(err)
	}
	f := Maxwellian(g, 0, 0)

	vbar := Moment(g, f[0], func(v float64) float64 { return v })
	if math.Abs(vbar) > 1e-12 {
		t.Errorf("mean velocity of symmetric Maxwellian: got %g, expected 0", vbar)
	}

	vth2 := Moment(g, f[0], func(v float64) float64 { return v * v })
	if math.Abs(vth2-1) > 1e-3 {
		t.Errorf("thermal variance: got %f, expected ~1", vth2)
	}
}

func TestDistFinite(t *testing.T) {
	f := NewDist(4, 4)
	if !f.IsFinite() {
		t.Error("zero dist must be finite")
	}
	f[2][3] = math.NaN()
	if f.IsFinite() {
		t.Error("NaN must be detected")
	}
}
