package diagnostics

import (
	"math"
	"testing"

	"github.com/san-kum/vlasim/internal/grid"
	"github.com/san-kum/vlasim/internal/sim"
)

func TestFieldHistoryModeAmplitude(t *testing.T) {
	const nx = 32
	x := make([]float64, nx)
	e := make([]float64, nx)
	for i := range x {
		x[i] = 2 * math.Pi * float64(i) / nx
		e[i] = 0.25 * math.Cos(x[i])
	}

	h := &FieldHistory{}
	h.OnStep(sim.Snapshot{Step: 1, Time: 0.5, E: e})

	if len(h.Amp) != 1 {
		t.Fatalf("recorded %d samples, want 1", len(h.Amp))
	}
	if math.Abs(h.Amp[0]-0.25) > 1e-12 {
		t.Errorf("mode amplitude %g, want 0.25", h.Amp[0])
	}
	if math.Abs(h.Re[0]-0.25) > 1e-12 {
		t.Errorf("mode real part %g, want 0.25", h.Re[0])
	}
	if h.Times[0] != 0.5 {
		t.Errorf("time %g, want 0.5", h.Times[0])
	}
}

func TestFieldHistoryKeepFields(t *testing.T) {
	h := &FieldHistory{KeepFields: true}
	e := []float64{1, 2, 3, 4}
	h.OnStep(sim.Snapshot{E: e})

	if len(h.Fields) != 1 {
		t.Fatalf("no field stored")
	}
	e[0] = 99
	if h.Fields[0][0] != 1 {
		t.Error("stored field aliases the live slice")
	}
}

func TestDampingRateMonotoneDecay(t *testing.T) {
	const gamma = -0.0126
	var times, amps []float64
	for i := 0; i < 500; i++ {
		tm := float64(i) * 0.1
		times = append(times, tm)
		amps = append(amps, 1e-5*math.Exp(gamma*tm))
	}

	got := DampingRate(times, amps)
	if math.Abs(got-gamma) > 1e-6 {
		t.Errorf("rate %g, want %g", got, gamma)
	}
}

func TestDampingRateOscillatingEnvelope(t *testing.T) {
	const gamma = -0.05
	var times, amps []float64
	for i := 0; i < 1000; i++ {
		tm := float64(i) * 0.1
		times = append(times, tm)
		amps = append(amps, math.Exp(gamma*tm)*math.Abs(math.Cos(1.2*tm)))
	}

	got := DampingRate(times, amps)
	if math.Abs(got-gamma) > 0.1*math.Abs(gamma) {
		t.Errorf("rate %g, want %g within 10%%", got, gamma)
	}
}

func TestDampingRateDegenerateInput(t *testing.T) {
	if got := DampingRate([]float64{0, 1}, []float64{1, 0.9}); got != 0 {
		t.Errorf("short series: got %g, want 0", got)
	}
	if got := DampingRate([]float64{0, 1, 2}, []float64{1, 1}); got != 0 {
		t.Errorf("mismatched lengths: got %g, want 0", got)
	}
}

func TestOscillationFrequency(t *testing.T) {
	const omega = 1.16
	var times, re []float64
	for i := 0; i < 2048; i++ {
		tm := float64(i) * 0.1
		times = append(times, tm)
		re = append(re, math.Cos(omega*tm))
	}

	got := OscillationFrequency(times, re)
	if math.Abs(got-omega) > 0.05 {
		t.Errorf("frequency %g, want %g", got, omega)
	}
}

// A short record whose true frequency falls between FFT bins: 350
// samples at dt=0.1 pad to 512, giving a bin spacing of ~0.123, so a
// raw argmax could only ever report 1.1045 or 1.2272 here. The
// interpolated estimate must land much closer than one bin.
func TestOscillationFrequencyOffBin(t *testing.T) {
	const omega = 1.1598
	var times, re []float64
	for i := 0; i < 350; i++ {
		tm := 25.0 + float64(i)*0.1
		times = append(times, tm)
		re = append(re, math.Exp(-0.0126*tm)*math.Cos(omega*tm))
	}

	got := OscillationFrequency(times, re)
	if math.Abs(got-omega) > 0.03 {
		t.Errorf("frequency %g, want %g within 0.03", got, omega)
	}
}

func TestHealthUniformMaxwellian(t *testing.T) {
	g, err := grid.New(8, 0, 2*math.Pi, 256, 6)
	if err != nil {
		t.Fatal(err)
	}
	f := grid.Maxwellian(g, 0, 1)

	h := NewHealth(g)
	h.OnStep(sim.Snapshot{Time: 0, F: f})

	if math.Abs(h.Density[0]-1) > 1e-10 {
		t.Errorf("density %g, want 1", h.Density[0])
	}
	if math.Abs(h.Momentum[0]) > 1e-10 {
		t.Errorf("momentum %g, want 0", h.Momentum[0])
	}
	// Unit thermal velocity gives <v^2> = 1.
	if math.Abs(h.Thermal[0]-1) > 1e-3 {
		t.Errorf("thermal moment %g, want ~1", h.Thermal[0])
	}
}
