// Package diagnostics consumes simulation snapshots and derives wave
// metrics from them. Nothing here feeds back into the solver; a failed
// diagnostic never stops a run.
package diagnostics

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/vlasim/internal/sim"
)

// FieldHistory records the time history of the first spatial Fourier
// mode of the electric field, the standard probe for a single driven or
// seeded wave.
type FieldHistory struct {
	Times []float64
	Amp   []float64 // |E_k1|, physical amplitude
	Re    []float64 // Re(E_k1), for frequency estimation

	// KeepFields additionally stores each step's full field.
	KeepFields bool
	Fields     [][]float64
}

func (h *FieldHistory) OnStep(s sim.Snapshot) {
	nx := len(s.E)
	row := make([]complex128, nx)
	for i, e := range s.E {
		row[i] = complex(e, 0)
	}
	ek := fft.FFT(row)

	// A real cosine of amplitude a at mode 1 shows up as a spectral
	// coefficient of magnitude a*nx/2.
	mode := ek[1] * complex(2/float64(nx), 0)

	h.Times = append(h.Times, s.Time)
	h.Amp = append(h.Amp, cmplx.Abs(mode))
	h.Re = append(h.Re, real(mode))

	if h.KeepFields {
		e := make([]float64, nx)
		copy(e, s.E)
		h.Fields = append(h.Fields, e)
	}
}

// DampingRate estimates the exponential rate of the amplitude envelope
// as the least-squares slope of log|amp| over the last three quarters of
// the series. For an oscillating signal the fit runs over the envelope
// peaks; for a monotone signal, over every sample.
func DampingRate(times, amps []float64) float64 {
	if len(times) < 4 || len(times) != len(amps) {
		return 0
	}

	start := len(times) / 4
	times = times[start:]
	amps = amps[start:]

	pt, pa := peaks(times, amps)
	if len(pt) < 4 {
		pt, pa = times, amps
	}

	logs := make([]float64, 0, len(pa))
	ts := make([]float64, 0, len(pa))
	for i, a := range pa {
		if a > 0 {
			logs = append(logs, math.Log(a))
			ts = append(ts, pt[i])
		}
	}
	if len(ts) < 2 {
		return 0
	}

	_, slope := stat.LinearRegression(ts, logs, nil, false)
	return slope
}

func peaks(times, amps []float64) ([]float64, []float64) {
	var pt, pa []float64
	for i := 1; i < len(amps)-1; i++ {
		if amps[i] >= amps[i-1] && amps[i] > amps[i+1] {
			pt = append(pt, times[i])
			pa = append(pa, amps[i])
		}
	}
	return pt, pa
}

// OscillationFrequency estimates the dominant angular frequency of the
// recorded mode by locating the power-spectrum peak of its real part.
// The peak location is refined by parabolic interpolation over the peak
// bin and its two neighbors, so the estimate is not quantized to the
// bin spacing 2*pi/(n*dt) of the padded transform.
func OscillationFrequency(times, re []float64) float64 {
	if len(times) < 4 || len(times) != len(re) {
		return 0
	}
	dt := times[1] - times[0]
	if dt <= 0 {
		return 0
	}

	n := 1
	for n < len(re) {
		n *= 2
	}
	padded := make([]complex128, n)
	for i, v := range re {
		padded[i] = complex(v, 0)
	}
	spec := fft.FFT(padded)

	maxPow := 0.0
	maxIdx := 0
	for i := 1; i < n/2; i++ {
		p := cmplx.Abs(spec[i])
		if p > maxPow {
			maxPow = p
			maxIdx = i
		}
	}

	peak := float64(maxIdx)
	if maxIdx > 0 && maxIdx < n/2-1 {
		a := cmplx.Abs(spec[maxIdx-1])
		b := maxPow
		c := cmplx.Abs(spec[maxIdx+1])
		if denom := a - 2*b + c; denom != 0 {
			peak += 0.5 * (a - c) / denom
		}
	}

	return 2 * math.Pi * peak / (float64(n) * dt)
}
