// Package driver provides the external ponderomotive force applied to
// the electrons: a traveling wave cos(k0 x - w0 t) under a smooth
// rise/flat/fall temporal envelope.
package driver

import "math"

// Pulse describes one driver pulse. The envelope ramps from 0 to A0
// over Rise, holds for Flat, and ramps back down over Fall, starting at
// Start.
type Pulse struct {
	A0 float64
	K0 float64
	W0 float64

	Start float64
	Rise  float64
	Flat  float64
	Fall  float64
}

// smoothstep is the 5th-order polynomial that goes from 0 to 1 with
// zero first and second derivatives at both ends.
func smoothstep(u float64) float64 {
	return u * u * u * (6*u*u - 15*u + 10)
}

// Envelope returns the pulse amplitude at time t.
func (p Pulse) Envelope(t float64) float64 {
	end := p.Start + p.Rise + p.Flat + p.Fall
	if t <= p.Start || t >= end {
		return 0
	}

	endRise := p.Start + p.Rise
	endFlat := endRise + p.Flat

	switch {
	case t <= endRise:
		return p.A0 * smoothstep((t-p.Start)/p.Rise)
	case t < endFlat:
		return p.A0
	default:
		return p.A0 * (1 - smoothstep((t-endFlat)/p.Fall))
	}
}

// Driver evaluates the total driver field on a fixed spatial axis. A
// Driver with no pulses evaluates to zero everywhere.
type Driver struct {
	x      []float64
	pulses []Pulse
}

func New(x []float64, pulses ...Pulse) *Driver {
	return &Driver{x: x, pulses: pulses}
}

// Force returns the driver field at time t. The returned slice is newly
// allocated each call; callers may mutate it.
func (d *Driver) Force(t float64) []float64 {
	e := make([]float64, len(d.x))
	for _, p := range d.pulses {
		env := p.Envelope(t)
		if env == 0 {
			continue
		}
		for i, x := range d.x {
			e[i] += env * math.Cos(p.K0*x-p.W0*t)
		}
	}
	return e
}
