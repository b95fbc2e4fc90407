// Package dispersion solves the kinetic dispersion relation of electron
// plasma waves in a Maxwellian plasma. It is used to derive the driver
// frequency and the reference Landau damping rate for a chosen
// wavenumber.
package dispersion

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Z is the plasma dispersion function. It is an entire function, so it
// can be evaluated everywhere from
//
//	Z(z) = i*sqrt(pi)*exp(-z^2) - 2*D(z)
//
// where D is the Dawson integral, computed from its Maclaurin series
// D(z) = sum (-2)^n z^(2n+1) / (2n+1)!!. The series converges quickly
// for the |z| <~ 5 arguments that arise here.
func Z(z complex128) complex128 {
	z2 := z * z

	term := z
	sum := z
	for n := 1; n < 300; n++ {
		term *= -2 * z2 / complex(float64(2*n+1), 0)
		sum += term
		if cmplx.Abs(term) < 1e-17*(1+cmplx.Abs(sum)) {
			break
		}
	}

	return complex(0, math.Sqrt(math.Pi))*cmplx.Exp(-z2) - 2*sum
}

// Zprime is dZ/dz = -2(1 + z Z(z)).
func Zprime(z complex128) complex128 {
	return -2 * (1 + z*Z(z))
}

// EPWRoot returns the complex frequency of the electron plasma wave at
// wavenumber k0, for unit plasma frequency and thermal velocity. The
// real part is the oscillation frequency, the imaginary part the Landau
// damping rate (negative).
//
// The root of 1 - chi * Z'(zeta) is found by Newton iteration in the
// normalized phase velocity zeta = omega/(k0*sqrt(2)), starting from the
// Bohm-Gross frequency.
func EPWRoot(k0 float64) (complex128, error) {
	if k0 <= 0 {
		return 0, fmt.Errorf("dispersion: wavenumber must be positive, got %g", k0)
	}

	chi := 1 / (2 * k0 * k0)
	zeta := complex(math.Sqrt(1+3*k0*k0)/(k0*math.Sqrt2), 0)

	for i := 0; i < 100; i++ {
		zp := Zprime(zeta)
		eps := 1 - complex(chi, 0)*zp

		// Z'' = -2(Z + zeta*Z'), so eps' = 2*chi*(Z + zeta*Z').
		deps := 2 * complex(chi, 0) * (Z(zeta) + zeta*zp)
		if deps == 0 {
			break
		}

		next := zeta - eps/deps
		if cmplx.Abs(next-zeta) < 1e-14 {
			zeta = next
			break
		}
		zeta = next
	}

	omega := zeta * complex(k0*math.Sqrt2, 0)
	if math.IsNaN(real(omega)) || math.IsNaN(imag(omega)) {
		return 0, fmt.Errorf("dispersion: Newton iteration diverged for k0=%g", k0)
	}
	return omega, nil
}
