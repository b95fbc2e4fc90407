// Package config defines the run configuration: grid sizes, timestep,
// collision and integrator selection, driver pulse, and the initial
// perturbation. Configuration errors are fatal and reported before the
// loop starts.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/vlasim/internal/dispersion"
	"github.com/san-kum/vlasim/internal/fokkerplanck"
	"github.com/san-kum/vlasim/internal/integrate"
)

type Driver struct {
	A0 float64 `yaml:"a0"`
	K0 float64 `yaml:"k0"`
	// W0 == 0 selects the resonant electron-plasma-wave frequency for
	// K0 from the dispersion relation.
	W0    float64 `yaml:"w0"`
	Start float64 `yaml:"start"`
	Rise  float64 `yaml:"rise"`
	Flat  float64 `yaml:"flat"`
	Fall  float64 `yaml:"fall"`
}

type Perturbation struct {
	Amp float64 `yaml:"amp"`
	// K == 0 inherits the driver wavenumber.
	K float64 `yaml:"k"`
}

type Config struct {
	Nx   int     `yaml:"nx"`
	Xmin float64 `yaml:"xmin"`
	// Xmax == 0 derives a box holding exactly one driver wavelength,
	// 2*pi/k0.
	Xmax float64 `yaml:"xmax"`
	Nv   int     `yaml:"nv"`
	Vmax float64 `yaml:"vmax"`

	Dt float64 `yaml:"dt"`
	Nt int     `yaml:"nt"`

	Nu       float64 `yaml:"nu"`
	Operator string  `yaml:"operator"`

	Integrator string `yaml:"integrator"`

	Driver       Driver       `yaml:"driver"`
	Perturbation Perturbation `yaml:"perturbation"`
}

func Default() *Config {
	return &Config{
		Nx:         32,
		Xmin:       0,
		Nv:         512,
		Vmax:       6.4,
		Dt:         0.16,
		Nt:         500,
		Nu:         0,
		Operator:   "lb",
		Integrator: "leapfrog",
		Driver: Driver{
			A0:    4e-7,
			K0:    0.3,
			Start: 0,
			Rise:  5,
			Flat:  10,
			Fall:  5,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Finalize fills the derived parameters (box size from the driver
// wavenumber, resonant driver frequency, perturbation wavenumber) and
// validates the result.
func (c *Config) Finalize() error {
	if c.Driver.K0 > 0 {
		if c.Xmax == 0 {
			c.Xmax = c.Xmin + 2*math.Pi/c.Driver.K0
		}
		if c.Perturbation.K == 0 {
			c.Perturbation.K = c.Driver.K0
		}
		if c.Driver.W0 == 0 && c.Driver.A0 != 0 {
			root, err := dispersion.EPWRoot(c.Driver.K0)
			if err != nil {
				return err
			}
			c.Driver.W0 = real(root)
		}
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.Nx < 4 || c.Nv < 4 {
		return fmt.Errorf("config: nx and nv must be at least 4, got %d, %d", c.Nx, c.Nv)
	}
	if c.Xmax <= c.Xmin {
		return fmt.Errorf("config: xmax (%g) must exceed xmin (%g)", c.Xmax, c.Xmin)
	}
	if c.Vmax <= 0 {
		return fmt.Errorf("config: vmax must be positive, got %g", c.Vmax)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Nt <= 0 {
		return fmt.Errorf("config: nt must be positive, got %d", c.Nt)
	}
	if c.Nu < 0 {
		return fmt.Errorf("config: nu must be non-negative, got %g", c.Nu)
	}
	if _, err := fokkerplanck.KindFromString(c.Operator); err != nil {
		return err
	}

	known := false
	for _, name := range integrate.Names() {
		if c.Integrator == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("config: unknown integrator %q (want one of %v)", c.Integrator, integrate.Names())
	}
	return nil
}
