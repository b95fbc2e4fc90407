package config

import "sort"

// Presets are named run scenarios. Each entry is a complete Config; the
// derived fields are still filled by Finalize at build time.
var Presets = map[string]*Config{
	"landau-driven": {
		Nx: 32, Nv: 512, Vmax: 6.4, Dt: 0.16, Nt: 500,
		Operator: "lb", Integrator: "leapfrog",
		Driver: Driver{A0: 4e-7, K0: 0.3, Rise: 5, Flat: 10, Fall: 5},
	},
	"landau-seeded": {
		Nx: 32, Nv: 512, Vmax: 6.4, Dt: 0.16, Nt: 500,
		Operator: "lb", Integrator: "leapfrog",
		Driver:       Driver{K0: 0.3},
		Perturbation: Perturbation{Amp: 1e-4},
	},
	"collisional-lb": {
		Nx: 32, Nv: 512, Vmax: 6.4, Dt: 0.16, Nt: 500,
		Nu: 5e-3, Operator: "lb", Integrator: "leapfrog",
		Driver: Driver{A0: 4e-7, K0: 0.3, Rise: 5, Flat: 10, Fall: 5},
	},
	"collisional-dg": {
		Nx: 32, Nv: 512, Vmax: 6.4, Dt: 0.16, Nt: 500,
		Nu: 5e-3, Operator: "dg", Integrator: "leapfrog",
		Driver: Driver{A0: 4e-7, K0: 0.3, Rise: 5, Flat: 10, Fall: 5},
	},
	"nonlinear": {
		Nx: 64, Nv: 1024, Vmax: 6.4, Dt: 0.1, Nt: 1000,
		Operator: "lb", Integrator: "pefrl",
		Driver: Driver{A0: 2e-2, K0: 0.3, Rise: 5, Flat: 10, Fall: 5},
	},
	"accuracy": {
		Nx: 32, Nv: 512, Vmax: 6.4, Dt: 0.05, Nt: 1600,
		Operator: "lb", Integrator: "h-sixth",
		Driver: Driver{A0: 4e-7, K0: 0.3, Rise: 5, Flat: 10, Fall: 5},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown. The
// copy keeps the shared table immutable under later flag overrides.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
