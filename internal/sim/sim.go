// Package sim drives the time loop: it repeats the configured stepper
// over nt steps, applies the collision operator once per step, validates
// the state, and hands read-only snapshots to observers.
package sim

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/vlasim/internal/driver"
	"github.com/san-kum/vlasim/internal/field"
	"github.com/san-kum/vlasim/internal/fokkerplanck"
	"github.com/san-kum/vlasim/internal/grid"
	"github.com/san-kum/vlasim/internal/integrate"
)

// Snapshot is the per-step state handed to observers. Observers must
// treat E and F as read-only; they alias the live simulation state.
type Snapshot struct {
	Step int
	Time float64
	E    []float64
	F    grid.Dist
}

// Observer receives a snapshot after every step. Observer failures are
// isolated from the loop: a panicking observer is reported and skipped,
// never aborting the simulation.
type Observer interface {
	OnStep(s Snapshot)
}

type Runner struct {
	g         *grid.Grid
	stepper   integrate.Stepper
	collide   fokkerplanck.Operator
	drv       *driver.Driver
	dt        float64
	nt        int
	observers []Observer
}

func New(g *grid.Grid, stepper integrate.Stepper, collide fokkerplanck.Operator, drv *driver.Driver, dt float64, nt int) *Runner {
	return &Runner{
		g:       g,
		stepper: stepper,
		collide: collide,
		drv:     drv,
		dt:      dt,
		nt:      nt,
	}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Result holds the final state of a run. Time-series data is collected
// by observers, not here.
type Result struct {
	Steps int
	Time  float64
	E     []float64
	F     grid.Dist
}

// Run evolves f0 for nt steps. Each step is atomic: on a non-finite
// state the partially advanced step is discarded and the run aborts with
// a StepError naming the step and operator. Cancellation is checked
// between steps; a run is the unit of cancellation.
func (r *Runner) Run(ctx context.Context, f0 grid.Dist) (*Result, error) {
	f := f0.Clone()
	e := field.Total(r.drv.Force(0), f, r.g)

	res := &Result{E: e, F: f}
	r.notify(Snapshot{Step: 0, Time: 0, E: e, F: f})

	for i := 0; i < r.nt; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		t := float64(i) * r.dt

		e, f = r.stepper.Step(e, f, t)
		if !finite(e) || !f.IsFinite() {
			return res, &StepError{Step: i, Time: t, Op: r.stepper.Name(), Wrapped: ErrNonFinite}
		}

		if r.collide.Nu > 0 {
			f = r.collide.Apply(f, r.g, r.dt)
			if !f.IsFinite() {
				return res, &StepError{Step: i, Time: t, Op: "fokker-planck", Wrapped: ErrNonFinite}
			}
		}

		res.Steps = i + 1
		res.Time = t + r.dt
		res.E = e
		res.F = f

		r.notify(Snapshot{Step: i + 1, Time: t + r.dt, E: e, F: f})
	}

	return res, nil
}

func (r *Runner) notify(s Snapshot) {
	for _, o := range r.observers {
		safeNotify(o, s)
	}
}

func safeNotify(o Observer, s Snapshot) {
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(os.Stderr, "vlasim: observer %T failed at step %d: %v\n", o, s.Step, p)
		}
	}()
	o.OnStep(s)
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
