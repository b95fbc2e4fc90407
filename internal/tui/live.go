// Package tui shows a live terminal view of a running simulation: step
// progress and the field-mode amplitude trace.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/vlasim/internal/diagnostics"
	"github.com/san-kum/vlasim/internal/grid"
	"github.com/san-kum/vlasim/internal/sim"
)

const maxTrace = 400

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

type stepMsg struct {
	step int
	time float64
	amp  float64
}

type doneMsg struct{ err error }

type model struct {
	nt     int
	step   int
	time   float64
	amps   []float64
	err    error
	cancel context.CancelFunc
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, nil
		}
	case stepMsg:
		m.step = msg.step
		m.time = msg.time
		m.amps = append(m.amps, msg.amp)
		if len(m.amps) > maxTrace {
			m.amps = m.amps[len(m.amps)-maxTrace:]
		}
		return m, nil
	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	s := titleStyle.Render("vlasim") + "\n\n"

	if len(m.amps) > 1 {
		s += asciigraph.Plot(m.amps,
			asciigraph.Height(12),
			asciigraph.Width(72),
			asciigraph.Caption("|E_k1| vs time"),
		) + "\n\n"
	}

	s += statusStyle.Render(fmt.Sprintf("step %d/%d  t=%.2f  (q to cancel)", m.step, m.nt, m.time))
	if m.err != nil && m.err != context.Canceled {
		s += "\n" + errStyle.Render(m.err.Error())
	}
	return s + "\n"
}

// relay feeds snapshots both to the shared field-history diagnostic and
// to the running program.
type relay struct {
	hist *diagnostics.FieldHistory
	p    *tea.Program
}

func (r *relay) OnStep(s sim.Snapshot) {
	r.hist.OnStep(s)
	r.p.Send(stepMsg{step: s.Step, time: s.Time, amp: r.hist.Amp[len(r.hist.Amp)-1]})
}

// Run executes the runner under a live view. The returned history holds
// the recorded field trace for storage. Pressing q cancels the run.
func Run(ctx context.Context, r *sim.Runner, f0 grid.Dist, nt int) (*sim.Result, *diagnostics.FieldHistory, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := model{nt: nt, cancel: cancel}
	p := tea.NewProgram(m)

	hist := &diagnostics.FieldHistory{}
	r.AddObserver(&relay{hist: hist, p: p})

	var (
		res    *sim.Result
		runErr error
	)
	go func() {
		res, runErr = r.Run(ctx, f0)
		p.Send(doneMsg{err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		return res, hist, err
	}
	return res, hist, runErr
}
