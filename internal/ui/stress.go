package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"hwbench/internal/benchmark"
	"hwbench/internal/clock"
)

// StressConfig wires a stress session.
type StressConfig struct {
	Duration time.Duration
	// Cycle runs one load cycle and returns its throughput.
	Cycle func() benchmark.Result
	// Temperature reads the current temperature, negative when unknown.
	Temperature func() float64
	// OnCycle is called after every cycle, e.g. to export metrics.
	OnCycle func(mops benchmark.Result, tempC float64)
	Clock   clock.Clock
}

type stressCycleMsg struct {
	mops  benchmark.Result
	tempC float64
}

// StressModel repeatedly loads the CPU and shows a live temperature
// readout until the duration elapses.
type StressModel struct {
	cfg      StressConfig
	start    time.Time
	deadline time.Time
	spinner  spinner.Model

	lastMops benchmark.Result
	tempC    float64
	cycles   int
	done     bool
	quit     bool
}

func NewStressModel(cfg StressConfig) StressModel {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = valueStyle

	start := cfg.Clock.Now()
	return StressModel{
		cfg:      cfg,
		start:    start,
		deadline: start.Add(cfg.Duration),
		spinner:  s,
		tempC:    -1,
	}
}

func (m StressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runCycle())
}

func (m StressModel) runCycle() tea.Cmd {
	cycle, temp := m.cfg.Cycle, m.cfg.Temperature
	return func() tea.Msg {
		msg := stressCycleMsg{mops: benchmark.NotRun, tempC: -1}
		if cycle != nil {
			msg.mops = cycle()
		}
		if temp != nil {
			msg.tempC = temp()
		}
		return msg
	}
}

func (m StressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		}
		return m, nil

	case stressCycleMsg:
		m.cycles++
		m.lastMops = msg.mops
		m.tempC = msg.tempC
		if m.cfg.OnCycle != nil {
			m.cfg.OnCycle(msg.mops, msg.tempC)
		}
		if !m.cfg.Clock.Now().Before(m.deadline) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.runCycle()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m StressModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("STRESS MODE"))
	b.WriteString("\n\n")

	elapsed := m.cfg.Clock.Now().Sub(m.start).Truncate(time.Second)
	remaining := m.deadline.Sub(m.cfg.Clock.Now()).Truncate(time.Second)
	if remaining < 0 {
		remaining = 0
	}

	rows := []string{
		labelStyle.Render("Temp") + formatTemp(m.tempC),
		labelStyle.Render("Integer") + valueStyle.Render(formatMops(m.lastMops)),
		labelStyle.Render("Cycles") + valueStyle.Render(fmt.Sprintf("%d", m.cycles)),
		labelStyle.Render("Elapsed") + valueStyle.Render(elapsed.String()),
		labelStyle.Render("Remaining") + valueStyle.Render(remaining.String()),
	}
	b.WriteString(paneStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	if m.done {
		b.WriteString(scoreStyle.Render("Stress run complete"))
	} else {
		b.WriteString(m.spinner.View() + " running")
	}
	b.WriteString(helpStyle.Render("q: quit"))
	b.WriteString("\n")
	return b.String()
}

// Cycles returns the number of completed cycles.
func (m StressModel) Cycles() int { return m.cycles }

// Done reports whether the duration elapsed.
func (m StressModel) Done() bool { return m.done }

// Interrupted reports whether the user quit early.
func (m StressModel) Interrupted() bool { return m.quit }

func formatTemp(c float64) string {
	if c < 0 {
		return valueStyle.Render("n/a")
	}
	s := fmt.Sprintf("%.1f C", c)
	if c >= hotThreshold {
		return hotStyle.Render(s)
	}
	return valueStyle.Render(s)
}

func formatMops(r benchmark.Result) string {
	if !r.Valid() {
		return r.String()
	}
	return r.String() + " Mops"
}
