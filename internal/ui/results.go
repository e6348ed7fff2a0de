package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hwbench/internal/benchmark"
	"hwbench/internal/report"
)

// ResultsModel shows a finished run and exits on any key.
type ResultsModel struct {
	report report.Report
	table  table.Model
	final  benchmark.Result
}

func NewResultsModel(r report.Report) ResultsModel {
	columns := []table.Column{
		{Title: "BENCHMARK", Width: 18},
		{Title: "RESULT", Width: 16},
		{Title: "UNIT", Width: 6},
	}

	var rows []table.Row
	final := benchmark.NotRun
	for _, m := range r.Table.Metrics() {
		if m.Name == benchmark.MetricFinal {
			final = m.Value
			continue
		}
		rows = append(rows, table.Row{report.Label(m.Name), m.Value.String(), string(m.Unit)})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+3),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ResultsModel{report: r, table: t, final: final}
}

func (m ResultsModel) Init() tea.Cmd {
	return nil
}

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "down", "k", "j":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		return m, nil
	}
	return m, nil
}

func (m ResultsModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("hwbench"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n%s, %d logical cores, %d MB RAM\n\n",
		m.report.System.CPU, m.report.System.OS, m.report.System.LogicalCores, m.report.System.RAMTotalMB)
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(scoreStyle.Render("FINAL SCORE: " + m.final.String()))
	b.WriteString(helpStyle.Render("press any key to exit"))
	b.WriteString("\n")
	return b.String()
}
