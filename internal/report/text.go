package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)
)

// WriteText writes a styled plain-terminal report.
func WriteText(w io.Writer, r Report) error {
	cpu, memory, final := split(r.Table)

	fmt.Fprintln(w, titleStyle.Render("hwbench"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "OS:   %s\n", r.System.OS)
	fmt.Fprintf(w, "CPU:  %s (%d logical cores)\n", r.System.CPU, r.System.LogicalCores)
	fmt.Fprintf(w, "RAM:  %d MB (%d MB used)\n", r.System.RAMTotalMB, r.System.RAMUsedMB)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, sectionStyle.Render("CPU"))
	for _, m := range cpu {
		fmt.Fprintf(tw, "  %s\t%s\n", Label(m.Name), formatValue(m))
	}
	fmt.Fprintln(tw, sectionStyle.Render("MEMORY"))
	for _, m := range memory {
		fmt.Fprintf(tw, "  %s\t%s\n", Label(m.Name), formatValue(m))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, scoreStyle.Render("FINAL SCORE: "+final.String()))
	return err
}

// Write dispatches on format. FormatTUI is handled by the ui package and
// is rejected here.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatText, "":
		return WriteText(w, r)
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	}
	return fmt.Errorf("unsupported report format %q", format)
}
