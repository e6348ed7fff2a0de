package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// WriteMarkdown writes the report as a Markdown document.
func WriteMarkdown(w io.Writer, r Report) error {
	var b bytes.Buffer
	cpu, memory, final := split(r.Table)

	b.WriteString("# hwbench results\n\n")
	b.WriteString("## System\n")
	fmt.Fprintf(&b, "- OS: %s\n", r.System.OS)
	fmt.Fprintf(&b, "- CPU: %s\n", r.System.CPU)
	fmt.Fprintf(&b, "- Logical cores: %d\n", r.System.LogicalCores)
	fmt.Fprintf(&b, "- RAM: %d MB\n", r.System.RAMTotalMB)
	fmt.Fprintf(&b, "- RAM at idle: %d MB\n\n", r.System.RAMUsedMB)

	b.WriteString("## CPU\n")
	for _, m := range cpu {
		fmt.Fprintf(&b, "- %s: %s\n", Label(m.Name), formatValue(m))
	}

	b.WriteString("\n## Memory\n")
	for _, m := range memory {
		fmt.Fprintf(&b, "- %s: %s\n", Label(m.Name), formatValue(m))
	}

	fmt.Fprintf(&b, "\n# FINAL SCORE: %s\n", final)

	_, err := w.Write(b.Bytes())
	return err
}

// RenderMarkdown renders Markdown for a terminal using glamour.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
