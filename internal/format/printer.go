// Package format renders fetched records for the terminal. The table format
// is the default; json and yaml are available through cli.output_format.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Output formats accepted in the configuration.
const (
	Table = "table"
	JSON  = "json"
	YAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Printer renders records in the configured output format.
type Printer struct {
	format string
	out    io.Writer
}

// New creates a Printer. Unknown formats fall back to the table format.
func New(format string, out io.Writer) *Printer {
	switch format {
	case JSON, YAML:
	default:
		format = Table
	}
	return &Printer{format: format, out: out}
}

// Print renders the records. For the table format, headers and rows describe
// the columns; for json and yaml, v is marshaled instead.
func (p *Printer) Print(v any, headers []string, rows [][]string) error {
	switch p.format {
	case JSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.out, string(data))
		return err
	case YAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(p.out, string(data))
		return err
	default:
		return p.table(headers, rows)
	}
}

func (p *Printer) table(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(p.out, dimStyle.Render("No results."))
		return err
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	_, err := fmt.Fprint(p.out, b.String())
	return err
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
