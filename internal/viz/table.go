package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/eos/internal/eos"
)

// Row is one evaluated property.
type Row struct {
	Name  string
	Value float64
	Code  eos.Code
	Note  string // description of a failed or degraded code
}

// Evaluate computes each property at a two-input state. Unknown names
// produce a row carrying CodeNotImplemented.
func Evaluate(eng *eos.Engine, dom eos.Domain, x, y float64, names []string) []Row {
	rows := make([]Row, 0, len(names))
	var h float64
	hc := eos.CodeGood
	if !dom.OneInput() {
		h, hc = eng.Enthalpy(dom, x, y)
	}
	for _, name := range names {
		row := Row{Name: name}
		prop, err := eos.ParseProperty(name)
		switch {
		case err != nil:
			row.Code, row.Note = eos.CodeNotImplemented, err.Error()
		case dom.OneInput():
			row.Value, row.Code = eng.Compute1(dom, prop, x)
		case hc.Failed():
			row.Code = hc
		default:
			row.Value, row.Code = eng.ComputeFromEnthalpy(dom, prop, x, y, h)
			if dom != eos.PH {
				row.Code = eos.WorseCode(hc, row.Code)
			}
		}
		if row.Note == "" && row.Code != eos.CodeGood {
			row.Note = eng.DescribeError(row.Code)
		}
		rows = append(rows, row)
	}
	return rows
}

// Worst returns the highest severity among rows.
func Worst(rows []Row) eos.Severity {
	s := eos.Good
	for _, r := range rows {
		s = eos.WorstSeverity(s, r.Code.Severity)
	}
	return s
}

// Table renders rows as aligned name, value, severity and note columns.
// The row at cursor, if any, is highlighted.
func Table(t Theme, rows []Row, cursor int) string {
	width := 8
	for _, r := range rows {
		width = max(width, len(r.Name))
	}
	name := lipgloss.NewStyle().Foreground(t.Text)
	muted := lipgloss.NewStyle().Foreground(t.Muted)
	selected := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("  %-*s  %16s  %-5s", width, "property", "value", "code")) + "\n")
	for i, r := range rows {
		marker, style := "  ", name
		if i == cursor {
			marker, style = selected.Render("▸ "), selected
		}
		value := FormatValue(r.Value)
		if r.Code.Failed() {
			value = "-"
		}
		line := marker + style.Render(fmt.Sprintf("%-*s", width, r.Name)) + "  " +
			MetricValue.Render(fmt.Sprintf("%16s", value)) + "  " + SeverityBadge(t, r.Code.Severity)
		if r.Note != "" {
			line += "  " + muted.Render(r.Note)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
