package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/eos/internal/eos"
)

var explorerDomains = []eos.Domain{eos.PH, eos.PT, eos.PS}

// DefaultProperties is the property list shown by the explorer.
var DefaultProperties = []string{
	"T", "h", "rho", "s", "u", "cp", "cv", "w",
	"d_rho_d_p_h", "d_rho_d_h_p", "d_h_d_T_p",
}

// additive step per input; pressure is scaled instead
var inputSteps = map[eos.Property]float64{
	eos.H: 1e4,
	eos.T: 5,
	eos.S: 50,
}

const pressureFactor = 1.05

const historyLen = 60

type explorer struct {
	eng    *eos.Engine
	props  []string
	dom    int
	x, y   float64
	cursor int
	theme  int

	editing bool
	editBuf string
	status  string

	rows    []Row
	history []float64
	width   int
}

// NewExplorer returns a Bubble Tea model exploring the state (p, h) of
// eng. props defaults to DefaultProperties.
func NewExplorer(eng *eos.Engine, theme Theme, p, h float64, props []string) tea.Model {
	if len(props) == 0 {
		props = DefaultProperties
	}
	m := explorer{eng: eng, props: props, x: p, y: h, width: 80}
	for i, t := range themes {
		if t.Name == theme.Name {
			m.theme = i
		}
	}
	m.evaluate()
	return m
}

func (m explorer) domain() eos.Domain { return explorerDomains[m.dom] }

func (m explorer) Init() tea.Cmd { return nil }

func (m explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m explorer) handleKey(msg tea.KeyMsg) (explorer, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < 1 {
			m.cursor++
		}
	case "left", "h":
		m.step(-1)
	case "right", "l":
		m.step(1)
	case "enter":
		m.editing, m.editBuf = true, ""
	case "d":
		m.switchDomain((m.dom + 1) % len(explorerDomains))
	case "t":
		m.theme = (m.theme + 1) % len(themes)
	}
	return m, nil
}

func (m explorer) editKey(msg tea.KeyMsg) (explorer, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v, err := strconv.ParseFloat(m.editBuf, 64)
		if err != nil {
			m.status = fmt.Sprintf("not a number: %q", m.editBuf)
		} else {
			m.set(v)
		}
		m.editing, m.editBuf = false, ""
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-+eE") {
			m.editBuf += s
		}
	}
	return m, nil
}

func (m *explorer) set(v float64) {
	if m.cursor == 0 {
		m.x = v
	} else {
		m.y = v
	}
	m.status = ""
	m.evaluate()
}

func (m *explorer) step(dir float64) {
	if m.cursor == 0 {
		if dir > 0 {
			m.set(m.x * pressureFactor)
		} else {
			m.set(m.x / pressureFactor)
		}
		return
	}
	m.set(m.y + dir*inputSteps[m.domain().Inputs()[1]])
}

// switchDomain keeps the thermodynamic state and re-expresses it in the
// new domain's second input.
func (m *explorer) switchDomain(next int) {
	target := explorerDomains[next].Inputs()[1]
	v, c := m.eng.Compute(m.domain(), target, m.x, m.y)
	if c.Failed() {
		m.status = fmt.Sprintf("cannot express state in %s: %s", explorerDomains[next], m.eng.DescribeError(c))
		return
	}
	m.dom, m.y = next, v
	m.status = ""
	m.evaluate()
}

func (m *explorer) evaluate() {
	m.rows = Evaluate(m.eng, m.domain(), m.x, m.y, m.props)
	if len(m.rows) > 0 && !m.rows[0].Code.Failed() {
		m.history = append(m.history, m.rows[0].Value)
		if len(m.history) > historyLen {
			m.history = m.history[len(m.history)-historyLen:]
		}
	}
}

func (m explorer) View() string {
	t := themes[m.theme]
	title := Title.Foreground(t.Primary)
	info := m.eng.Info()

	var b strings.Builder
	b.WriteString("\n  " + title.Render(strings.ToUpper(info.Fluid)) + "  " + Subtle.Render(info.Equation+" · "+m.domain().String()) + "\n\n")

	for i, prop := range m.domain().Inputs() {
		v := m.x
		if i == 1 {
			v = m.y
		}
		val := FormatValue(v)
		if m.editing && i == m.cursor {
			val = m.editBuf + "_"
		}
		marker := "  "
		if i == m.cursor {
			marker = title.Render("▸ ")
		}
		b.WriteString("  " + marker + MetricLabel.Render(fmt.Sprintf("%-4s", prop)) + MetricValue.Render(fmt.Sprintf("%16s", val)) + "\n")
	}
	b.WriteString("  " + Separator(min(m.width-4, 60)) + "\n")
	b.WriteString(Panel.BorderForeground(t.Muted).Render(strings.TrimRight(Table(t, m.rows, -1), "\n")) + "\n")

	if len(m.history) > 1 {
		b.WriteString("\n  " + MetricLabel.Render(m.props[0]+" ") + SparklineChart(m.history, min(historyLen, max(m.width-10, 10))) + "\n")
	}
	b.WriteString("\n  worst " + SeverityBadge(t, Worst(m.rows)))
	if m.status != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Bad).Render(m.status))
	}
	b.WriteString("\n\n  " + KeyHint.Render("j/k select  h/l adjust  enter type  d domain  t theme  q quit") + "\n")
	return b.String()
}
