package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/numfmt"
	"github.com/aalvaropc/brixbalance/internal/usecase"
)

type field struct {
	name  string
	label string
	unit  string
	opts  domain.FieldOptions
	input textinput.Model
}

type model struct {
	theme Theme
	deps  Deps

	fields []field
	focus  int

	balance     domain.Balance
	err         error
	showExplain bool

	cwd        string
	configPath string
	toast      string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	if deps.Solver == nil {
		deps.Solver = usecase.NewSolveBalance(domain.DefaultInputOptions())
	}
	opts := deps.Solver.Options()

	m := model{
		theme:      DefaultTheme(),
		deps:       deps,
		configPath: deps.ConfigPath,
		fields: []field{
			newField(domain.FieldInitialMass, "Initial mass (M1)", "kg", opts.InitialMass),
			newField(domain.FieldInitialPercent, "Initial (X1)", "%", opts.InitialPercent),
			newField(domain.FieldTargetPercent, "Target (X3)", "%", opts.TargetPercent),
		},
	}
	m.fields[0].input.Focus()
	m.recompute()
	return m
}

func newField(name, label, unit string, opts domain.FieldOptions) field {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 16
	in.Width = 12
	in.SetValue(formatInput(opts.Default))
	return field{name: name, label: label, unit: unit, opts: opts, input: in}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, cmdRefreshConfig(m.deps))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case configRefreshedMsg:
		m.cwd = msg.cwd
		if msg.found && m.configPath == "" {
			m.toast = "brix.yaml found in " + msg.root + " (restart to apply)"
		}
		return m, nil

	case configInitDoneMsg:
		if msg.err != nil {
			if m.deps.Logger != nil {
				m.deps.Logger.Error("config.init_failed", "err", msg.err)
			}
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.configPath = msg.path
		m.toast = "Wrote " + msg.path + " (restart to apply)"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab":
			return m, m.setFocus(m.focus - 1)
		case "up":
			m.step(1)
			return m, nil
		case "down":
			m.step(-1)
			return m, nil
		case "e":
			m.showExplain = !m.showExplain
			return m, nil
		case "w":
			if m.configPath != "" {
				m.toast = "Config already at " + m.configPath
				return m, nil
			}
			root := m.cwd
			if root == "" {
				root = "."
			}
			return m, cmdInitConfigHere(m.deps, root)
		case "esc":
			m.toast = ""
			return m, nil
		}

		if msg.Type == tea.KeySpace || (msg.Type == tea.KeyRunes && !numericRunes(msg.Runes)) {
			return m, nil
		}
	}

	var cmd tea.Cmd
	f := &m.fields[m.focus]
	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		m.recompute()
	}
	return m, cmd
}

func (m *model) setFocus(i int) tea.Cmd {
	n := len(m.fields)
	i = ((i % n) + n) % n
	m.fields[m.focus].input.Blur()
	m.focus = i
	cmd := m.fields[m.focus].input.Focus()
	m.fields[m.focus].input.CursorEnd()
	return cmd
}

// step moves the focused field by n steps within its bounds. An unparsable
// value restarts from the field default.
func (m *model) step(n int) {
	f := &m.fields[m.focus]
	v, err := parseInput(f.input.Value())
	if err != nil {
		v = f.opts.Default
	}
	f.input.SetValue(formatInput(f.opts.Stepped(v, n)))
	f.input.CursorEnd()
	m.recompute()
}

func (m *model) recompute() {
	in, err := m.inputs()
	if err == nil {
		m.balance, err = m.deps.Solver.Execute(context.Background(), in)
	}
	if err != nil {
		m.balance = domain.Balance{}
	}
	m.err = err
}

func (m model) inputs() (domain.Inputs, error) {
	var vals [3]float64
	for i, f := range m.fields {
		v, err := parseInput(f.input.Value())
		if err != nil {
			return domain.Inputs{}, &domain.OpError{
				Op:   "tui.parse",
				Kind: domain.KindInvalidInput,
				Err:  fmt.Errorf("field %s: not a number: %w", f.name, domain.ErrInvalidInput),
			}
		}
		vals[i] = v
	}
	return domain.Inputs{InitialMass: vals[0], InitialPercent: vals[1], TargetPercent: vals[2]}, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("brixbalance") + "\n" +
		m.theme.Subtitle.Render("Sugar to add to reach a target °Brix") + "\n"

	var banner string
	if m.configPath != "" {
		banner = m.theme.Help.Render("Config: " + clampString(m.configPath, 60))
	} else {
		banner = m.theme.Help.Render("No brix.yaml loaded (built-in defaults) • w write one here")
	}
	if m.deps.Debug && m.deps.LogPath != "" {
		banner += "\n" + m.theme.Help.Render("Log: "+clampString(m.deps.LogPath, 60))
	}

	var b strings.Builder
	b.WriteString(header + "\n" + banner + "\n\n")
	b.WriteString(m.theme.Card.Render(m.viewForm()) + "\n")
	b.WriteString(m.viewResult() + "\n")

	if m.toast != "" {
		b.WriteString(m.theme.Help.Render(m.toast) + "\n")
	}
	b.WriteString(m.theme.Help.Render("tab/shift+tab move • ↑/↓ step • e explain • w write brix.yaml • q quit"))

	return wrap.Render(b.String())
}

func (m model) viewForm() string {
	rows := make([]string, 0, len(m.fields))
	for i, f := range m.fields {
		label := m.theme.Label.Render(f.label)
		if i == m.focus {
			label = m.theme.Focused.Render("› " + f.label)
		}
		rows = append(rows, label+f.input.View()+" "+f.unit)
	}
	return strings.Join(rows, "\n")
}

func (m model) viewResult() string {
	if m.err != nil {
		return m.theme.Error.Render("✗ " + userMessage(m.err))
	}

	p := m.deps.Precision
	b := m.balance
	in := b.Inputs

	summary := m.theme.Title.Render("Add "+numfmt.Kg(b.SugarMass, p)+" of sugar") + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("to bring %s from %s to %s",
			numfmt.Kg(in.InitialMass, p), numfmt.Percent(in.InitialPercent, p), numfmt.Percent(in.TargetPercent, p)))

	metrics := lipgloss.JoinHorizontal(lipgloss.Top,
		metricPanel(m.theme, "Sugar to add (M2)", numfmt.Kg(b.SugarMass, p)),
		metricPanel(m.theme, "Final pulp (M3)", numfmt.Kg(b.FinalMass, p)),
	)

	out := m.theme.Success.Render(summary) + "\n" + metrics
	if m.showExplain {
		out += "\n" + m.theme.Card.Render(renderSteps(m.theme, b, p))
	}
	return out
}

func parseInput(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numericRunes(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) && r != '.' && r != ',' && r != '-' {
			return false
		}
	}
	return true
}
