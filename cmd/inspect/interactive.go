package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/internal/ledgertest"
	"github.com/wippyai/ledger-types/schema"
	"github.com/wippyai/ledger-types/template"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	ledger   *ledgertest.Ledger
	registry *template.Registry
	result   string
	entries  []choiceEntry
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type choiceEntry struct {
	choice     template.ChoiceDescriptor
	templateID string
	argType    string
	resultType string
}

type modelState int

const (
	stateSelectChoice modelState = iota
	stateInputArgs
	stateShowResult
)

const (
	inputContract = iota
	inputArgument
)

func newInteractiveModel(r *template.Registry, l *ledgertest.Ledger) *interactiveModel {
	return &interactiveModel{
		ledger:   l,
		registry: r,
		state:    stateSelectChoice,
	}
}

type loadedMsg struct {
	err     error
	entries []choiceEntry
}

type exerciseResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadChoices
}

func (m *interactiveModel) loadChoices() tea.Msg {
	var entries []choiceEntry
	for _, id := range m.registry.IDs() {
		d, err := m.registry.Lookup(id)
		if err != nil {
			return loadedMsg{err: err}
		}
		for _, name := range d.ChoiceNames() {
			c, err := d.LookupChoice(name)
			if err != nil {
				return loadedMsg{err: err}
			}
			entries = append(entries, choiceEntry{
				choice:     c,
				templateID: id,
				argType:    schema.Format(c.ArgumentType()),
				resultType: schema.Format(c.ResultType()),
			})
		}
	}
	return loadedMsg{entries: entries}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectChoice && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectChoice && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectChoice:
				if len(m.entries) == 0 {
					return m, nil
				}
				m.prepareInputs()
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.exercise

			case stateShowResult:
				m.state = stateSelectChoice
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectChoice
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectChoice
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries

	case exerciseResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	e := m.entries[m.selected]

	cid := textinput.New()
	cid.Prompt = "contract: "
	cid.Placeholder = "contract id"
	cid.Width = 40
	if active := m.ledger.Active(e.templateID); len(active) > 0 {
		cid.SetValue(active[len(active)-1])
	}
	cid.Focus()

	arg := textinput.New()
	arg.Prompt = "argument: "
	arg.Placeholder = e.argType
	arg.Width = 60
	if e.argType == "unit" {
		arg.SetValue("{}")
	}

	m.inputs = []textinput.Model{inputContract: cid, inputArgument: arg}
	m.focusIdx = 0
}

func (m *interactiveModel) exercise() tea.Msg {
	e := m.entries[m.selected]

	raw, err := codec.ParseJSON([]byte(m.inputs[inputArgument].Value()))
	if err != nil {
		return exerciseResultMsg{err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	contractID := strings.TrimSpace(m.inputs[inputContract].Value())
	result, err := e.choice.ExerciseRaw(ctx, m.ledger, contractID, raw)
	if err != nil {
		return exerciseResultMsg{err: describeError(err)}
	}
	return exerciseResultMsg{result: fmt.Sprintf("%+v", result)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.entries) == 0 {
		return "Loading templates..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Ledger Inspector"))
	b.WriteString(fmt.Sprintf(" %d templates\n\n", m.registry.Len()))

	switch m.state {
	case stateSelectChoice:
		b.WriteString("Select a choice to exercise:\n\n")
		for i, e := range m.entries {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatEntry(e)))
			} else {
				b.WriteString(cursor + m.formatEntry(e))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputArgs:
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Exercising %s on %s\n\n", choiceStyle.Render(e.choice.Name()), e.templateID))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString(typeStyle.Render(e.argType))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab next field • enter exercise • esc back"))

	case stateShowResult:
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", choiceStyle.Render(e.choice.Name())))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatEntry(e choiceEntry) string {
	active := len(m.ledger.Active(e.templateID))
	return fmt.Sprintf("%s %s(%s) -> %s [%d active]",
		e.templateID,
		choiceStyle.Render(e.choice.Name()),
		typeStyle.Render(e.argType),
		typeStyle.Render(e.resultType),
		active)
}

func runInteractive(logger *zap.Logger) error {
	l := seededLedger(logger, time.Now())
	p := tea.NewProgram(newInteractiveModel(template.Default(), l), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
