// Package tui is an interactive terminal transliterator: the hanzi form
// updates as the name is typed.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/hanzify/internal/hanzify"
	"github.com/jusunglee/hanzify/internal/translation"
)

// SaveFunc is called when the user keeps a result with enter.
type SaveFunc func(translation.Translation) error

type Model struct {
	input      textinput.Model
	translator *translation.Translator
	save       SaveFunc

	feminine bool
	result   *translation.Translation
	err      error
	saved    []translation.Translation
	status   string
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	hanziStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// New returns the initial model. save may be nil.
func New(translator *translation.Translator, save SaveFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "Наталья Гончарова"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	return Model{input: ti, translator: translator, save: save}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.feminine = !m.feminine
			m.refresh()
			return m, nil
		case tea.KeyEnter:
			m.keep()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.refresh()
	}
	return m, cmd
}

func (m *Model) refresh() {
	m.status = ""
	name := m.input.Value()
	if strings.TrimSpace(name) == "" {
		m.result, m.err = nil, nil
		return
	}

	t, err := m.translator.Translate(context.Background(), translation.Request{Name: name, Feminine: m.feminine})
	if err != nil {
		m.result, m.err = nil, err
		return
	}
	m.result, m.err = &t, nil
}

func (m *Model) keep() {
	if m.result == nil {
		return
	}
	if m.save != nil {
		if err := m.save(*m.result); err != nil {
			m.status = errorStyle.Render("✗ not saved: " + err.Error())
			return
		}
	}
	m.saved = append(m.saved, *m.result)
	m.status = completedStyle.Render("✓ saved " + m.result.Hanzi)
	m.input.SetValue("")
	m.result = nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("hanzify"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	gender := "masculine"
	if m.feminine {
		gender = "feminine"
	}
	b.WriteString(subtleStyle.Render(gender + " form"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(describe(m.err)))
	case m.result != nil:
		b.WriteString(boxStyle.Render(renderResult(*m.result)))
	default:
		b.WriteString(subtleStyle.Render("type a Russian name"))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	if len(m.saved) > 0 {
		b.WriteString("\n")
		for _, t := range m.saved {
			fmt.Fprintf(&b, "%s  %s\n", hanziStyle.Render(t.Hanzi), subtleStyle.Render(t.Name))
		}
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("tab: toggle feminine • enter: save • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func renderResult(t translation.Translation) string {
	var b strings.Builder
	b.WriteString(hanziStyle.Render(t.Hanzi))
	b.WriteString("\n")
	b.WriteString(t.PinyinTone)
	b.WriteString("\n\n")
	for _, w := range t.Words {
		parts := make([]string, len(w.Segments))
		for i, s := range w.Segments {
			parts[i] = s.Text + " " + s.Hanzi
		}
		b.WriteString(subtleStyle.Render(strings.Join(parts, "  ")))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func describe(err error) string {
	var unsupported *hanzify.UnsupportedInputError
	if errors.As(err, &unsupported) {
		return fmt.Sprintf("cannot write %q in hanzi (position %d)", unsupported.Rune, unsupported.Pos+1)
	}
	return err.Error()
}

// Run starts the interactive program and blocks until the user quits.
func Run(translator *translation.Translator, save SaveFunc) error {
	_, err := tea.NewProgram(New(translator, save)).Run()
	return err
}
