// Package tui renders the phonebook in the terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/phonebook/internal/phonebook"
)

type focus int

const (
	focusFilter focus = iota
	focusName
	focusNumber
	focusList
	focusCount
)

// stateMsg reports that the App state changed; the model re-reads it.
type stateMsg struct{}

// opDoneMsg ends a Load, Submit or Delete command. Failures are already
// shown as notifications.
type opDoneMsg struct{ err error }

// Model is the bubbletea model of the phonebook screen.
type Model struct {
	ctx context.Context
	app *phonebook.App

	state  phonebook.State
	filter textinput.Model
	name   textinput.Model
	number textinput.Model
	focus  focus
	cursor int
	prompt *promptMsg
	queued []promptMsg // shown in order once prompt is answered
}

// NewModel creates the model for app. Commands it starts run with ctx.
func NewModel(ctx context.Context, app *phonebook.App) Model {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 0
		ti.Prompt = ""
		return ti
	}
	m := Model{
		ctx:    ctx,
		app:    app,
		state:  app.State(),
		filter: newInput("filter"),
		name:   newInput("name"),
		number: newInput("number"),
	}
	m.filter.Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.run(m.app.Load))
}

// run executes op as a command.
func (m Model) run(op func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{err: op(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.syncState()
		return m, nil

	case opDoneMsg:
		m.syncState()
		return m, nil

	case promptMsg:
		if m.prompt != nil {
			m.queued = append(m.queued, msg)
			return m, nil
		}
		m.prompt = &msg
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			for m.prompt != nil {
				m.answer(false)
			}
			return m, tea.Quit
		}
		if m.prompt != nil {
			return m.handlePromptKeys(msg), nil
		}
		return m.handleKeys(msg)
	}

	return m.updateFocused(msg)
}

func (m *Model) syncState() {
	m.state = m.app.State()
	if m.name.Value() != m.state.Name {
		m.name.SetValue(m.state.Name)
	}
	if m.number.Value() != m.state.Number {
		m.number.SetValue(m.state.Number)
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.state.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) answer(ok bool) {
	if m.prompt == nil {
		return
	}
	m.prompt.reply <- ok
	m.prompt = nil
	if len(m.queued) > 0 {
		next := m.queued[0]
		m.queued = m.queued[1:]
		m.prompt = &next
	}
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) Model {
	if !m.prompt.confirm {
		m.answer(true)
		return m
	}
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		m.answer(true)
	case "n", "esc":
		m.answer(false)
	}
	return m
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	switch m.focus {
	case focusName, focusNumber:
		if msg.String() == "enter" {
			return m.submit()
		}
	case focusList:
		return m.handleListKeys(msg)
	}
	return m.updateFocused(msg)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	name, number := m.name.Value(), m.number.Value()
	m.name.SetValue("")
	m.number.SetValue("")
	return m, m.run(func(ctx context.Context) error {
		return m.app.Submit(ctx, name, number)
	})
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.state.Visible()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "d", "delete":
		if m.cursor < len(visible) {
			target := visible[m.cursor]
			return m, m.run(func(ctx context.Context) error {
				return m.app.Delete(ctx, target)
			})
		}
	}
	return m, nil
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.filter.Blur()
	m.name.Blur()
	m.number.Blur()
	switch f {
	case focusFilter:
		return m.filter.Focus()
	case focusName:
		return m.name.Focus()
	case focusNumber:
		return m.number.Focus()
	}
	return nil
}

// updateFocused forwards msg to the focused input and mirrors its value
// into the App.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusFilter:
		before := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if v := m.filter.Value(); v != before {
			m.app.SetFilter(v)
			m.cursor = 0
		}
	case focusName, focusNumber:
		beforeName, beforeNumber := m.name.Value(), m.number.Value()
		if m.focus == focusName {
			m.name, cmd = m.name.Update(msg)
		} else {
			m.number, cmd = m.number.Update(msg)
		}
		if m.name.Value() != beforeName || m.number.Value() != beforeNumber {
			m.app.SetInputs(m.name.Value(), m.number.Value())
		}
	default:
		return m, nil
	}
	m.state = m.app.State()
	m.clampCursor()
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Phonebook"))
	b.WriteString("\n")

	if n := m.state.Notice; n.Visible() {
		style := successStyle
		if n.IsError {
			style = errorStyle
		}
		b.WriteString(style.Render(n.Text))
		b.WriteString("\n")
	}

	b.WriteString(m.field("filter shown with", m.filter.View(), focusFilter))

	b.WriteString(sectionStyle.Render("Add a new"))
	b.WriteString("\n")
	b.WriteString(m.field("name", m.name.View(), focusName))
	b.WriteString(m.field("number", m.number.View(), focusNumber))

	b.WriteString(sectionStyle.Render("Numbers"))
	b.WriteString("\n")
	visible := m.state.Visible()
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("  no contacts"))
		b.WriteString("\n")
	}
	for i, c := range visible {
		line := fmt.Sprintf("%s %s", c.Name, c.Number)
		if m.focus == focusList && i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.prompt != nil {
		text := m.prompt.text
		if m.prompt.confirm {
			text += " [y/n]"
		}
		b.WriteString(promptStyle.Render(text))
		b.WriteString("\n")
	} else {
		b.WriteString(dimStyle.Render("tab: switch field • enter: add • d: delete • esc: quit"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) field(label, input string, f focus) string {
	marker := "  "
	if m.focus == f {
		marker = selectedStyle.Render("> ")
	}
	return fmt.Sprintf("%s%-18s %s\n", marker, label+":", input)
}
