package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/bitwire/layoutfile"
	"github.com/wippyai/bitwire/wire"
)

type modelState int

const (
	stateSelectLayout modelState = iota
	stateInputHex
	stateShowResult
)

type interactiveModel struct {
	err      error
	reg      *layoutfile.Registry
	result   string
	names    []string
	input    textinput.Model
	st       styles
	selected int
	state    modelState
}

func newInteractiveModel(reg *layoutfile.Registry, initial string) *interactiveModel {
	m := &interactiveModel{
		reg:   reg,
		names: reg.Names(),
		st:    newStyles(true),
		state: stateSelectLayout,
	}
	for i, name := range m.names {
		if name == initial {
			m.selected = i
		}
	}
	return m
}

type decodedMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputHex {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectLayout && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectLayout && m.selected < len(m.names)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectLayout:
				if len(m.names) == 0 {
					return m, nil
				}
				m.prepareInput()
				m.state = stateInputHex
				return m, textinput.Blink

			case stateInputHex:
				return m, m.decode(m.input.Value())

			case stateShowResult:
				m.state = stateSelectLayout
				m.result = ""
				m.err = nil
			}
			return m, nil

		case "esc":
			switch m.state {
			case stateInputHex:
				m.state = stateSelectLayout
			case stateShowResult:
				m.state = stateInputHex
				m.result = ""
				m.err = nil
			}
			return m, nil
		}

	case decodedMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInputHex {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) current() *wire.Descriptor {
	d, _ := m.reg.Lookup(m.names[m.selected])
	return d
}

func (m *interactiveModel) prepareInput() {
	d := m.current()
	ti := textinput.New()
	ti.Placeholder = strings.TrimSpace(strings.Repeat("00 ", int(d.ByteWidth())))
	ti.Prompt = "hex: "
	ti.Width = 48
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) decode(text string) tea.Cmd {
	d := m.current()
	return func() tea.Msg {
		data, err := parseHex(text)
		if err != nil {
			return decodedMsg{err: err}
		}
		v, err := wire.Unpack(d, data)
		if err != nil {
			return decodedMsg{err: err}
		}
		var b strings.Builder
		renderText(&b, d, v, "", 0, m.st)
		return decodedMsg{result: strings.TrimRight(b.String(), "\n")}
	}
}

func (m *interactiveModel) View() string {
	if len(m.names) == 0 {
		return m.st.err.Render("No layouts loaded.\n\nPress q to quit.")
	}

	var b strings.Builder
	b.WriteString(m.st.title.Render("Wire Dump"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%d layouts", len(m.names)))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectLayout:
		b.WriteString("Select a layout to decode:\n\n")
		for i, name := range m.names {
			line := m.formatLayout(name)
			if i == m.selected {
				b.WriteString(m.st.selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.st.help.Render("↑/↓ select • enter decode • q quit"))

	case stateInputHex:
		b.WriteString(fmt.Sprintf("Decoding %s\n\n", m.st.name.Render(m.names[m.selected])))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.st.help.Render("enter decode • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("%s:\n\n", m.st.name.Render(m.names[m.selected])))
		if m.err != nil {
			b.WriteString(m.st.err.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.result)
		}
		b.WriteString("\n\n")
		b.WriteString(m.st.help.Render("enter layouts • esc edit bytes • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatLayout(name string) string {
	d, _ := m.reg.Lookup(name)
	return fmt.Sprintf("%-20s %s", name, m.st.kind.Render(fmt.Sprintf("%d bits", d.Bits)))
}

func runInteractive(reg *layoutfile.Registry, initial string) error {
	p := tea.NewProgram(newInteractiveModel(reg, initial), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
