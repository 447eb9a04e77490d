// Package tui is a Bubble Tea front-end for a single fair round. It drives
// the same round state machine as the console game.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/fairrps/internal/round"
)

// Model is the Bubble Tea model for one round.
type Model struct {
	round  *round.Round
	logger *log.Logger
	input  textinput.Model

	menu   []round.MenuItem
	notice string

	report *round.Report
	exited bool
	err    error
}

// NewModel commits the opponent's move and returns a model ready to prompt.
func NewModel(r *round.Round, logger *log.Logger) (*Model, error) {
	ti := textinput.New()
	ti.Placeholder = "move number, 0 to exit"
	ti.Focus()
	ti.CharLimit = 12
	ti.Width = 30
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "Enter your move: "

	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Model{
		round:  r,
		logger: logger.WithPrefix("tui"),
		input:  ti,
	}
	if err := m.commit(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) commit() error {
	if _, err := m.round.Commit(); err != nil {
		return err
	}
	menu, err := m.round.Menu()
	if err != nil {
		return err
	}
	m.menu = menu
	return nil
}

// Report returns the revealed round, or nil if the player left.
func (m *Model) Report() *round.Report { return m.report }

// Exited reports whether the player left without choosing.
func (m *Model) Exited() bool { return m.exited }

// Err returns a fatal error that ended the program.
func (m *Model) Err() error { return m.err }

// Attempts returns how many commitments were shown.
func (m *Model) Attempts() int { return m.round.Commits() }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Type == tea.KeyCtrlC || key.Type == tea.KeyEsc:
		if m.report == nil {
			m.exited = true
		}
		return m, tea.Quit
	case m.report != nil:
		// Any key leaves once the result is on screen.
		return m, tea.Quit
	case key.Type == tea.KeyEnter:
		return m.choose()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) choose() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	m.input.Reset()

	report, err := m.round.Choose(value)
	var invalid *round.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		m.logger.Debug("Invalid selection", "input", invalid.Input)
		m.notice = "Invalid input. Please try again."
		if err := m.commit(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, nil
	case err != nil:
		m.err = err
		return m, tea.Quit
	case report == nil:
		m.exited = true
		return m, tea.Quit
	}

	m.notice = ""
	m.report = report
	m.input.Blur()
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Fair Rock Paper Scissors"))
	b.WriteString("\n\n")

	if m.report != nil {
		fmt.Fprintf(&b, "Your move: %s\n", m.report.HumanMove)
		fmt.Fprintf(&b, "Computer's move: %s\n", m.report.OpponentMove)
		fmt.Fprintf(&b, "Key: %s\n", m.report.Key)
		fmt.Fprintf(&b, "HMAC: %s\n\n", m.report.Digest)
		b.WriteString(ResultStyle.Render(m.report.Outcome.String()))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press any key to quit"))
		b.WriteString("\n")
		return b.String()
	}

	if m.exited {
		b.WriteString("Exiting...\n")
		return b.String()
	}

	b.WriteString("HMAC: ")
	b.WriteString(DigestStyle.Render(m.round.Digest()))
	b.WriteString("\n\nMenu:\n")
	for _, item := range m.menu {
		b.WriteString(MenuStyle.Render(item.String()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(ErrorStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

// Run plays one round in a full-screen program.
func Run(ctx context.Context, r *round.Round, logger *log.Logger, in io.Reader, out io.Writer) (*Model, error) {
	m, err := NewModel(r, logger)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("tui: %w", err)
	}
	if ctx.Err() != nil && m.report == nil {
		m.exited = true
	}
	return m, m.err
}
