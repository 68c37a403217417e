package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwheeler/cliform/internal/execute"
)

// logKeyMap defines key bindings for the execution log screen
type logKeyMap struct {
	Stop  key.Binding
	Clear key.Binding
	Back  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k logKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Clear, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k logKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Stop, k.Clear, k.Back},
	}
}

// LogModel shows the streamed output of the current (or last) invocation.
type LogModel struct {
	Viewport viewport.Model
	Spinner  spinner.Model

	lines    []string
	maxLines int

	Running bool
	Status  string

	StopRequested bool
	BackRequested bool

	Width  int
	Height int

	Help help.Model
	Keys logKeyMap
}

// NewLogModel creates an empty execution log capped at maxLines.
func NewLogModel(maxLines int) LogModel {
	if maxLines <= 0 {
		maxLines = 1000
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StatusRunningStyle

	vp := viewport.New(80, 20)

	return LogModel{
		Viewport: vp,
		Spinner:  s,
		maxLines: maxLines,
		Help:     help.New(),
		Keys: logKeyMap{
			Stop: key.NewBinding(
				key.WithKeys("s", "ctrl+c"),
				key.WithHelp("s", "stop"),
			),
			Clear: key.NewBinding(
				key.WithKeys("c"),
				key.WithHelp("c", "clear"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "back"),
			),
		},
	}
}

// Init implements tea.Model
func (m LogModel) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update implements tea.Model
func (m LogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Stop):
			if m.Running {
				m.StopRequested = true
			}
			return m, nil
		case key.Matches(msg, m.Keys.Clear):
			m.lines = nil
			m.refresh()
			return m, nil
		case key.Matches(msg, m.Keys.Back):
			// Going back never stops the child; the coordinator keeps
			// draining output while other screens are visible.
			m.BackRequested = true
			return m, nil
		}
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m LogModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Execution Log"))
	b.WriteString("  ")
	if m.Running {
		b.WriteString(m.Spinner.View())
		b.WriteString(StatusRunningStyle.Render(" running"))
	} else if m.Status != "" {
		b.WriteString(m.Status)
	}
	b.WriteString("\n\n")
	b.WriteString(BoxStyle.Render(m.Viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.Help.View(m.Keys))
	return b.String()
}

// Append adds one output line, trimming the buffer to the configured cap and
// keeping the viewport pinned to the bottom.
func (m *LogModel) Append(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > m.maxLines {
		m.lines = m.lines[len(m.lines)-m.maxLines:]
	}
	m.refresh()
}

// Resize adjusts the viewport to the terminal dimensions.
func (m *LogModel) Resize(width, height int) {
	m.Width = width
	m.Height = height
	vpWidth := width - 4
	if vpWidth < 20 {
		vpWidth = 20
	}
	vpHeight := height - 7
	if vpHeight < 5 {
		vpHeight = 5
	}
	m.Viewport.Width = vpWidth
	m.Viewport.Height = vpHeight
	m.refresh()
}

func (m *LogModel) refresh() {
	m.Viewport.SetContent(strings.Join(m.lines, "\n"))
	m.Viewport.GotoBottom()
}

// SetResult records the terminal status line for a finished invocation.
func (m *LogModel) SetResult(res execute.Result) {
	m.Running = false
	switch res.State {
	case execute.StateCompleted:
		m.Status = StatusOKStyle.Render("✓ completed (exit 0)")
	case execute.StateStopped:
		m.Status = StatusFailStyle.Render("■ stopped")
	default:
		m.Status = StatusFailStyle.Render(fmt.Sprintf("✗ failed (exit %d)", res.ExitCode))
	}
}
