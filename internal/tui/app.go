package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mwheeler/cliform/internal/argv"
	"github.com/mwheeler/cliform/internal/config"
	"github.com/mwheeler/cliform/internal/execute"
	"github.com/mwheeler/cliform/internal/introspect"
	"github.com/mwheeler/cliform/internal/logging"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenBrowser Screen = "browser"
	ScreenForm    Screen = "form"
	ScreenLog     Screen = "log"
)

// Messages delivered from the runner's sink into the Bubble Tea loop
type outputMsg struct {
	stream execute.Stream
	line   string
}

type runDoneMsg struct {
	result execute.Result
}

// AppModel is the top-level coordinator model that manages screen transitions
// and owns the session state: the introspected tree, the single runner, and
// the currently selected command.
type AppModel struct {
	CurrentScreen Screen

	Browser BrowserModel
	Form    FormModel
	Log     LogModel

	intr   *introspect.Introspector
	runner *execute.Runner
	events chan tea.Msg

	Width  int
	Height int
}

// NewAppModel builds the TUI over an introspected command tree.
func NewAppModel(intr *introspect.Introspector, prefs *config.Preferences) AppModel {
	if prefs == nil {
		prefs = config.NewPreferences()
	}

	events := make(chan tea.Msg, 256)
	sink := newEventSink(events)

	var opts []execute.Option
	if prefs.StopTimeoutSeconds > 0 {
		opts = append(opts, execute.WithStopTimeout(secondsToDuration(prefs.StopTimeoutSeconds)))
	}

	return AppModel{
		CurrentScreen: ScreenBrowser,
		Browser:       NewBrowserModel(intr.Commands()),
		Log:           NewLogModel(prefs.MaxLogLines),
		intr:          intr,
		runner:        execute.NewRunner(sink, logging.GetLogger(), opts...),
		events:        events,
		// Sized from the terminal until the first WindowSizeMsg arrives.
		Width: GetTerminalWidth(),
	}
}

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.Log.Init())
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Browser.Width = msg.Width
		m.Browser.Height = msg.Height
		m.Form.Width = msg.Width
		m.Form.Height = msg.Height
		m.Log.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Global quit. On the log screen ctrl+c is bound to stop instead, so
		// an impatient interrupt kills the child before the interface.
		if msg.String() == "ctrl+c" && m.CurrentScreen != ScreenLog {
			m.runner.Stop()
			return m, tea.Quit
		}

	case outputMsg:
		m.appendOutput(msg)
		return m, m.waitForEvent()

	case runDoneMsg:
		// The result races the output channel; flush any lines that were
		// queued before the terminal transition so nothing renders after it.
		m.drainQueuedOutput()
		return m.finishRun(msg.result)
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenBrowser:
		updated, c := m.Browser.Update(msg)
		m.Browser = updated.(BrowserModel)
		cmd = c

		if node := m.Browser.SelectedNode; node != nil {
			m.Browser.ClearSelection()
			logging.Debug("command selected", zap.String("path", node.Path))
			// A fresh form every time: no state carries across selections.
			m.Form = NewFormModel(node)
			m.Form.Width = m.Width
			m.Form.Height = m.Height
			m.CurrentScreen = ScreenForm
			return m, m.Form.Init()
		}

		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.String() == "q" || keyMsg.String() == "esc" {
				m.runner.Stop()
				return m, tea.Quit
			}
		}

	case ScreenForm:
		updated, c := m.Form.Update(msg)
		m.Form = updated.(FormModel)
		cmd = c

		if m.Form.Cancelled {
			m.Form.Cancelled = false
			m.CurrentScreen = ScreenBrowser
			return m, nil
		}
		if m.Form.Submitted {
			m.Form.Submitted = false
			return m.startRun()
		}

	case ScreenLog:
		updated, c := m.Log.Update(msg)
		m.Log = updated.(LogModel)
		cmd = c

		if m.Log.StopRequested {
			m.Log.StopRequested = false
			m.runner.Stop()
		}
		if m.Log.BackRequested {
			m.Log.BackRequested = false
			m.CurrentScreen = ScreenForm
		}
	}

	return m, cmd
}

// startRun builds the argument vector from the form snapshot and launches it.
func (m AppModel) startRun() (tea.Model, tea.Cmd) {
	node := m.Form.Form.Node()
	args := argv.Build(node, m.Form.Form.Snapshot())

	m.CurrentScreen = ScreenLog
	m.Log.Resize(m.Width, m.Height)

	done, err := m.runner.Start(context.Background(), args)
	if err != nil {
		// Single-flight: the original invocation is untouched.
		m.Log.Append(StatusRunningStyle.Render("Command is already running. Wait for it or stop it first."))
		return m, m.Log.Init()
	}

	logging.LogInvocation(node.Path, args)
	m.Log.Running = true
	m.Log.Status = ""
	m.Log.Append(GroupStyle.Render("$ cliform " + strings.Join(args, " ")))
	m.Log.Append(SubtitleStyle.Render(strings.Repeat("─", 40)))

	return m, tea.Batch(m.waitForResult(done), m.Log.Init())
}

// finishRun records the terminal state of an invocation in the log.
func (m AppModel) finishRun(res execute.Result) (tea.Model, tea.Cmd) {
	m.Log.SetResult(res)
	m.Log.Append(SubtitleStyle.Render(strings.Repeat("─", 40)))

	// Launch failures never stream anything, so surface the error text here.
	if res.State == execute.StateFailed && res.ExitCode == execute.ExitCodeStopped && res.Stderr != "" {
		for _, line := range strings.Split(strings.TrimRight(res.Stderr, "\n"), "\n") {
			m.Log.Append(StderrStyle.Render(line))
		}
	}
	return m, nil
}

// appendOutput renders one child output line into the log.
func (m *AppModel) appendOutput(msg outputMsg) {
	line := StdoutStyle.Render(msg.line)
	if msg.stream == execute.StreamStderr {
		line = StderrStyle.Render(msg.line)
	}
	m.Log.Append(line)
}

// drainQueuedOutput empties the event channel without blocking, appending any
// output lines still in flight.
func (m *AppModel) drainQueuedOutput() {
	for {
		select {
		case ev := <-m.events:
			if out, ok := ev.(outputMsg); ok {
				m.appendOutput(out)
			}
		default:
			return
		}
	}
}

// newEventSink bridges runner output into the Bubble Tea loop. The send never
// blocks: if the interface cannot keep up, the line is dropped from the live
// view (the runner still aggregates it for the final result) and logged.
func newEventSink(events chan<- tea.Msg) execute.Sink {
	return func(stream execute.Stream, line string) {
		select {
		case events <- outputMsg{stream: stream, line: line}:
		default:
			logging.Warn("interface busy, dropping output line",
				zap.String("stream", string(stream)),
			)
		}
	}
}

func (m AppModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m AppModel) waitForResult(done <-chan execute.Result) tea.Cmd {
	return func() tea.Msg {
		return runDoneMsg{result: <-done}
	}
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenBrowser:
		return m.Browser.View()
	case ScreenForm:
		return m.Form.View()
	case ScreenLog:
		return m.Log.View()
	default:
		return "Unknown screen"
	}
}

// Run launches the interactive interface over the given command tree and
// blocks until the user quits.
func Run(intr *introspect.Introspector, prefs *config.Preferences) error {
	model := NewAppModel(intr, prefs)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
