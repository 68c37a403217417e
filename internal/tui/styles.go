package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the cliform TUI
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - titles, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - completed runs
	ErrorColor   = lipgloss.Color("#FF5555") // Red - failures, stderr
	WarningColor = lipgloss.Color("#FFA500") // Orange - running, stopped
	MutedColor   = lipgloss.Color("#626262") // Gray - help, secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 100
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	GroupStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	RequiredStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	HelpTextStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	StdoutStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	StderrStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	StatusRunningStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	StatusFailStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)
)

// GetTerminalWidth returns the current terminal width, clamped to the
// supported range.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
