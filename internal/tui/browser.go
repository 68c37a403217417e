package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwheeler/cliform/internal/introspect"
)

// browserKeyMap defines key bindings for the command browser screen
type browserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Select, k.Quit},
	}
}

// browserEntry is one visible row in the flattened command tree.
type browserEntry struct {
	node  *introspect.CommandNode
	depth int
}

// BrowserModel renders the command tree and tracks the cursor. Selecting a
// leaf sets SelectedNode for the coordinator to pick up.
type BrowserModel struct {
	Commands []*introspect.CommandNode
	Expanded map[string]bool
	Entries  []browserEntry
	Cursor   int

	SelectedNode *introspect.CommandNode

	Width  int
	Height int

	Help help.Model
	Keys browserKeyMap
}

// NewBrowserModel creates a browser over the given top-level commands.
func NewBrowserModel(commands []*introspect.CommandNode) BrowserModel {
	m := BrowserModel{
		Commands: commands,
		Expanded: make(map[string]bool),
		Help:     help.New(),
		Keys: browserKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			Toggle: key.NewBinding(
				key.WithKeys("right", "left", "tab"),
				key.WithHelp("→/←", "expand/collapse"),
			),
			Select: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "select"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc"),
				key.WithHelp("q", "quit"),
			),
		},
	}
	m.rebuild()
	return m
}

// Init implements tea.Model
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Entries) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(keyMsg, m.Keys.Down):
		if m.Cursor < len(m.Entries)-1 {
			m.Cursor++
		}
	case key.Matches(keyMsg, m.Keys.Toggle):
		entry := m.Entries[m.Cursor]
		if entry.node.Group {
			m.Expanded[entry.node.Path] = !m.Expanded[entry.node.Path]
			m.rebuild()
		}
	case key.Matches(keyMsg, m.Keys.Select):
		entry := m.Entries[m.Cursor]
		if entry.node.Group {
			m.Expanded[entry.node.Path] = !m.Expanded[entry.node.Path]
			m.rebuild()
		} else {
			m.SelectedNode = entry.node
		}
	}
	return m, nil
}

// View implements tea.Model
func (m BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("cliform"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Select a command to build its invocation"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(SubtitleStyle.Render("No commands found."))
		b.WriteString("\n\n")
		b.WriteString(m.Help.View(m.Keys))
		return b.String()
	}

	for i, entry := range m.Entries {
		indent := strings.Repeat("  ", entry.depth)
		label := entry.node.Name
		if entry.node.Group {
			marker := "▸"
			if m.Expanded[entry.node.Path] {
				marker = "▾"
			}
			label = marker + " " + label
		} else {
			label = "  " + label
		}

		line := indent + label
		if entry.node.Help != "" {
			line += SubtitleStyle.Render("  " + entry.node.Help)
		}

		if i == m.Cursor {
			b.WriteString(SelectedStyle.Render(indent + label))
			if entry.node.Help != "" {
				b.WriteString(SubtitleStyle.Render("  " + entry.node.Help))
			}
		} else if entry.node.Group {
			b.WriteString(GroupStyle.Render(indent + label))
			if entry.node.Help != "" {
				b.WriteString(SubtitleStyle.Render("  " + entry.node.Help))
			}
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.Help.View(m.Keys))
	return b.String()
}

// ClearSelection resets the pending leaf selection.
func (m *BrowserModel) ClearSelection() {
	m.SelectedNode = nil
}

// rebuild flattens the tree into visible entries, honoring expansion state.
func (m *BrowserModel) rebuild() {
	m.Entries = m.Entries[:0]
	var add func(nodes []*introspect.CommandNode, depth int)
	add = func(nodes []*introspect.CommandNode, depth int) {
		for _, n := range nodes {
			m.Entries = append(m.Entries, browserEntry{node: n, depth: depth})
			if n.Group && m.Expanded[n.Path] {
				add(n.Children, depth+1)
			}
		}
	}
	add(m.Commands, 0)
	if m.Cursor >= len(m.Entries) {
		m.Cursor = len(m.Entries) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
