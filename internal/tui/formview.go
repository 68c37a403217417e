package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwheeler/cliform/internal/form"
	"github.com/mwheeler/cliform/internal/introspect"
)

// formKeyMap defines key bindings for the parameter form screen
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Run    key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Toggle, k.Run, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Toggle},
		{k.Run, k.Back},
	}
}

// fieldControl pairs one parameter with its input control. Boolean parameters
// use a toggle; everything else is a text input seeded with the default.
type fieldControl struct {
	param introspect.ParameterInfo
	input textinput.Model // unused for bool fields
}

// FormModel is the parameter form for one selected leaf command. The live
// values are owned by the embedded form.Form; controls feed edits into it
// through Form.Set so there is a single mutation path.
type FormModel struct {
	Form   *form.Form
	fields []fieldControl
	Cursor int // index into fields; len(fields) means the Run button

	Submitted bool
	Cancelled bool

	Width  int
	Height int

	Help help.Model
	Keys formKeyMap
}

// NewFormModel builds the form screen for a leaf node, discarding any state
// from a previously selected command.
func NewFormModel(node *introspect.CommandNode) FormModel {
	f := form.New(node)

	fields := make([]fieldControl, 0, len(node.Parameters))
	for _, p := range node.Parameters {
		fc := fieldControl{param: p}
		if p.Type != introspect.TypeBool {
			ti := textinput.New()
			ti.Prompt = "> "
			ti.CharLimit = 512
			ti.Width = 40
			ti.SetValue(f.Text(p.Name))
			fc.input = ti
		}
		fields = append(fields, fc)
	}

	m := FormModel{
		Form:   f,
		fields: fields,
		Help:   help.New(),
		Keys: formKeyMap{
			Next: key.NewBinding(
				key.WithKeys("tab", "down"),
				key.WithHelp("tab/↓", "next field"),
			),
			Prev: key.NewBinding(
				key.WithKeys("shift+tab", "up"),
				key.WithHelp("shift+tab/↑", "previous field"),
			),
			Toggle: key.NewBinding(
				key.WithKeys(" "),
				key.WithHelp("space", "toggle"),
			),
			Run: key.NewBinding(
				key.WithKeys("ctrl+r", "enter"),
				key.WithHelp("enter", "run"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "back"),
			),
		},
	}
	m.focusField(0)
	return m
}

// Init implements tea.Model
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch {
		case key.Matches(keyMsg, m.Keys.Back):
			m.Cancelled = true
			return m, nil

		case key.Matches(keyMsg, m.Keys.Next):
			m.focusField(m.Cursor + 1)
			return m, nil

		case key.Matches(keyMsg, m.Keys.Prev):
			m.focusField(m.Cursor - 1)
			return m, nil

		case key.Matches(keyMsg, m.Keys.Toggle):
			if m.Cursor < len(m.fields) && m.fields[m.Cursor].param.Type == introspect.TypeBool {
				name := m.fields[m.Cursor].param.Name
				m.Form.Set(name, !m.Form.Bool(name))
				return m, nil
			}

		case key.Matches(keyMsg, m.Keys.Run):
			onButton := m.Cursor == len(m.fields)
			onBool := m.Cursor < len(m.fields) && m.fields[m.Cursor].param.Type == introspect.TypeBool
			if onButton || onBool || keyMsg.String() == "ctrl+r" {
				m.Submitted = true
				return m, nil
			}
			// Enter inside a text field advances instead of submitting, so a
			// stray newline never launches a half-filled command.
			m.focusField(m.Cursor + 1)
			return m, nil
		}
	}

	// Route everything else to the focused text input and mirror its value
	// into the form's value map.
	if m.Cursor < len(m.fields) {
		fc := &m.fields[m.Cursor]
		if fc.param.Type != introspect.TypeBool {
			var cmd tea.Cmd
			fc.input, cmd = fc.input.Update(msg)
			m.Form.Set(fc.param.Name, fc.input.Value())
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model
func (m FormModel) View() string {
	node := m.Form.Node()

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Command: " + node.Path))
	b.WriteString("\n")
	if node.Help != "" {
		b.WriteString(SubtitleStyle.Render(node.Help))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.fields) == 0 {
		b.WriteString(SubtitleStyle.Render("This command takes no parameters."))
		b.WriteString("\n\n")
	}

	for i, fc := range m.fields {
		label := form.Label(fc.param)
		if i == m.Cursor {
			b.WriteString(SelectedStyle.Render(label))
		} else if fc.param.Required {
			b.WriteString(RequiredStyle.Render(label))
		} else {
			b.WriteString(LabelStyle.Render(label))
		}
		b.WriteString("\n")

		if fc.param.Type == introspect.TypeBool {
			mark := "[ ]"
			if m.Form.Bool(fc.param.Name) {
				mark = "[x]"
			}
			b.WriteString("  " + mark)
		} else {
			b.WriteString("  " + fc.input.View())
		}
		b.WriteString("\n\n")
	}

	button := "[ Run ]"
	if m.Cursor == len(m.fields) {
		b.WriteString(SelectedStyle.Render(button))
	} else {
		b.WriteString(GroupStyle.Render(button))
	}
	b.WriteString("\n\n")
	b.WriteString(m.Help.View(m.Keys))
	return b.String()
}

// focusField moves focus, wrapping through the Run button.
func (m *FormModel) focusField(idx int) {
	total := len(m.fields) + 1 // fields plus the Run button
	if idx < 0 {
		idx = total - 1
	}
	if idx >= total {
		idx = 0
	}

	if m.Cursor < len(m.fields) {
		m.fields[m.Cursor].input.Blur()
	}
	m.Cursor = idx
	if m.Cursor < len(m.fields) && m.fields[m.Cursor].param.Type != introspect.TypeBool {
		m.fields[m.Cursor].input.Focus()
	}
}
