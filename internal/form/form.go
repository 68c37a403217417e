// Package form holds the transient value map backing the parameter form for
// one selected command. It is independent of any widget toolkit: the TUI and
// web layers render their own controls and feed changes back through Set, the
// single reducer that mutates the map.
//
// A Form lives exactly as long as one command selection. Selecting a
// different command builds a fresh Form; nothing carries over. Nothing is
// persisted and no validation happens here; validation belongs entirely to
// the invoked command.
package form

import (
	"fmt"
	"strconv"

	"github.com/mwheeler/cliform/internal/introspect"
)

// Form is the live, mutable value map for one leaf command's parameters,
// keyed by parameter name.
type Form struct {
	node   *introspect.CommandNode
	values map[string]any
}

// New seeds a form from the node's parameter defaults. Booleans seed to the
// default coerced to bool, numerics to the default or zero, everything else
// to the string form of the default (empty when absent).
func New(node *introspect.CommandNode) *Form {
	f := &Form{
		node:   node,
		values: make(map[string]any, len(node.Parameters)),
	}
	for _, p := range node.Parameters {
		f.values[p.Name] = seed(p)
	}
	return f
}

// Node returns the command this form belongs to.
func (f *Form) Node() *introspect.CommandNode {
	return f.node
}

// Set records a new raw value for the named parameter. Unknown names are
// accepted; the builder ignores anything without a matching descriptor.
func (f *Form) Set(name string, value any) {
	f.values[name] = value
}

// Get returns the current raw value for the named parameter.
func (f *Form) Get(name string) any {
	return f.values[name]
}

// Bool reads the named value coerced to a boolean.
func (f *Form) Bool(name string) bool {
	b, _ := f.values[name].(bool)
	return b
}

// Text reads the named value coerced to its string form.
func (f *Form) Text(name string) string {
	switch v := f.values[name].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Snapshot returns a copy of the value map for execution, so a running
// invocation is unaffected by later edits.
func (f *Form) Snapshot() map[string]any {
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Label renders the display label for a parameter: name, a "*" marker when
// required, the help text, and the argument/option kind. Required and kind
// live in the label rather than separate UI elements so the value map's shape
// stays uniform across parameter kinds.
func Label(p introspect.ParameterInfo) string {
	label := p.Name
	if p.Required {
		label += " *"
	}
	if p.Help != "" {
		label += " - (" + p.Help + ")"
	}
	return label + " [" + string(p.Kind) + "]"
}

func seed(p introspect.ParameterInfo) any {
	switch p.Type {
	case introspect.TypeBool:
		b, _ := strconv.ParseBool(p.Default)
		return b
	case introspect.TypeInt:
		n, err := strconv.Atoi(p.Default)
		if err != nil {
			return 0
		}
		return n
	case introspect.TypeFloat:
		x, err := strconv.ParseFloat(p.Default, 64)
		if err != nil {
			return 0.0
		}
		return x
	default:
		return p.Default
	}
}
