package introspect

import "strings"

// ParameterKind distinguishes positional arguments from named flags.
type ParameterKind string

const (
	// KindArgument is a positional parameter; order-significant, no flag name.
	KindArgument ParameterKind = "argument"
	// KindOption is a named flag in "--name value" form; order-insignificant.
	KindOption ParameterKind = "option"
)

// ValueType is the semantic value type of a parameter. It drives both the
// input control the form layer renders and the serialization rule the argv
// builder applies.
type ValueType string

const (
	TypeBool       ValueType = "bool"
	TypeInt        ValueType = "int"
	TypeFloat      ValueType = "float"
	TypeString     ValueType = "string"
	TypeDuration   ValueType = "duration"
	TypeStringList ValueType = "stringList"
)

// ParameterInfo describes one parameter of a leaf command, decoupled from the
// pflag objects it was derived from. Immutable after introspection.
type ParameterInfo struct {
	Name     string        `json:"name"`
	Kind     ParameterKind `json:"kind"`
	Type     ValueType     `json:"type"`
	Default  string        `json:"default,omitempty"`
	Required bool          `json:"required"`
	Help     string        `json:"help,omitempty"`
}

// CommandNode is one command or group in the tree. Constructed once by the
// Introspector and immutable thereafter. Node names are unique among siblings
// but not globally; a node is addressed by Path, the "/"-joined sequence of
// names from the root.
type CommandNode struct {
	Name       string          `json:"name"`
	Help       string          `json:"help,omitempty"`
	Path       string          `json:"path"`
	Group      bool            `json:"group"`
	Children   []*CommandNode  `json:"children,omitempty"`
	Parameters []ParameterInfo `json:"parameters,omitempty"`
}

// Leaf reports whether the node is an executable command (as opposed to a
// group of subcommands).
func (n *CommandNode) Leaf() bool {
	return !n.Group
}

// Segments returns the node's path split into its command tokens.
func (n *CommandNode) Segments() []string {
	if n.Path == "" {
		return nil
	}
	return strings.Split(n.Path, "/")
}
