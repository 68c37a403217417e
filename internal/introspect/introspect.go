package introspect

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// SkipAnnotation marks a command to be left out of the introspected tree.
// The interface's own entry points carry it so the browser only offers
// commands that make sense as child invocations.
const SkipAnnotation = "cliform_skip"

// Introspector holds the command tree distilled from a cobra application.
// It performs the walk once at construction and is read-only afterwards.
type Introspector struct {
	roots []*CommandNode
	index map[string]*CommandNode
}

// New walks the given cobra root and builds the command tree. A nil root or a
// root with no runnable descendants yields an empty (but usable) tree; callers
// are expected to render a "no commands" state rather than fail.
func New(root *cobra.Command) *Introspector {
	in := &Introspector{index: make(map[string]*CommandNode)}
	if root == nil {
		return in
	}
	for _, sub := range root.Commands() {
		if node := in.walk(sub, ""); node != nil {
			in.roots = append(in.roots, node)
		}
	}
	return in
}

// Commands returns the top-level command nodes in declaration order.
func (in *Introspector) Commands() []*CommandNode {
	return in.roots
}

// Lookup resolves a "/"-joined path (e.g. "user/add") to its node. Group-only
// paths resolve to the group node; callers attempting execution must check
// Leaf() themselves.
func (in *Introspector) Lookup(path string) (*CommandNode, bool) {
	node, ok := in.index[strings.Trim(path, "/")]
	return node, ok
}

func (in *Introspector) walk(cmd *cobra.Command, parentPath string) *CommandNode {
	if cmd.Hidden || isBuiltin(cmd) || cmd.Annotations[SkipAnnotation] == "true" {
		return nil
	}

	node := &CommandNode{
		Name: cmd.Name(),
		Help: cmd.Short,
		Path: joinPath(parentPath, cmd.Name()),
	}

	if hasVisibleSubcommands(cmd) {
		node.Group = true
		for _, sub := range cmd.Commands() {
			if child := in.walk(sub, node.Path); child != nil {
				node.Children = append(node.Children, child)
			}
		}
		if len(node.Children) == 0 {
			// A group with nothing runnable underneath is dead weight.
			return nil
		}
	} else {
		if cmd.Run == nil && cmd.RunE == nil {
			return nil
		}
		node.Parameters = extractParameters(cmd)
	}

	in.index[node.Path] = node
	return node
}

// extractParameters collects a leaf's parameters in declaration order:
// positional arguments first (from the Use line), then flags.
func extractParameters(cmd *cobra.Command) []ParameterInfo {
	params := parseUseArguments(cmd.Use)

	seen := make(map[string]bool)
	collect := func(f *pflag.Flag) {
		if f.Name == "help" || f.Hidden || seen[f.Name] {
			return
		}
		seen[f.Name] = true
		params = append(params, ParameterInfo{
			Name:     f.Name,
			Kind:     KindOption,
			Type:     flagValueType(f),
			Default:  normalizeDefault(f.DefValue),
			Required: flagRequired(f),
			Help:     f.Usage,
		})
	}
	visitInDeclarationOrder(cmd.Flags(), collect)
	visitInDeclarationOrder(cmd.PersistentFlags(), collect)
	// Persistent flags declared on ancestor groups apply to this leaf too.
	visitInDeclarationOrder(cmd.InheritedFlags(), collect)

	return params
}

// parseUseArguments reads positional parameter descriptors out of a cobra Use
// line. "<name>" marks a required argument, "[name]" an optional one, and a
// trailing "..." a repeatable one. Cobra has no typed declaration surface for
// positionals, so the Use line is the reflection surface here.
func parseUseArguments(use string) []ParameterInfo {
	fields := strings.Fields(use)
	if len(fields) < 2 {
		return nil
	}

	var params []ParameterInfo
	for _, tok := range fields[1:] {
		required := false
		switch {
		case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
			required = true
		case strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]"):
		default:
			continue
		}
		name := tok[1 : len(tok)-1]
		typ := TypeString
		if strings.HasSuffix(name, "...") {
			name = strings.TrimSuffix(name, "...")
			typ = TypeStringList
		}
		name = strings.TrimSpace(name)
		// "[flags]" is cobra's conventional placeholder, not a positional.
		if name == "" || name == "flags" {
			continue
		}
		params = append(params, ParameterInfo{
			Name:     name,
			Kind:     KindArgument,
			Type:     typ,
			Required: required,
		})
	}
	return params
}

// visitInDeclarationOrder visits every flag in the order it was registered.
// pflag sorts lexically by default; the sort toggle is flipped for the visit
// and restored so the flag set observes no lasting change.
func visitInDeclarationOrder(fs *pflag.FlagSet, fn func(*pflag.Flag)) {
	sorted := fs.SortFlags
	fs.SortFlags = false
	fs.VisitAll(fn)
	fs.SortFlags = sorted
}

func flagValueType(f *pflag.Flag) ValueType {
	switch f.Value.Type() {
	case "bool":
		return TypeBool
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "count":
		return TypeInt
	case "float32", "float64":
		return TypeFloat
	case "duration":
		return TypeDuration
	case "stringSlice", "stringArray":
		return TypeStringList
	default:
		// Unrecognized or composite types degrade to free text.
		return TypeString
	}
}

func flagRequired(f *pflag.Flag) bool {
	req, ok := f.Annotations[cobra.BashCompOneRequiredFlag]
	return ok && len(req) > 0 && req[0] == "true"
}

// normalizeDefault maps pflag's sentinel defaults to "absent" so the UI never
// surfaces them literally.
func normalizeDefault(def string) string {
	if def == "[]" {
		return ""
	}
	return def
}

func hasVisibleSubcommands(cmd *cobra.Command) bool {
	for _, sub := range cmd.Commands() {
		if !sub.Hidden && !isBuiltin(sub) {
			return true
		}
	}
	return false
}

func isBuiltin(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion":
		return true
	}
	return false
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
