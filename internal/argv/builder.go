// Package argv reconstructs the shell-equivalent argument vector for a
// command selected in the UI. Given a command node and the raw values the user
// entered, Build produces the ordered token list that would invoke that
// command from a shell: group names first, then the leaf command, then
// positional arguments, then flags.
//
// No shell escaping happens here. The vector is handed as discrete tokens to
// the process launcher, which must not re-interpret them through a shell.
package argv

import (
	"fmt"
	"strings"

	"github.com/mwheeler/cliform/internal/introspect"
)

// Build returns the argument vector for invoking node with the given value
// map. Identical inputs always yield an identical vector.
//
// Serialization rules, applied in the command's declared parameter order:
//   - arguments: appended as a bare token when non-empty, skipped otherwise
//   - boolean options: "--name" when truthy, nothing when falsy
//   - other options: "--name" followed by the value, skipped when the value
//     is empty or equal to the declared default
//
// Empty and default-equivalent values are omitted rather than passed as empty
// strings, so the invoked command's own default/prompt/env logic still runs.
func Build(node *introspect.CommandNode, values map[string]any) []string {
	args := append([]string{}, node.Segments()...)

	for _, p := range node.Parameters {
		if p.Kind != introspect.KindArgument {
			continue
		}
		if v := stringify(values[p.Name]); v != "" {
			args = append(args, v)
		}
	}

	for _, p := range node.Parameters {
		if p.Kind != introspect.KindOption {
			continue
		}
		raw, ok := values[p.Name]
		if !ok {
			continue
		}
		if p.Type == introspect.TypeBool {
			if truthy(raw) {
				args = append(args, "--"+p.Name)
			}
			continue
		}
		v := stringify(raw)
		if v == "" || v == p.Default {
			continue
		}
		args = append(args, "--"+p.Name, v)
	}

	return args
}

// stringify coerces a raw form value to its command-line text form.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		// Whole-valued floats print without a trailing ".0" so integer
		// parameters entered through a numeric control round-trip cleanly.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1" || s == "yes" || s == "on"
	case int:
		return t != 0
	case float64:
		return t != 0
	default:
		return false
	}
}
