package argv

import (
	"reflect"
	"testing"

	"github.com/mwheeler/cliform/internal/introspect"
)

func leaf(path string, params ...introspect.ParameterInfo) *introspect.CommandNode {
	return &introspect.CommandNode{
		Name:       path,
		Path:       path,
		Parameters: params,
	}
}

func arg(name string, required bool) introspect.ParameterInfo {
	return introspect.ParameterInfo{
		Name:     name,
		Kind:     introspect.KindArgument,
		Type:     introspect.TypeString,
		Required: required,
	}
}

func opt(name string, typ introspect.ValueType, def string) introspect.ParameterInfo {
	return introspect.ParameterInfo{
		Name:    name,
		Kind:    introspect.KindOption,
		Type:    typ,
		Default: def,
	}
}

func TestBuildNestedCommandWithBoolFlag(t *testing.T) {
	node := leaf("user/add",
		arg("username", true),
		opt("admin", introspect.TypeBool, "false"),
	)

	got := Build(node, map[string]any{"username": "alice", "admin": true})
	want := []string{"user", "add", "alice", "--admin"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build = %v, want %v", got, want)
	}
}

func TestBuildFalsyBoolOmitted(t *testing.T) {
	node := leaf("user/remove",
		arg("username", true),
		opt("force", introspect.TypeBool, "false"),
	)

	got := Build(node, map[string]any{"username": "alice", "force": false})
	want := []string{"user", "remove", "alice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build = %v, want %v", got, want)
	}
}

func TestBuildSkipsEmptyAndDefaultValues(t *testing.T) {
	node := leaf("config",
		opt("host", introspect.TypeString, ""),
		opt("port", introspect.TypeInt, "8080"),
		opt("debug", introspect.TypeBool, "false"),
		opt("api-key", introspect.TypeString, ""),
	)

	got := Build(node, map[string]any{
		"host":    "",
		"port":    "9090",
		"debug":   false,
		"api-key": "",
	})
	want := []string{"config", "--port", "9090"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build = %v, want %v", got, want)
	}

	// Changing port back to the declared default drops it too.
	got = Build(node, map[string]any{"port": "8080"})
	want = []string{"config"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build with default port = %v, want %v", got, want)
	}
}

func TestBuildArgumentsBeforeOptions(t *testing.T) {
	node := leaf("copy",
		opt("verbose", introspect.TypeBool, "false"),
		arg("src", true),
		arg("dst", true),
	)

	got := Build(node, map[string]any{"src": "a.txt", "dst": "b.txt", "verbose": true})
	want := []string{"copy", "a.txt", "b.txt", "--verbose"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build = %v, want %v (arguments precede options)", got, want)
	}
}

func TestBuildOptionalArgumentOmittedWhenEmpty(t *testing.T) {
	node := leaf("list", arg("filter", false))

	got := Build(node, map[string]any{"filter": ""})
	want := []string{"list"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build = %v, want %v", got, want)
	}

	got = Build(node, map[string]any{"filter": "  active  "})
	want = []string{"list", "active"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build with padded value = %v, want %v", got, want)
	}
}

func TestBuildMissingValuesSkipped(t *testing.T) {
	node := leaf("greet",
		arg("name", true),
		opt("formal", introspect.TypeBool, "false"),
	)

	got := Build(node, map[string]any{})
	want := []string{"greet"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build with no values = %v, want %v", got, want)
	}
}

func TestBuildDeterministic(t *testing.T) {
	node := leaf("config",
		opt("host", introspect.TypeString, ""),
		opt("port", introspect.TypeInt, "8080"),
		opt("debug", introspect.TypeBool, "false"),
	)
	values := map[string]any{"host": "example.com", "port": "9090", "debug": true}

	first := Build(node, values)
	for i := 0; i < 50; i++ {
		if got := Build(node, values); !reflect.DeepEqual(got, first) {
			t.Fatalf("Build not deterministic: run %d = %v, first = %v", i, got, first)
		}
	}
}

func TestBuildNumericCoercion(t *testing.T) {
	node := leaf("scale",
		opt("factor", introspect.TypeFloat, "1"),
		opt("count", introspect.TypeInt, "0"),
	)

	got := Build(node, map[string]any{"factor": 2.0, "count": 5})
	want := []string{"scale", "--factor", "2", "--count", "5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("whole float should print without decimal: %v, want %v", got, want)
	}

	got = Build(node, map[string]any{"factor": 2.5})
	want = []string{"scale", "--factor", "2.5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build = %v, want %v", got, want)
	}
}

func TestTruthyStrings(t *testing.T) {
	node := leaf("toggle", opt("on", introspect.TypeBool, "false"))

	for _, s := range []string{"true", "1", "yes", "on", " TRUE "} {
		got := Build(node, map[string]any{"on": s})
		if len(got) != 2 || got[1] != "--on" {
			t.Errorf("Build with %q = %v, want [toggle --on]", s, got)
		}
	}
	for _, s := range []string{"false", "0", "no", "", "maybe"} {
		got := Build(node, map[string]any{"on": s})
		if len(got) != 1 {
			t.Errorf("Build with %q = %v, want [toggle]", s, got)
		}
	}
}
