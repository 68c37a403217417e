package form

import (
	"testing"

	"github.com/mwheeler/cliform/internal/introspect"
)

func sampleNode() *introspect.CommandNode {
	return &introspect.CommandNode{
		Name: "config",
		Path: "config",
		Parameters: []introspect.ParameterInfo{
			{Name: "host", Kind: introspect.KindOption, Type: introspect.TypeString, Default: "localhost"},
			{Name: "port", Kind: introspect.KindOption, Type: introspect.TypeInt, Default: "8080"},
			{Name: "rate", Kind: introspect.KindOption, Type: introspect.TypeFloat, Default: "0.5"},
			{Name: "debug", Kind: introspect.KindOption, Type: introspect.TypeBool, Default: "true"},
			{Name: "token", Kind: introspect.KindOption, Type: introspect.TypeString},
		},
	}
}

func TestNewSeedsFromDefaults(t *testing.T) {
	f := New(sampleNode())

	if got := f.Get("host"); got != "localhost" {
		t.Errorf("host seeded to %v, want localhost", got)
	}
	if got := f.Get("port"); got != 8080 {
		t.Errorf("port seeded to %v (%T), want int 8080", got, got)
	}
	if got := f.Get("rate"); got != 0.5 {
		t.Errorf("rate seeded to %v, want 0.5", got)
	}
	if !f.Bool("debug") {
		t.Error("debug seeded false, want true")
	}
	if got := f.Get("token"); got != "" {
		t.Errorf("token without default seeded to %v, want empty string", got)
	}
}

func TestSeedToleratesUnparsableDefaults(t *testing.T) {
	node := &introspect.CommandNode{
		Name: "odd",
		Path: "odd",
		Parameters: []introspect.ParameterInfo{
			{Name: "count", Kind: introspect.KindOption, Type: introspect.TypeInt, Default: "many"},
			{Name: "ratio", Kind: introspect.KindOption, Type: introspect.TypeFloat, Default: "none"},
			{Name: "flag", Kind: introspect.KindOption, Type: introspect.TypeBool, Default: "sometimes"},
		},
	}
	f := New(node)

	if got := f.Get("count"); got != 0 {
		t.Errorf("unparsable int default seeded to %v, want 0", got)
	}
	if got := f.Get("ratio"); got != 0.0 {
		t.Errorf("unparsable float default seeded to %v, want 0", got)
	}
	if f.Bool("flag") {
		t.Error("unparsable bool default should seed false")
	}
}

func TestSetAndAccessors(t *testing.T) {
	f := New(sampleNode())

	f.Set("host", "example.com")
	if got := f.Text("host"); got != "example.com" {
		t.Errorf("Text(host) = %q after Set", got)
	}

	f.Set("debug", false)
	if f.Bool("debug") {
		t.Error("Bool(debug) = true after Set(false)")
	}

	if got := f.Text("port"); got != "8080" {
		t.Errorf("Text(port) = %q, want 8080 (coerced)", got)
	}
	if got := f.Text("missing"); got != "" {
		t.Errorf("Text of absent value = %q, want empty", got)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	f := New(sampleNode())
	f.Set("host", "first")

	snap := f.Snapshot()
	f.Set("host", "second")

	if snap["host"] != "first" {
		t.Errorf("snapshot host = %v, mutated after later Set", snap["host"])
	}
	if f.Text("host") != "second" {
		t.Errorf("form host = %q, want second", f.Text("host"))
	}

	snap["port"] = 1
	if f.Get("port") != 8080 {
		t.Error("writing to the snapshot must not reach the form")
	}
}

func TestNewFormsDoNotShareState(t *testing.T) {
	node := sampleNode()
	a := New(node)
	a.Set("host", "changed")

	b := New(node)
	if got := b.Text("host"); got != "localhost" {
		t.Errorf("fresh form host = %q, want default localhost", got)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		p    introspect.ParameterInfo
		want string
	}{
		{
			introspect.ParameterInfo{Name: "name", Kind: introspect.KindArgument, Required: true, Help: "Who to greet"},
			"name * - (Who to greet) [argument]",
		},
		{
			introspect.ParameterInfo{Name: "formal", Kind: introspect.KindOption, Help: "Formal greeting"},
			"formal - (Formal greeting) [option]",
		},
		{
			introspect.ParameterInfo{Name: "quiet", Kind: introspect.KindOption},
			"quiet [option]",
		},
	}
	for _, tt := range tests {
		if got := Label(tt.p); got != tt.want {
			t.Errorf("Label(%s) = %q, want %q", tt.p.Name, got, tt.want)
		}
	}
}
