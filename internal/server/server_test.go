package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mwheeler/cliform/internal/introspect"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	root := &cobra.Command{Use: "sample"}
	greet := &cobra.Command{
		Use:   "greet <name>",
		Short: "Say hello",
		Run:   func(cmd *cobra.Command, args []string) {},
	}
	greet.Flags().Bool("formal", false, "Formal greeting")
	user := &cobra.Command{Use: "user", Short: "Manage users"}
	user.AddCommand(&cobra.Command{
		Use: "add <username>",
		Run: func(cmd *cobra.Command, args []string) {},
	})
	root.AddCommand(greet)
	root.AddCommand(user)

	srv, err := New(&Config{Host: "localhost", Port: 0}, introspect.New(root))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(srv.http.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestCommandsEndpoint(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/commands")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var nodes []*introspect.CommandNode
	decodeBody(t, resp, &nodes)
	if len(nodes) != 2 {
		t.Fatalf("got %d top-level commands, want 2", len(nodes))
	}

	byName := map[string]*introspect.CommandNode{}
	for _, n := range nodes {
		byName[n.Name] = n
	}
	if n := byName["greet"]; n == nil || n.Group {
		t.Errorf("greet node = %+v, want a leaf", n)
	}
	if n := byName["user"]; n == nil || !n.Group || len(n.Children) != 1 {
		t.Errorf("user node = %+v, want a group with one child", n)
	}
}

func TestCommandEndpoint(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/command?path=user/add")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var node introspect.CommandNode
	decodeBody(t, resp, &node)
	if node.Path != "user/add" {
		t.Errorf("node path = %q, want user/add", node.Path)
	}
	if len(node.Parameters) != 1 || node.Parameters[0].Name != "username" {
		t.Errorf("parameters = %+v, want the username argument", node.Parameters)
	}
}

func TestCommandEndpointUnknownPath(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/command?path=no/such/thing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStateEndpointIdle(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["state"] != "idle" {
		t.Errorf("state = %q, want idle", body["state"])
	}
}

func TestRunRejectsGroup(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/run", "application/json",
		strings.NewReader(`{"path":"user","values":{}}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a group path", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if !strings.Contains(body["error"], "not an executable command") {
		t.Errorf("error = %q", body["error"])
	}
}

func TestRunRejectsUnknownPath(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/run", "application/json",
		strings.NewReader(`{"path":"missing","values":{}}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRunRejectsBadBody(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/run", "application/json",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStopWhenIdle(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/stop", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["state"] != "idle" {
		t.Errorf("state after idle stop = %q, want idle", body["state"])
	}
}

func TestIndexServed(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}

	if resp2, err := http.Get(ts.URL + "/nope"); err == nil {
		resp2.Body.Close()
		if resp2.StatusCode != http.StatusNotFound {
			t.Errorf("unknown path status = %d, want 404", resp2.StatusCode)
		}
	}
}
