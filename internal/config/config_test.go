package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewPreferencesDefaults(t *testing.T) {
	prefs := NewPreferences()

	if prefs.Version != 1 {
		t.Errorf("Version = %d, want 1", prefs.Version)
	}
	if prefs.Serve == nil {
		t.Fatal("Serve section missing")
	}
	if prefs.Serve.Host != "localhost" || prefs.Serve.Port != 8080 {
		t.Errorf("Serve defaults = %s:%d, want localhost:8080", prefs.Serve.Host, prefs.Serve.Port)
	}
	if prefs.Serve.Announce {
		t.Error("Announce should default off")
	}
	if prefs.StopTimeoutSeconds != 5 {
		t.Errorf("StopTimeoutSeconds = %d, want 5", prefs.StopTimeoutSeconds)
	}
	if prefs.MaxLogLines != 1000 {
		t.Errorf("MaxLogLines = %d, want 1000", prefs.MaxLogLines)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	prefs, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
	if prefs.Serve == nil || prefs.Serve.Port != 8080 {
		t.Errorf("missing file should load defaults, got %+v", prefs)
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("serve: [not a map\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("malformed config should error, not silently reset")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	prefs := NewPreferences()
	prefs.Serve.Host = "0.0.0.0"
	prefs.Serve.Port = 9191
	prefs.Serve.Announce = true
	prefs.LogLevel = "debug"
	prefs.StopTimeoutSeconds = 10

	if err := Save(path, prefs); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Serve.Host != "0.0.0.0" || loaded.Serve.Port != 9191 || !loaded.Serve.Announce {
		t.Errorf("Serve round-trip = %+v", loaded.Serve)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel round-trip = %q", loaded.LogLevel)
	}
	if loaded.StopTimeoutSeconds != 10 {
		t.Errorf("StopTimeoutSeconds round-trip = %d", loaded.StopTimeoutSeconds)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := Save(path, NewPreferences()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestLoadPartialFileKeepsDefaultsElsewhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	prefs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if prefs.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", prefs.LogLevel)
	}
	if prefs.Serve == nil || prefs.Serve.Port != 8080 {
		t.Errorf("unset serve section should keep defaults, got %+v", prefs.Serve)
	}
	if prefs.StopTimeoutSeconds != 5 {
		t.Errorf("StopTimeoutSeconds = %d, want default 5", prefs.StopTimeoutSeconds)
	}
}

func TestGetConfigPathEndsWithAppFile(t *testing.T) {
	path, err := GetConfigPath()
	if err != nil {
		t.Skipf("no config dir in this environment: %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("config path = %q, want it to end in config.yaml", path)
	}
	if !strings.Contains(path, "cliform") {
		t.Errorf("config path = %q, want it under a cliform directory", path)
	}
}
