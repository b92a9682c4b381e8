package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xmlpull/xmlschema/config"
	"github.com/xmlpull/xmlschema/xmlreader"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	limits, err := config.Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if limits != xmlreader.DefaultLimits() {
		t.Fatalf("Load(\"\") = %+v, want defaults %+v", limits, xmlreader.DefaultLimits())
	}
}

func TestLoadPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "limits.yaml")
	body := "max_text_size: 4096\nmax_stack_size: 40\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	limits, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q): %v", path, err)
	}

	want := xmlreader.DefaultLimits()
	want.TextSize = 4096
	want.StackSize = 40
	if limits != want {
		t.Fatalf("Load(%q) = %+v, want %+v", path, limits, want)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestLoadMalformedYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("max_text_size: [this is not an int"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected a parse error for malformed YAML")
	}
}
