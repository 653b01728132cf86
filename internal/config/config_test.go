package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	m := NewManager(t.TempDir())
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := m.Get()
	if cfg.SocketPath != "" {
		t.Errorf("Expected empty socket path, got %q", cfg.SocketPath)
	}
	if cfg.DefaultReciter != "" {
		t.Errorf("Expected empty default reciter, got %q", cfg.DefaultReciter)
	}
	if cfg.Verbose {
		t.Error("Expected verbose disabled by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "socket_path = \"/tmp/custom.sock\"\ndefault_reciter = \"ar.husary\"\nverbose = true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	m := NewManager(dir)
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := m.Get()
	if cfg.SocketPath != "/tmp/custom.sock" {
		t.Errorf("Expected /tmp/custom.sock, got %q", cfg.SocketPath)
	}
	if cfg.DefaultReciter != "ar.husary" {
		t.Errorf("Expected ar.husary, got %q", cfg.DefaultReciter)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose enabled")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid\ttoml"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	m := NewManager(dir)
	if err := m.Load(); err == nil {
		t.Error("Expected error for malformed config")
	}
}
