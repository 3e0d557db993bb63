package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_HasSaneValues(t *testing.T) {
	cfg := Default()
	if cfg.Router.Threads <= 0 {
		t.Error("default thread count must be positive")
	}
	if cfg.Store.Backend != "redis" {
		t.Errorf("default backend = %q, want redis", cfg.Store.Backend)
	}
}

func TestManager_LoadMergesProjectFile(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	data := []byte("router:\n  threads: 16\nstore:\n  backend: s3\n  s3:\n    bucket: events\n")
	if err := os.WriteFile(filepath.Join(dir, ".flowgate.yaml"), data, 0644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	m := NewManager()
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := m.Get()
	if cfg.Router.Threads != 16 {
		t.Errorf("Threads = %d, want 16", cfg.Router.Threads)
	}
	if cfg.Store.Backend != "s3" || cfg.Store.S3.Bucket != "events" {
		t.Errorf("unexpected store config: %+v", cfg.Store)
	}
	// Values not present in the project file keep their defaults.
	if cfg.Router.QueueCapacity != Default().Router.QueueCapacity {
		t.Errorf("QueueCapacity should keep its default, got %d", cfg.Router.QueueCapacity)
	}
}

func TestManager_LoadIgnoresMissingFiles(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	m := NewManager()
	if err := m.Load(); err != nil {
		t.Fatalf("Load should tolerate missing config files: %v", err)
	}
}

func TestManager_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	os.WriteFile(filepath.Join(dir, ".flowgate.yaml"), []byte("store:\n  backend: s3\n"), 0644)
	os.Setenv("FLOWGATE_STORE_BACKEND", "redis")
	defer os.Unsetenv("FLOWGATE_STORE_BACKEND")

	m := NewManager()
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Get().Store.Backend != "redis" {
		t.Errorf("env var should override file, got %q", m.Get().Store.Backend)
	}
}
