package router

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleSeed = `
routes:
  - name: critical
    target: env-critical
    priority: 1
    rules:
      - field: level
        operator: eq
        value: critical
  - name: default
    target: env-default
    priority: 100
    rules:
      - field: level
        operator: exists
`

func writeSeedFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeedFile(t, sampleSeed)
	seed, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile: %v", err)
	}
	if len(seed.Routes) != 2 || seed.Routes[0].Name != "critical" {
		t.Fatalf("unexpected seed contents: %+v", seed.Routes)
	}
}

func TestRouter_ApplySeed(t *testing.T) {
	r, builder, _ := newTestRouter(t, 1)
	path := writeSeedFile(t, sampleSeed)
	seed, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile: %v", err)
	}

	if err := r.ApplySeed(context.Background(), builder, seed); err != nil {
		t.Fatalf("ApplySeed: %v", err)
	}

	table := r.GetRouteTable()
	if len(table) != 2 {
		t.Fatalf("expected 2 seeded routes, got %d", len(table))
	}
	if table[0].Name != "critical" || table[1].Name != "default" {
		t.Errorf("unexpected route order: %+v", table)
	}
}

func TestRouter_ApplySeedIsIdempotent(t *testing.T) {
	r, builder, _ := newTestRouter(t, 1)
	path := writeSeedFile(t, sampleSeed)
	seed, _ := LoadSeedFile(path)

	if err := r.ApplySeed(context.Background(), builder, seed); err != nil {
		t.Fatalf("first ApplySeed: %v", err)
	}
	if err := r.ApplySeed(context.Background(), builder, seed); err != nil {
		t.Fatalf("second ApplySeed should be a no-op, got: %v", err)
	}
	if len(r.GetRouteTable()) != 2 {
		t.Errorf("expected table to stay at 2 routes after reapplying the same seed")
	}
}

func TestRouter_Reconcile_RemovesDroppedRoutes(t *testing.T) {
	r, builder, _ := newTestRouter(t, 1)
	seed, _ := LoadSeedFile(writeSeedFile(t, sampleSeed))
	r.ApplySeed(context.Background(), builder, seed)

	trimmed := &SeedFile{Routes: seed.Routes[:1]}
	if err := r.Reconcile(context.Background(), builder, trimmed); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	table := r.GetRouteTable()
	if len(table) != 1 || table[0].Name != "critical" {
		t.Errorf("expected only 'critical' to remain, got %+v", table)
	}
}

func TestRouter_Reconcile_ReprioritizesChangedRoutes(t *testing.T) {
	r, builder, _ := newTestRouter(t, 1)
	seed, _ := LoadSeedFile(writeSeedFile(t, sampleSeed))
	r.ApplySeed(context.Background(), builder, seed)

	seed.Routes[0].Priority = 50
	if err := r.Reconcile(context.Background(), builder, seed); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	table := r.GetRouteTable()
	if table[0].Name != "critical" || table[0].Priority != 50 || table[1].Name != "default" {
		t.Errorf("unexpected table after reprioritize: %+v", table)
	}
}
