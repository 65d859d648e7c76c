package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderMissingEnv(t *testing.T) {
	os.Unsetenv("GREPTIMEDB_DATASOURCE_UID")
	if err := Render(t.TempDir()); err == nil {
		t.Fatalf("expected error for missing env vars")
	}
}

func TestRenderSuccess(t *testing.T) {
	os.Setenv("GREPTIMEDB_DATASOURCE_UID", "uid1")
	defer os.Unsetenv("GREPTIMEDB_DATASOURCE_UID")

	dir := t.TempDir()
	if err := Render(dir); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "grafana-dashboard.json"))
	if err != nil {
		t.Fatalf("read dashboard: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "uid1") {
		t.Fatalf("greptime uid not rendered")
	}
	if !strings.Contains(out, "colony_state") {
		t.Fatalf("default state table not rendered")
	}
}

func TestRenderTableOverride(t *testing.T) {
	os.Setenv("GREPTIMEDB_DATASOURCE_UID", "uid1")
	os.Setenv("GREPTIMEDB_TABLE", "colony_state_v2")
	defer os.Unsetenv("GREPTIMEDB_DATASOURCE_UID")
	defer os.Unsetenv("GREPTIMEDB_TABLE")

	dir := t.TempDir()
	if err := Render(dir); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "grafana-dashboard.json"))
	if err != nil {
		t.Fatalf("read dashboard: %v", err)
	}
	if !strings.Contains(string(b), "colony_state_v2") {
		t.Fatalf("table override not rendered")
	}
}
