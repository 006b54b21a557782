package migrations

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLatestVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000001_init.up.sql",
		"000001_init.down.sql",
		"000003_runtime_config.up.sql",
		"README.md",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "000009_dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := LatestVersion(dir); got != 3 {
		t.Fatalf("LatestVersion = %d, want 3", got)
	}
	if got := LatestVersion(filepath.Join(dir, "missing")); got != 0 {
		t.Fatalf("missing dir: %d", got)
	}
}

func TestShippedMigrations(t *testing.T) {
	if got := LatestVersion(filepath.Join("..", "..", "migrations")); got < 1 {
		t.Fatalf("no migrations found in the repository, got version %d", got)
	}
}

func TestRunMigrationsNeedsURL(t *testing.T) {
	if err := RunMigrations(""); err == nil {
		t.Fatal("empty URL accepted")
	}
}
