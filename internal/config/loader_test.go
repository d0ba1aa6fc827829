package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGameEmbeddedDefault(t *testing.T) {
	// With no custom path and no config files around, the embedded default
	// applies. Run from a temp dir so ./configs is absent.
	chdirTemp(t)

	cfg, err := LoadGame("")
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}

	want := DefaultGameConfig()
	if cfg.World != want.World {
		t.Errorf("world = %+v, want %+v", cfg.World, want.World)
	}
	if cfg.Physics != want.Physics {
		t.Errorf("physics = %+v, want %+v", cfg.Physics, want.Physics)
	}
	if cfg.Obstacles != want.Obstacles {
		t.Errorf("obstacles = %+v, want %+v", cfg.Obstacles, want.Obstacles)
	}
}

func TestLoadGameCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	custom := `
world:
  width: 100
  height: 200
  ground_y: 180
  ceiling_y: 10
physics:
  gravity: 50
`
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadGame(path)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if cfg.World.Width != 100 || cfg.World.GroundY != 180 {
		t.Errorf("custom world not applied: %+v", cfg.World)
	}
	if cfg.Physics.Gravity != 50 {
		t.Errorf("custom gravity not applied: %f", cfg.Physics.Gravity)
	}
}

func TestLoadGameMissingCustomPathFails(t *testing.T) {
	if _, err := LoadGame(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("an explicitly named missing config should be an error")
	}
}

func TestLoadServerEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("FLAPPY_ADDR", ":9999")
	t.Setenv("FLAPPY_TOP_N", "25")
	t.Setenv("FLAPPY_DB", "/tmp/other.db")

	cfg, err := LoadServer("", "")
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.TopN != 25 {
		t.Errorf("TopN = %d, want 25", cfg.TopN)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadServerPortFallback(t *testing.T) {
	chdirTemp(t)
	t.Setenv("FLAPPY_ADDR", "")
	t.Setenv("PORT", "3000")

	cfg, err := LoadServer("", "")
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Addr)
	}
}

func TestLoadServerDotenvFile(t *testing.T) {
	chdirTemp(t)
	// godotenv does not override variables that exist in the environment,
	// so these must be fully unset, not just empty.
	t.Setenv("FLAPPY_ADDR", "")
	t.Setenv("PORT", "")
	os.Unsetenv("FLAPPY_ADDR")
	os.Unsetenv("PORT")

	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("FLAPPY_ADDR=:7777\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadServer("", envPath)
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Addr != ":7777" {
		t.Errorf("Addr = %q, want :7777 from the dotenv file", cfg.Addr)
	}
}

// chdirTemp moves the test into an empty directory so ambient config files
// (./configs, a developer's ~/.flappy) cannot leak into assertions that rely
// on defaults.
func chdirTemp(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
}
