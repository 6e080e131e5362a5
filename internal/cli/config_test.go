package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, "file")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("Render.Format = %q, want %q", cfg.Render.Format, "svg")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "redis"

[store.redis]
addr = "localhost:6379"
db = 2

[server]
addr = ":9090"

[render]
format = "png"
`)

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg.Store.Backend != "redis" {
		t.Errorf("Store.Backend = %q", cfg.Store.Backend)
	}
	if cfg.Store.Redis.Addr != "localhost:6379" || cfg.Store.Redis.DB != 2 {
		t.Errorf("Redis config = %+v", cfg.Store.Redis)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Render.Format != "png" {
		t.Errorf("Render.Format = %q", cfg.Render.Format)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[render]
format = "dot"
`)

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg.Render.Format != "dot" {
		t.Errorf("Render.Format = %q", cfg.Render.Format)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("Store.Backend = %q, want default", cfg.Store.Backend)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, `
[stoer]
backend = "file"
`)

	if _, err := loadConfigFile(path); err == nil {
		t.Error("expected error for unknown config key")
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeConfig(t, `store = [broken`)

	if _, err := loadConfigFile(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}
