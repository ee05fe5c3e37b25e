package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Storage.Key != "savedTasks" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if filepath.Base(cfg.Storage.Path) != "taskboard.db" {
		t.Fatalf("unexpected storage path: %s", cfg.Storage.Path)
	}
	if cfg.UI.RecentLimit != 3 || cfg.UI.PreviewLimit != 2 {
		t.Fatalf("unexpected ui defaults: %+v", cfg.UI)
	}
	if cfg.Web.Addr != "127.0.0.1:8787" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `storage:
  backend: file
  path: ` + filepath.Join(dir, "slots") + `
log:
  level: debug
ui:
  recent_limit: 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKBOARD_LOG_FORMAT", "json")
	t.Setenv("TASKBOARD_UI_RECENT_LIMIT", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != BackendFile || cfg.Storage.Path != filepath.Join(dir, "slots") {
		t.Fatalf("file values not applied: %+v", cfg.Storage)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != FormatJSON {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.UI.RecentLimit != 7 {
		t.Fatalf("env should override file, got %d", cfg.UI.RecentLimit)
	}
	if cfg.UI.PreviewLimit != 2 || cfg.Storage.Key != "savedTasks" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("TASKBOARD_STORAGE_BACKEND", "Memory")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Fatalf("expected memory backend, got %q", cfg.Storage.Backend)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("TASKBOARD_STORAGE_BACKEND", "redis")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("write default: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(raw), "# taskboard configuration") {
		t.Fatalf("missing header: %s", raw)
	}
	if err := WriteDefault(path, false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if err := WriteDefault(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.UI.PreviewLimit != 2 {
		t.Fatalf("unexpected config from default file: %+v", cfg)
	}
}

func TestUsageListsEnv(t *testing.T) {
	out := Usage()
	for _, name := range []string{"TASKBOARD_STORAGE_BACKEND", "TASKBOARD_LOG_LEVEL", "TASKBOARD_WEB_ADDR"} {
		if !strings.Contains(out, name) {
			t.Fatalf("usage missing %s:\n%s", name, out)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := expandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Fatalf("unexpected expansion: %s", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("absolute path changed: %s", got)
	}
}
