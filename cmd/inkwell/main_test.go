package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/internal/appconfig"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestResolveName(t *testing.T) {
	now := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.Local)
	cases := map[string]string{
		"":               "2026-03-04.txt",
		"Novel":          "Novel.txt",
		"Novel.txt":      "Novel.txt",
		"notes.md":       "notes.md",
		"2026-01-02.txt": "2026-01-02.txt",
	}
	for arg, want := range cases {
		if got := resolveName(arg, now); got != want {
			t.Fatalf("resolveName(%q) = %q, want %q", arg, got, want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	want := "inkwell " + inkwell.VersionTag() + "\n"
	if out != want {
		t.Fatalf("version output = %q, want %q", out, want)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	if _, err := execute(t, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := execute(t, "config", "init", "--config", path); err == nil {
		t.Fatalf("expected error when config exists")
	}
	if _, err := execute(t, "config", "init", "--config", path, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	cfg, err := appconfig.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.ConfigVersion != appconfig.CurrentConfigVersion {
		t.Fatalf("config version = %d, want %d", cfg.ConfigVersion, appconfig.CurrentConfigVersion)
	}
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Novel.txt", "2026-03-04.txt", filepath.Join("MonthlyLogs", "2026-03.txt")} {
		full := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	out, err := execute(t, "list", "--config", cfgPath, "--projects", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Projects:\n  Novel.txt", "Daily journals:\n  2026-03-04.txt", "Monthly logs:\n  MonthlyLogs/2026-03.txt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestApplyEditOverrides(t *testing.T) {
	cfg, err := appconfig.DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	applyEditOverrides(&cfg, &editOptions{device: "/dev/input/event3", output: "/tmp/f.png", httpAddr: ":9000"})
	if cfg.Keyboard.Device != "/dev/input/event3" || cfg.Display.Output != "/tmp/f.png" || cfg.HTTP.Addr != ":9000" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	applyEditOverrides(&cfg, &editOptions{noHTTP: true})
	if cfg.HTTP.Addr != "" {
		t.Fatalf("http addr = %q, want disabled", cfg.HTTP.Addr)
	}
}

func TestEditRejectsOutsideName(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := execute(t, "edit", "../escape.txt", "--config", cfgPath, "--projects", t.TempDir(), "--no-http")
	if err == nil {
		t.Fatalf("expected error for a name outside the projects directory")
	}
}
