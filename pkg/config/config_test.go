package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Defaults.Path != "" {
		t.Errorf("Load() = %+v, want zero-value Defaults", cfg)
	}
}

func TestLoadParsesDefaultsAndGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".depsolve.toml")
	content := `
[defaults]
path = "./components:./vendor/components"
format = "json"
dep_file = "deps"

[graph]
style = "dot"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Defaults.Path != "./components:./vendor/components" {
		t.Errorf("Defaults.Path = %q", cfg.Defaults.Path)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("Defaults.Format = %q", cfg.Defaults.Format)
	}
	if cfg.Graph.Style != "dot" {
		t.Errorf("Graph.Style = %q", cfg.Graph.Style)
	}
}

func TestStringSettingPrecedence(t *testing.T) {
	const envVar = "DEPSOLVE_TEST_SETTING"
	t.Cleanup(func() { os.Unsetenv(envVar) })

	if got := StringSetting("flag", envVar, "config", "default"); got != "flag" {
		t.Errorf("StringSetting() = %q, want flag to win", got)
	}

	os.Setenv(envVar, "env")
	if got := StringSetting("", envVar, "config", "default"); got != "env" {
		t.Errorf("StringSetting() = %q, want env to win over config", got)
	}

	os.Unsetenv(envVar)
	if got := StringSetting("", envVar, "config", "default"); got != "config" {
		t.Errorf("StringSetting() = %q, want config to win over default", got)
	}

	if got := StringSetting("", envVar, "", "default"); got != "default" {
		t.Errorf("StringSetting() = %q, want default as last resort", got)
	}
}
