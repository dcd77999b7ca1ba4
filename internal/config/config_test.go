package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load of absent file = %+v, want defaults %+v", cfg, DefaultConfig())
	}
	if Exists() {
		t.Fatal("Exists reported a config that was never saved")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := DefaultConfig()
	want.General.Profile = "early-retirement"
	want.General.Year = 2024
	want.General.Scotland = true
	want.Appearance.Theme = "tokyo-night"

	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "planwise", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[general]\nscotland = true\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.General.Scotland {
		t.Fatal("scotland not read from file")
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("theme = %q, want default flexoki-dark", cfg.Appearance.Theme)
	}
	if cfg.General.Profile != "default" {
		t.Fatalf("profile = %q, want default", cfg.General.Profile)
	}
}

func TestRatesPathEnvWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.RatesFile = "/etc/planwise/rates.yaml"

	t.Setenv("PLANWISE_RATES", "")
	if got := RatesPath(cfg); got != "/etc/planwise/rates.yaml" {
		t.Fatalf("RatesPath = %q, want config value", got)
	}

	t.Setenv("PLANWISE_RATES", "/tmp/override.yaml")
	if got := RatesPath(cfg); got != "/tmp/override.yaml" {
		t.Fatalf("RatesPath = %q, want env override", got)
	}
}
