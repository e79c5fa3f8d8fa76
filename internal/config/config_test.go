package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Setenv("CIRCADIAN_CONFIG", "nonexistent.yaml")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestLoad_CustomConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	t.Setenv("CIRCADIAN_CONFIG", configFile)

	c := Config{ListenAddr: ":9999", DBPath: "custom.db"}
	d, err := yaml.Marshal(&c)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(configFile, d, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal("error opening config:", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("listen_addr=%s, want :9999", cfg.ListenAddr)
	}
	if cfg.DBPath != "custom.db" {
		t.Errorf("db_path=%s, want custom.db", cfg.DBPath)
	}
}

func TestLoad_DefaultsWhenAbsent(t *testing.T) {
	t.Setenv("CIRCADIAN_CONFIG", "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen_addr=%s, want :8080", cfg.ListenAddr)
	}
	if cfg.RemindWindowMins != 60 {
		t.Errorf("remind_window_minutes=%d, want 60", cfg.RemindWindowMins)
	}
}
