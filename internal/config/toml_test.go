package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Fetch.Endpoint != nil || cfg.Report.Format != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[fetch]
endpoint = "http://localhost:8080/latest"
limit = 20
timeout = "5s"

[report]
format = "yaml"
width = 60
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Fetch.Endpoint == nil || *cfg.Fetch.Endpoint != "http://localhost:8080/latest" {
		t.Fatalf("unexpected endpoint: %v", cfg.Fetch.Endpoint)
	}
	if cfg.Fetch.Limit == nil || *cfg.Fetch.Limit != 20 {
		t.Fatalf("unexpected limit: %v", cfg.Fetch.Limit)
	}
	if cfg.Fetch.Timeout == nil || *cfg.Fetch.Timeout != "5s" {
		t.Fatalf("unexpected timeout: %v", cfg.Fetch.Timeout)
	}
	if cfg.Report.Format == nil || *cfg.Report.Format != "yaml" {
		t.Fatalf("unexpected format: %v", cfg.Report.Format)
	}
	if cfg.Report.Width == nil || *cfg.Report.Width != 60 {
		t.Fatalf("unexpected width: %v", cfg.Report.Width)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[fetch]\nendpiont = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
