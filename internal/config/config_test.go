package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write %s: %v", name, err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Assistant.Model != DefaultModel {
		t.Errorf("want model %q, got %q", DefaultModel, cfg.Assistant.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "stratowave.yaml", `
listen: ":9090"
assistant:
  model: gemini-2.5-flash
  temperature: 0.4
  max_output_tokens: 512
store:
  driver: redis
  redis_url: redis://localhost:6379/0
widgets:
  idle_ttl: 5m
site:
  emails: [info@example.com]
telemetry:
  metrics_interval: 30s
  trace_sample_ratio: 0.25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("want listen :9090, got %q", cfg.Listen)
	}
	if cfg.Assistant.Model != "gemini-2.5-flash" {
		t.Errorf("want overridden model, got %q", cfg.Assistant.Model)
	}
	// Untouched fields keep their defaults.
	if cfg.Assistant.BaseURL != DefaultBaseURL {
		t.Errorf("want default base url, got %q", cfg.Assistant.BaseURL)
	}
	if cfg.Widgets.IdleTTL != 5*time.Minute {
		t.Errorf("want idle ttl 5m, got %v", cfg.Widgets.IdleTTL)
	}
	if cfg.Assistant.Temperature != 0.4 || cfg.Assistant.MaxOutputTokens != 512 {
		t.Errorf("unexpected generation settings: %+v", cfg.Assistant)
	}
	if cfg.Telemetry.MetricsInterval != 30*time.Second || cfg.Telemetry.TraceSampleRatio != 0.25 {
		t.Errorf("unexpected telemetry settings: %+v", cfg.Telemetry)
	}
	if !cfg.Telemetry.PrettyPrint {
		t.Error("want default pretty print kept")
	}
	if len(cfg.Site.Emails) != 1 || cfg.Site.Emails[0] != "info@example.com" {
		t.Errorf("unexpected emails: %v", cfg.Site.Emails)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() returned unexpected error: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "listen: [unterminated")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected an error for invalid yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown backend", func(c *Config) { c.Assistant.Backend = "ollama" }, "unknown backend"},
		{"empty listen", func(c *Config) { c.Listen = " " }, "listen address"},
		{"unknown store", func(c *Config) { c.Store.Driver = "etcd" }, "unknown store driver"},
		{"redis without url", func(c *Config) { c.Store.Driver = StoreRedis }, "redis_url"},
		{"zero ttl", func(c *Config) { c.Widgets.IdleTTL = 0 }, "idle_ttl"},
		{"hot temperature", func(c *Config) { c.Assistant.Temperature = 3 }, "temperature"},
		{"negative tokens", func(c *Config) { c.Assistant.MaxOutputTokens = -1 }, "max_output_tokens"},
		{"zero metrics interval", func(c *Config) { c.Telemetry.MetricsInterval = 0 }, "metrics_interval"},
		{"sample ratio above one", func(c *Config) { c.Telemetry.TraceSampleRatio = 1.5 }, "trace_sample_ratio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("want error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyEnv_ReadsCredential(t *testing.T) {
	t.Setenv(DefaultAPIKeyEnv, "")
	t.Setenv(FallbackAPIKeyEnv, "fallback-key")

	cfg := Default()
	if err := cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("ApplyEnv() returned unexpected error: %v", err)
	}
	if cfg.APIKey != "fallback-key" {
		t.Errorf("want fallback key, got %q", cfg.APIKey)
	}
}

func TestApplyEnv_MissingCredentialIsNotAnError(t *testing.T) {
	t.Setenv(DefaultAPIKeyEnv, "")
	t.Setenv(FallbackAPIKeyEnv, "")

	cfg := Default()
	if err := cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("ApplyEnv() returned unexpected error: %v", err)
	}
	if cfg.APIKey != "" {
		t.Errorf("want empty key, got %q", cfg.APIKey)
	}
}
