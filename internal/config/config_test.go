package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Inventory.Debounce != 300*time.Millisecond {
		t.Errorf("expected 300ms debounce, got %s", cfg.Inventory.Debounce)
	}
	if cfg.Database.URL != "" {
		t.Errorf("expected in-memory catalog by default, got %q", cfg.Database.URL)
	}
	if !cfg.RateLimit.Enabled() {
		t.Error("expected rate limiting to be on by default")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("INVENTORY_AUTH_TOKEN_TTL", "30m")
	t.Setenv("INVENTORY_RATE_LIMIT_BURST", "0")
	t.Setenv("DATABASE_URL", "postgres://localhost/inventory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("expected port 8081, got %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.RateLimit.Enabled() {
		t.Error("expected burst 0 to disable rate limiting")
	}
	if cfg.Database.URL != "postgres://localhost/inventory" {
		t.Errorf("unexpected database url %q", cfg.Database.URL)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")
	content := "server:\n  port: 9000\nlog:\n  level: debug\n  pretty: false\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Log.Level != "debug" || cfg.Log.Pretty {
		t.Errorf("file values not applied: %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an explicit missing file to fail")
	}
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Port", func(c *Config) { c.Server.Port = 0 }},
		{"Secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"TTL", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"Rate", func(c *Config) { c.RateLimit.RPS = -1 }},
		{"Debounce", func(c *Config) { c.Inventory.Debounce = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
