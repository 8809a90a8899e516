package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"docpane/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := config.Default()
	if cfg != want {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("service_url: http://docs.internal:9000\nsearch_top_k: 25\ntheme: dark\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceURL != "http://docs.internal:9000" {
		t.Errorf("ServiceURL = %q", cfg.ServiceURL)
	}
	if cfg.SearchTopK != 25 || cfg.Theme != "dark" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset fields still receive defaults.
	if cfg.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds = %d", cfg.TimeoutSeconds)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service_url: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("malformed YAML must fail loudly, not fall back silently")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service_url: http://from-file:1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCPANE_SERVICE_URL", "http://from-env:2")
	t.Setenv("DOCPANE_TIMEOUT_SECONDS", "30")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceURL != "http://from-env:2" {
		t.Errorf("ServiceURL = %q, env must win", cfg.ServiceURL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults pass", func(c *config.Config) {}, false},
		{"junk url", func(c *config.Config) { c.ServiceURL = "definitely not a url" }, true},
		{"top_k too large", func(c *config.Config) { c.SearchTopK = 500 }, true},
		{"unknown theme", func(c *config.Config) { c.Theme = "solarized" }, true},
		{"negative timeout", func(c *config.Config) { c.TimeoutSeconds = -5 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
