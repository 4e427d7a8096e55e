package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
auth:
  api_key: "test-key-123"
tailscale:
  enabled: false
  hostname: "intervals"
  state_dir: "/var/lib/intervals/tsnet"
limits:
  max_input_bytes: 1024
  max_batch: 20
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Tailscale.Hostname != "intervals" {
		t.Errorf("tailscale.hostname = %q, want %q", cfg.Tailscale.Hostname, "intervals")
	}
	if cfg.Limits.MaxInputBytes != 1024 {
		t.Errorf("limits.max_input_bytes = %d, want 1024", cfg.Limits.MaxInputBytes)
	}
	if cfg.Limits.MaxBatch != 20 {
		t.Errorf("limits.max_batch = %d, want 20", cfg.Limits.MaxBatch)
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:8080")
	}
}

// TestDefaults verifies that omitted limits fall back to defaults and that
// the API key is optional.
func TestDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "server:\n  port: 9000\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Limits.MaxInputBytes != defaultMaxInputBytes {
		t.Errorf("limits.max_input_bytes = %d, want %d", cfg.Limits.MaxInputBytes, defaultMaxInputBytes)
	}
	if cfg.Limits.MaxBatch != defaultMaxBatch {
		t.Errorf("limits.max_batch = %d, want %d", cfg.Limits.MaxBatch, defaultMaxBatch)
	}
	if cfg.Auth.APIKey != "" {
		t.Errorf("auth.api_key = %q, want empty", cfg.Auth.APIKey)
	}
}

// TestEnvOverride verifies that INTERVALS_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("INTERVALS_SERVER_PORT", "9999")
	t.Setenv("INTERVALS_AUTH_API_KEY", "env-key")
	t.Setenv("INTERVALS_TAILSCALE_ENABLED", "true")
	t.Setenv("INTERVALS_LIMITS_MAX_BATCH", "5")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
	if !cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = false, want true")
	}
	if cfg.Limits.MaxBatch != 5 {
		t.Errorf("limits.max_batch = %d, want 5", cfg.Limits.MaxBatch)
	}
	// Unchanged fields should keep YAML values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
}

// TestValidationMissingPort verifies that a plain listener needs a port.
func TestValidationMissingPort(t *testing.T) {
	yaml := `
server:
  host: "0.0.0.0"
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing port")
	}
}

// TestValidationTailscaleWithoutPort verifies that tsnet mode does not need
// a port but does need a hostname.
func TestValidationTailscaleWithoutPort(t *testing.T) {
	if _, err := Load(writeTemp(t, "tailscale:\n  enabled: true\n  hostname: intervals\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Load(writeTemp(t, "tailscale:\n  enabled: true\n")); err == nil {
		t.Fatal("expected validation error for missing tailscale.hostname")
	}
}

// TestValidationPortRange verifies out-of-range ports are rejected.
func TestValidationPortRange(t *testing.T) {
	_, err := Load(writeTemp(t, "server:\n  port: 70000\n"))
	if err == nil {
		t.Fatal("expected validation error for port 70000")
	}
}

// TestLoadInvalidYAML verifies that malformed YAML is reported.
func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "server: [port"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
