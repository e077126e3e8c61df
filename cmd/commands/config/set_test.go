package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/staffctl/internal/config"
	"nathanbeddoewebdev/staffctl/internal/services/auth"
	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/staff/providers"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// registerTestProvider registers a stub factory in the global registry.
func registerTestProvider(t *testing.T, name string) {
	t.Helper()
	providers.Reset()
	t.Cleanup(providers.Reset)
	providers.Register(name, func(store auth.Store, endpoints config.Endpoints) (domain.Provider, error) {
		return nil, nil
	})
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	_ = cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSet_DefaultProvider(t *testing.T) {
	setupTestConfig(t)
	registerTestProvider(t, "sheet")

	stdout, stderr := execConfig(t, "set", "default-provider", "sheet")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"sheet"`) {
		t.Errorf("expected confirmation with provider name, got: %s", stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.DefaultProvider != "sheet" {
		t.Errorf("expected DefaultProvider %q, got %q", "sheet", cfg.DefaultProvider)
	}
}

func TestSet_DefaultProvider_UnknownProvider(t *testing.T) {
	setupTestConfig(t)
	registerTestProvider(t, "sheet")

	_, stderr := execConfig(t, "set", "default-provider", "nonexistent")

	if !strings.Contains(stderr, "unknown provider") {
		t.Errorf("expected 'unknown provider' error, got: %s", stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.DefaultProvider != "" {
		t.Errorf("expected DefaultProvider to stay unset, got %q", cfg.DefaultProvider)
	}
}

func TestSet_DefaultProvider_CaseInsensitive(t *testing.T) {
	setupTestConfig(t)
	registerTestProvider(t, "sheet")

	stdout, stderr := execConfig(t, "set", "default-provider", "SHEET")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"sheet"`) {
		t.Errorf("expected normalized provider name, got: %s", stdout)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestSet_APIBaseURL_TrimsTrailingSlash(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "api-base-url", "https://sheets.example.com/")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"https://sheets.example.com"`) {
		t.Errorf("expected normalized URL in confirmation, got: %s", stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.APIBaseURL != "https://sheets.example.com" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "https://sheets.example.com")
	}
}

func TestSet_APIBaseURL_Invalid(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "api-base-url", "ftp://sheets.example.com")

	if !strings.Contains(stderr, "http://") {
		t.Errorf("expected scheme error, got: %s", stderr)
	}
}

func TestSet_DefaultRole_KeepsCase(t *testing.T) {
	setupTestConfig(t)

	stdout, _ := execConfig(t, "set", "default-role", "Manager")

	if !strings.Contains(stdout, `"Manager"`) {
		t.Errorf("expected role to keep its case, got: %s", stdout)
	}
}

func TestSet_EmptyValueClears(t *testing.T) {
	path := setupTestConfig(t)
	cfg := &config.Config{DefaultRole: "Manager"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "set", "default-role", "")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "cleared") {
		t.Errorf("expected 'cleared', got: %s", stdout)
	}

	loaded, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if loaded.DefaultRole != "" {
		t.Errorf("DefaultRole = %q, want empty", loaded.DefaultRole)
	}
}
