package config

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/staffctl/internal/config"
)

func TestGet_DefaultProvider_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get", "default-provider")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "not set") {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_DefaultProvider_Set(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{DefaultProvider: "sheet"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get", "default-provider")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "sheet") {
		t.Errorf("expected 'sheet', got: %s", stdout)
	}
}

func TestGet_KeyFlag(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{APIBaseURL: "https://sheets.example.com"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _ := execConfig(t, "get", "--key", "API-BASE-URL")

	if strings.TrimSpace(stdout) != "https://sheets.example.com" {
		t.Errorf("stdout = %q, want the stored URL", stdout)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}
