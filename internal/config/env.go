package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the persisted endpoint settings.
const (
	EnvAPIBaseURL     = "STAFFCTL_API_BASE_URL"
	EnvWebhookBaseURL = "STAFFCTL_WEBHOOK_BASE_URL"
	EnvProvider       = "STAFFCTL_PROVIDER"
	EnvDotEnvFile     = "STAFFCTL_ENV_FILE"
)

// DefaultProviderName is used when neither the config file nor the
// environment names a provider.
const DefaultProviderName = "sheet"

// Endpoints is the effective set of remote URLs after environment overrides.
type Endpoints struct {
	APIBaseURL     string
	WebhookBaseURL string
}

// LoadDotEnv loads variables from path (or STAFFCTL_ENV_FILE, or ./.env)
// without overriding variables already set in the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = os.Getenv(EnvDotEnvFile)
	}
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return nil
}

// Endpoints returns the configured URLs with environment overrides applied.
func (c *Config) Endpoints() Endpoints {
	return Endpoints{
		APIBaseURL:     firstNonEmpty(os.Getenv(EnvAPIBaseURL), c.APIBaseURL),
		WebhookBaseURL: firstNonEmpty(os.Getenv(EnvWebhookBaseURL), c.WebhookBaseURL),
	}
}

// Provider returns the provider name with the environment override and the
// built-in default applied.
func (c *Config) Provider() string {
	return firstNonEmpty(os.Getenv(EnvProvider), c.DefaultProvider, DefaultProviderName)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
