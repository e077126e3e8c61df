package config

import (
	"fmt"
	"net/url"
	"strings"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "api-base-url").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Normalize canonicalizes user input before validation and storage.
	// Nil means the value is only trimmed.
	Normalize func(value string) string

	// Validate rejects malformed values. Nil accepts anything. An empty
	// value always clears the key and is never validated.
	Validate func(value string) error

	// Env names the environment variable that overrides this key, if any.
	Env string
}

// Apply normalizes and validates value, then sets it on cfg. It returns the
// value as stored.
func (k *KeySpec) Apply(cfg *Config, value string) (string, error) {
	value = strings.TrimSpace(value)
	if k.Normalize != nil {
		value = k.Normalize(value)
	}
	if value != "" && k.Validate != nil {
		if err := k.Validate(value); err != nil {
			return "", err
		}
	}
	k.Set(cfg, value)
	return value, nil
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "api-base-url",
		Description: "Base URL of the sheet read API (GET {url}/api/read/Staff_Master)",
		Get:         func(cfg *Config) string { return cfg.APIBaseURL },
		Set:         func(cfg *Config, v string) { cfg.APIBaseURL = v },
		Normalize:   normalizeURL,
		Validate:    ValidateBaseURL,
		Env:         EnvAPIBaseURL,
	},
	{
		Name:        "webhook-base-url",
		Description: "Base URL of the mutation webhooks (defaults to api-base-url)",
		Get:         func(cfg *Config) string { return cfg.WebhookBaseURL },
		Set:         func(cfg *Config, v string) { cfg.WebhookBaseURL = v },
		Normalize:   normalizeURL,
		Validate:    ValidateBaseURL,
		Env:         EnvWebhookBaseURL,
	},
	{
		Name:        "default-provider",
		Description: "Roster backend used when --provider is not specified",
		Get:         func(cfg *Config) string { return cfg.DefaultProvider },
		Set:         func(cfg *Config, v string) { cfg.DefaultProvider = v },
		Normalize:   strings.ToLower,
		Env:         EnvProvider,
	},
	{
		Name:        "default-role",
		Description: "Role preselected when adding staff",
		Get:         func(cfg *Config) string { return cfg.DefaultRole },
		Set:         func(cfg *Config, v string) { cfg.DefaultRole = v },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}

// ValidateBaseURL requires an absolute http or https URL with a host.
func ValidateBaseURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", value, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must start with http:// or https://", value)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", value)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("URL %q must not contain a query or fragment", value)
	}
	return nil
}

func normalizeURL(value string) string {
	return strings.TrimRight(value, "/")
}
