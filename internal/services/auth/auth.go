// Package auth stores backend credentials in the OS keychain.
package auth

import (
	"errors"

	"nathanbeddoewebdev/staffctl/internal/util"
)

const ServiceName = "staffctl"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(key string, token string) error
	GetToken(key string) (string, error)
	DeleteToken(key string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeKey normalizes a credential key for consistent lookup.
func NormalizeKey(key string) string {
	return util.NormalizeKey(key)
}

// Credential describes a single secret a provider reads from the store.
type Credential struct {
	// Provider is the normalized provider name (e.g. "sheet").
	Provider string

	// Key is the keychain entry name (e.g. "sheet-apikey").
	Key string

	// Prompt is the label shown when asking the user for the value.
	Prompt string

	// Optional credentials may be absent; the provider then sends no key.
	Optional bool
}

// knownCredentials is the authoritative list of credentials the auth
// commands know how to prompt for and report on.
var knownCredentials = []Credential{
	{Provider: "sheet", Key: "sheet-apikey", Prompt: "API Key", Optional: true},
}

// LookupCredentials returns the credentials registered for provider.
func LookupCredentials(provider string) []Credential {
	normalized := util.NormalizeKey(provider)
	var out []Credential
	for _, c := range knownCredentials {
		if c.Provider == normalized {
			out = append(out, c)
		}
	}
	return out
}

// AllCredentials returns a copy of every registered credential.
func AllCredentials() []Credential {
	out := make([]Credential, len(knownCredentials))
	copy(out, knownCredentials)
	return out
}

// CredentialStatus reports whether a credential is present in a store.
type CredentialStatus struct {
	Credential
	Stored bool
	Err    error
}

// Describe renders the status as shown by "auth status".
func (s CredentialStatus) Describe() string {
	switch {
	case s.Err != nil:
		return "error: " + s.Err.Error()
	case s.Stored:
		return "stored"
	case s.Optional:
		return "not stored (optional)"
	default:
		return "not stored"
	}
}

// CheckCredentials looks up every known credential in store.
func CheckCredentials(store Store) []CredentialStatus {
	creds := AllCredentials()
	out := make([]CredentialStatus, 0, len(creds))
	for _, c := range creds {
		st := CredentialStatus{Credential: c}
		_, err := store.GetToken(c.Key)
		switch {
		case err == nil:
			st.Stored = true
		case errors.Is(err, ErrTokenNotFound):
		default:
			st.Err = err
		}
		out = append(out, st)
	}
	return out
}
