package providers

import (
	"fmt"
	"sort"
	"sync"

	"nathanbeddoewebdev/staffctl/internal/config"
	"nathanbeddoewebdev/staffctl/internal/services/auth"
	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/util"
)

// Factory is a constructor function that builds a roster Provider from the
// credential store and the resolved endpoint settings.
type Factory func(store auth.Store, endpoints config.Endpoints) (domain.Provider, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a provider factory to the registry.
// It panics on empty name, nil factory, or duplicate registration
// (programmer errors detected at startup).
func Register(name string, factory Factory) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		panic("staff/providers: empty provider name")
	}
	if factory == nil {
		panic("staff/providers: nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("staff/providers: provider %q already registered", name))
	}

	registry[normalizedName] = factory
}

// Get constructs and returns the Provider registered under name.
func Get(name string, store auth.Store, endpoints config.Endpoints) (domain.Provider, error) {
	normalizedName := util.NormalizeKey(name)
	mu.RLock()
	factory, ok := registry[normalizedName]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("staff/providers: unknown provider %q", name)
	}

	return factory(store, endpoints)
}

// List returns the names of all registered providers, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears the registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Factory{}
}
