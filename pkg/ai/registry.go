package ai

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"course_assistant/pkg/config"
)

// ErrMissingCredential is returned when the selected provider has no API key.
var ErrMissingCredential = errors.New("api key is missing")

// ProviderType is a value of the llm_provider config field.
type ProviderType string

const (
	ProviderGoogle     ProviderType = "google"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
)

// Factory builds a provider from the loaded configuration.
type Factory func(cfg config.Config) (Provider, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[ProviderType]Factory)
)

// Register makes a backend selectable. Provider packages call it from init;
// registering the same type twice keeps the last factory.
func Register(t ProviderType, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[t] = factory
}

// Registered reports whether a factory exists for t.
func Registered(t ProviderType) bool {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	_, ok := factories[t]
	return ok
}

// Backends lists the registered provider types in lexical order.
func Backends() []ProviderType {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}

// ParseProviderType maps a config value onto a backend. Anything that is not
// openai or openrouter selects Gemini.
func ParseProviderType(s string) ProviderType {
	switch t := ProviderType(s); t {
	case ProviderOpenAI, ProviderOpenRouter:
		return t
	default:
		return ProviderGoogle
	}
}

// NewFromConfig builds the provider named by cfg.LLMProvider. A missing
// credential fails with ErrMissingCredential before any client is created.
func NewFromConfig(cfg config.Config) (Provider, error) {
	t := ParseProviderType(cfg.LLMProvider)
	cfg.LLMProvider = string(t)
	if !cfg.HasCredential() {
		return nil, fmt.Errorf("%s: %w", t, ErrMissingCredential)
	}

	factoriesMu.RLock()
	factory, ok := factories[t]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider %q is not linked into this binary", t)
	}
	return factory(cfg)
}
