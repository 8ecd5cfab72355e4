package nlp

import (
	"fmt"
	"sort"
	"sync"

	"nyaya/internal/config"
	"nyaya/internal/port"
)

// ProviderFactory creates a TextAnalyzer from a provider config.
type ProviderFactory func(cfg *config.ClassifierProviderConfig) (port.TextAnalyzer, error)

var (
	mu        sync.RWMutex
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers a text analyzer factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// RegisteredProviders lists the registered provider names in sorted order.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTextAnalyzer creates a TextAnalyzer using the factory registered for cfg.Provider.
func NewTextAnalyzer(cfg *config.ClassifierProviderConfig) (port.TextAnalyzer, error) {
	mu.RLock()
	factory, ok := providers[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown classifier provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
