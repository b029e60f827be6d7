package provider

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"stratus/internal/config"
	"stratus/pkg/storage"
)

// ConfigCheck reports whether the provider is configured
type ConfigCheck func(cfg *config.Config) bool

// Initializer creates a new storage client for the provider
type Initializer func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error)

// Registration holds the functions a provider package supplies when it
// registers itself
type Registration struct {
	ConfigCheck ConfigCheck
	Initializer Initializer
}

var (
	// Keyed by the provider name (lowercase)
	registry   = make(map[string]Registration)
	registryMu sync.RWMutex
)

// Register allows a provider implementation package to register itself
// during initialization (init())
func Register(name string, registration Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()

	normalizedName := strings.ToLower(name)
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("provider %s already registered", normalizedName))
	}

	if registration.ConfigCheck == nil {
		panic(fmt.Sprintf("provider %s registration missing ConfigCheck", normalizedName))
	}
	if registration.Initializer == nil {
		panic(fmt.Sprintf("provider %s registration missing Initializer", normalizedName))
	}

	registry[normalizedName] = registration
}

// GetSupportedProviders returns a sorted list of registered provider names
func GetSupportedProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	providers := make([]string, 0, len(registry))
	for name := range registry {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// IsSupported checks if a provider name has been registered
func IsSupported(providerName string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, exists := registry[strings.ToLower(providerName)]
	return exists
}

func getRegistration(providerName string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	registration, exists := registry[strings.ToLower(providerName)]
	return registration, exists
}

type Factory struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewFactory(cfg *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// GetConfiguredProviders returns the providers that are both registered
// and configured
func (f *Factory) GetConfiguredProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var configured []string
	for name, registration := range registry {
		if registration.ConfigCheck(f.cfg) {
			configured = append(configured, name)
		}
	}
	sort.Strings(configured)
	return configured
}

// IsConfigured checks if a specific provider is registered and configured
func (f *Factory) IsConfigured(providerName string) bool {
	registration, exists := getRegistration(providerName)
	if !exists {
		return false
	}
	return registration.ConfigCheck(f.cfg)
}

// GetStorageProvider initializes and returns the storage client for the
// specified provider
func (f *Factory) GetStorageProvider(ctx context.Context, providerName string) (storage.Storage, error) {
	normalizedName := strings.ToLower(providerName)
	providerLogger := f.logger.With("provider", normalizedName)

	registration, exists := getRegistration(normalizedName)
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s. Supported providers are: %v", providerName, GetSupportedProviders())
	}

	if !registration.ConfigCheck(f.cfg) {
		return nil, fmt.Errorf("provider '%s' is not configured. Use 'stratus config set %s.<key> <value>' (e.g., 'gcs.project')", normalizedName, normalizedName)
	}

	client, err := registration.Initializer(ctx, f.cfg, providerLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %s: %w", normalizedName, err)
	}

	return client, nil
}
