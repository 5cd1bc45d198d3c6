package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"betterrest/internal/models"
)

// ProviderLinear is the linear regression provider
const ProviderLinear = "linear"

// Factory creates model loaders
type Factory struct{}

// NewFactory creates a new model factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateLoader creates a model loader based on configuration
func (f *Factory) CreateLoader(config *models.Config) (Loader, error) {
	switch config.Model.Provider {
	case ProviderLinear:
		if config.Model.Path == "" {
			return BuiltinLoader{}, nil
		}
		path, err := expandHome(config.Model.Path)
		if err != nil {
			return nil, err
		}
		return &FileLoader{Path: path}, nil

	default:
		return nil, fmt.Errorf("unknown model provider: %s", config.Model.Provider)
	}
}

// GetAvailableProviders returns a list of all available model providers
func (f *Factory) GetAvailableProviders() []string {
	return []string{ProviderLinear}
}

// IsProviderSupported checks if a provider is supported
func (f *Factory) IsProviderSupported(provider string) bool {
	for _, p := range f.GetAvailableProviders() {
		if p == provider {
			return true
		}
	}
	return false
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}
