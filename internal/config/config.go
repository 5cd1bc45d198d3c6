package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"betterrest/internal/model"
	"betterrest/internal/models"
)

// Manager handles configuration loading, validation, and generation
type Manager struct {
	configPath string
	created    bool
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{}
}

// Load loads the configuration from the default or specified path
func (m *Manager) Load(configPath ...string) (*models.Config, error) {
	var path string
	if len(configPath) > 0 && configPath[0] != "" {
		path = configPath[0]
	} else {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	expanded, err := m.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	m.configPath = expanded

	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		return m.generateDefaultConfig(expanded)
	}

	return m.loadFromFile(expanded)
}

// loadFromFile loads configuration from the specified file
func (m *Manager) loadFromFile(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := models.DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := m.validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// generateDefaultConfig writes the default configuration on first run
func (m *Manager) generateDefaultConfig(path string) (*models.Config, error) {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	config := models.DefaultConfig()
	if err := m.saveToFile(config, path); err != nil {
		return nil, fmt.Errorf("failed to save default config: %w", err)
	}

	m.created = true
	return config, nil
}

// saveToFile saves configuration to the specified file
func (m *Manager) saveToFile(config *models.Config, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateConfig validates the configuration for common issues
func (m *Manager) validateConfig(config *models.Config) error {
	var errors []string

	if _, err := models.ParseWakeTime(zeroDay, config.General.WakeTime); err != nil {
		errors = append(errors, fmt.Sprintf("wake_time must be HH:MM, got %q", config.General.WakeTime))
	}
	if !models.SleepAmountInRange(config.General.SleepHours) {
		errors = append(errors, fmt.Sprintf("sleep_hours must be between %g and %g",
			models.MinSleepAmount, models.MaxSleepAmount))
	}
	if !models.CoffeeIntakeInRange(config.General.CoffeeCups) {
		errors = append(errors, fmt.Sprintf("coffee_cups must be between %d and %d",
			models.MinCoffeeIntake, models.MaxCoffeeIntake))
	}

	if !model.NewFactory().IsProviderSupported(config.Model.Provider) {
		errors = append(errors, fmt.Sprintf("unknown model provider: %s", config.Model.Provider))
	}

	if !contains(ValidClockFormats(), config.UI.ClockFormat) {
		errors = append(errors, fmt.Sprintf("clock_format must be one of %s",
			strings.Join(ValidClockFormats(), ", ")))
	}
	if config.UI.WindowWidth <= 0 || config.UI.WindowHeight <= 0 {
		errors = append(errors, "window_width and window_height must be greater than 0")
	}

	if !contains(ValidLogLevels(), strings.ToLower(config.Logging.Level)) {
		errors = append(errors, fmt.Sprintf("invalid log level: %s", config.Logging.Level))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// GetConfigPath returns the path to the configuration file
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// Created returns true if Load wrote a fresh default file
func (m *Manager) Created() bool {
	return m.created
}

// ExpandPath expands ~ in file paths to the user's home directory
func (m *Manager) ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
