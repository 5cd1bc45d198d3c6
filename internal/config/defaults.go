package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"betterrest/internal/models"
)

const (
	// AppDirName is the per-user directory holding config and the lock file
	AppDirName = ".betterrest"
	// ConfigFileName is the config file inside AppDirName
	ConfigFileName = "config.toml"
)

// zeroDay anchors wake time parsing during validation; the date is irrelevant
var zeroDay = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)

// AppDir returns ~/.betterrest
func AppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, AppDirName), nil
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// ValidClockFormats returns the accepted ui.clock_format values
func ValidClockFormats() []string {
	return []string{models.ClockFormatAuto, models.ClockFormat12h, models.ClockFormat24h}
}

// ValidLogLevels returns the accepted logging.level values
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}
