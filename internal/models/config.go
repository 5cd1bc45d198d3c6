package models

// Config represents the application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Model   ModelConfig   `toml:"model"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// GeneralConfig contains the starting values of the three inputs
type GeneralConfig struct {
	WakeTime   string  `toml:"wake_time"`   // HH:MM, 24-hour
	SleepHours float64 `toml:"sleep_hours"` // Desired sleep, hours
	CoffeeCups int     `toml:"coffee_cups"` // Daily coffee intake
}

// ModelConfig selects the regression model used for predictions
type ModelConfig struct {
	Provider string `toml:"provider"`
	Path     string `toml:"path"` // Empty uses the built-in artifact
}

// UIConfig contains user interface settings
type UIConfig struct {
	ClockFormat  string `toml:"clock_format"` // auto, 12h or 24h
	ShowTray     bool   `toml:"show_tray"`
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Clock formats accepted by UIConfig.ClockFormat
const (
	ClockFormatAuto = "auto"
	ClockFormat12h  = "12h"
	ClockFormat24h  = "24h"
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			WakeTime:   "07:00",
			SleepHours: DefaultSleepAmount,
			CoffeeCups: DefaultCoffeeIntake,
		},
		Model: ModelConfig{
			Provider: "linear",
		},
		UI: UIConfig{
			ClockFormat:  ClockFormatAuto,
			ShowTray:     true,
			WindowWidth:  360,
			WindowHeight: 420,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
